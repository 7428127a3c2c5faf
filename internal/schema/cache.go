package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize bounds the number of (marketplace, country) schemas kept.
const DefaultCacheSize = 64

// ErrSchemaNotFound is returned by a Loader that has no document for a key.
var ErrSchemaNotFound = errors.New("schema not found")

// Key identifies one schema document.
type Key struct {
	Marketplace string
	Country     string
}

// NewKey builds a normalized key: lower-case marketplace, upper-case country.
func NewKey(marketplace, country string) Key {
	return Key{
		Marketplace: strings.ToLower(strings.TrimSpace(marketplace)),
		Country:     strings.ToUpper(strings.TrimSpace(country)),
	}
}

func (k Key) normalize() Key {
	return NewKey(k.Marketplace, k.Country)
}

func (k Key) String() string {
	return k.Marketplace + "/" + k.Country
}

// Loader fetches the raw schema document for a key.
type Loader interface {
	Load(ctx context.Context, key Key) ([]byte, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, key Key) ([]byte, error)

func (f LoaderFunc) Load(ctx context.Context, key Key) ([]byte, error) {
	return f(ctx, key)
}

// DirLoader reads "<marketplace>_<country>.yaml" (or .yml, .json) from a
// directory.
type DirLoader struct {
	Dir string
}

func (d DirLoader) Load(_ context.Context, key Key) ([]byte, error) {
	base := strings.ToLower(key.Marketplace + "_" + key.Country)

	for _, ext := range []string{".yaml", ".yml", ".json"} {
		data, err := os.ReadFile(filepath.Join(d.Dir, base+ext))
		if err == nil {
			return data, nil
		}

		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read schema %s: %w", key, err)
		}
	}

	return nil, fmt.Errorf("%w: %s in %s", ErrSchemaNotFound, key, d.Dir)
}

// Cache holds one Classification per (marketplace, country). Entries are
// built once and replaced wholesale, never edited in place, so a reader
// holding a Classification never sees a partial update.
//
// Every Replace or Invalidate bumps the key's generation. A load that
// started under an older generation is returned to its callers but never
// stored, so it cannot overwrite a newer document.
type Cache struct {
	loader Loader
	logger *slog.Logger
	lru    *lru.Cache[Key, *Classification]
	group  singleflight.Group

	mu  sync.Mutex
	gen map[Key]uint64
}

// NewCache creates a cache of at most size entries. A nil loader makes Get
// serve only documents installed with Replace.
func NewCache(size int, loader Loader, logger *slog.Logger) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}

	if logger == nil {
		logger = slog.Default()
	}

	l, err := lru.New[Key, *Classification](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema cache: %w", err)
	}

	return &Cache{loader: loader, logger: logger, lru: l, gen: make(map[Key]uint64)}, nil
}

// Get returns the classification for key, loading and classifying it on a
// miss. Concurrent misses for the same key share one build. A schema that
// cannot be loaded yields an empty classification carrying an error
// diagnostic; it is not cached, so a later call retries.
func (c *Cache) Get(ctx context.Context, key Key) *Classification {
	key = key.normalize()

	if cl, ok := c.lru.Get(key); ok {
		return cl
	}

	v, _, _ := c.group.Do(key.String(), func() (any, error) {
		if cl, ok := c.lru.Get(key); ok {
			return cl, nil
		}

		gen := c.generation(key)

		cl, err := c.build(ctx, key)
		if err != nil {
			c.logger.Warn("schema unavailable, using empty table", "key", key.String(), "error", err)
			return Failed(key.Marketplace, key.Country, err), nil
		}

		if current, stale := c.store(key, gen, cl); stale {
			c.logger.Debug("schema changed while loading, discarding load", "key", key.String())

			if current != nil {
				return current, nil
			}

			return cl, nil
		}

		c.logger.Debug("schema classified", "key", key.String(), "version", cl.Version(),
			"categories", len(cl.order), "global", cl.global.Len())

		return cl, nil
	})

	return v.(*Classification)
}

func (c *Cache) build(ctx context.Context, key Key) (*Classification, error) {
	if c.loader == nil {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, key)
	}

	data, err := c.loader.Load(ctx, key)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return Classify(doc), nil
}

func (c *Cache) generation(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.gen[key]
}

// store adds cl if key is still at generation gen. Otherwise it reports the
// load as stale and returns whatever entry is current, possibly nil.
func (c *Cache) store(key Key, gen uint64, cl *Classification) (*Classification, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen[key] != gen {
		current, _ := c.lru.Peek(key)
		return current, true
	}

	c.lru.Add(key, cl)

	return nil, false
}

// Replace classifies doc and installs it for key, replacing any entry.
func (c *Cache) Replace(key Key, doc *Document) *Classification {
	key = key.normalize()
	cl := Classify(doc)

	c.mu.Lock()
	c.gen[key]++
	c.lru.Add(key, cl)
	c.mu.Unlock()

	c.group.Forget(key.String())

	return cl
}

// Invalidate drops the entry for key; the next Get rebuilds it.
func (c *Cache) Invalidate(key Key) {
	key = key.normalize()

	c.mu.Lock()
	c.gen[key]++
	c.lru.Remove(key)
	c.mu.Unlock()

	c.group.Forget(key.String())
}

// Peek returns the cached classification without loading.
func (c *Cache) Peek(key Key) (*Classification, bool) {
	return c.lru.Peek(key.normalize())
}

// Len returns the number of cached classifications.
func (c *Cache) Len() int {
	return c.lru.Len()
}
