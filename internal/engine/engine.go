package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"listing-engine/internal/config"
	"listing-engine/internal/diagnostic"
	"listing-engine/internal/feed"
	"listing-engine/internal/heuristic"
	"listing-engine/internal/match"
	"listing-engine/internal/record"
	"listing-engine/internal/resolve"
	"listing-engine/internal/rules"
	"listing-engine/internal/schema"
)

// ErrNoRuleSet is returned when no rule set is registered for a key.
var ErrNoRuleSet = errors.New("no rule set registered")

// Result is the outcome of processing one record.
type Result struct {
	Resolved    resolve.ResolvedAttributes
	Envelope    *feed.Envelope
	Diagnostics diagnostic.Diagnostics
}

// Success reports whether every required attribute resolved.
func (r *Result) Success() bool {
	return r.Resolved.Success
}

// Engine owns the schema cache, the registered rule sets, the resolver and
// the envelope builder.
type Engine struct {
	cfg      *config.Config
	logger   *slog.Logger
	schemas  *schema.Cache
	resolver *resolve.Resolver
	builder  *feed.Builder
	alloc    resolve.PoolAllocator

	mu       sync.RWMutex
	ruleSets map[rules.Key]*rules.RuleSet
}

type options struct {
	loader  schema.Loader
	alloc   resolve.PoolAllocator
	library *heuristic.Library
	builder []feed.BuilderOption
}

// Option configures an Engine.
type Option func(*options)

// WithSchemaLoader sets where schemas are loaded from. Without it the
// configured schema directory is used, if any.
func WithSchemaLoader(l schema.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithPoolAllocator sets the collaborator that fills upc_pool attributes.
func WithPoolAllocator(a resolve.PoolAllocator) Option {
	return func(o *options) { o.alloc = a }
}

// WithLibrary replaces the built-in heuristic library.
func WithLibrary(lib *heuristic.Library) Option {
	return func(o *options) { o.library = lib }
}

// WithBuilderOptions passes options to the envelope builder.
func WithBuilderOptions(opts ...feed.BuilderOption) Option {
	return func(o *options) { o.builder = append(o.builder, opts...) }
}

// New creates an engine. A nil cfg means config.Default(); a nil logger
// means slog.Default().
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	if logger == nil {
		logger = slog.Default()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.loader == nil && cfg.SchemaDir != "" {
		o.loader = schema.DirLoader{Dir: cfg.SchemaDir}
	}

	cache, err := schema.NewCache(cfg.CacheSize, o.loader, logger.With("component", "schema"))
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:      cfg,
		logger:   logger,
		schemas:  cache,
		resolver: resolve.NewResolver(o.library, resolve.WithLogger(logger.With("component", "resolver"))),
		builder:  feed.NewBuilder(append([]feed.BuilderOption{feed.WithBuilderLogger(logger.With("component", "feed"))}, o.builder...)...),
		alloc:    o.alloc,
		ruleSets: make(map[rules.Key]*rules.RuleSet),
	}

	if cfg.RulesDir != "" {
		if _, err := e.LoadRulesDir(cfg.RulesDir); err != nil {
			return nil, err
		}
	}

	return e, nil
}

func normalizeKey(k rules.Key) rules.Key {
	sk := schema.NewKey(k.Marketplace, k.Country)
	return rules.Key{Marketplace: sk.Marketplace, Country: sk.Country, Category: strings.TrimSpace(k.Category)}
}

// Register installs rs under its key, replacing any previous set.
func (e *Engine) Register(rs *rules.RuleSet) {
	key := normalizeKey(rs.Key())

	e.mu.Lock()
	e.ruleSets[key] = rs
	e.mu.Unlock()

	if diags := rs.Diagnostics(); diags.HasWarnings() {
		e.logger.Warn("rule set loaded with warnings", "key", key.String(), "warnings", len(diags.Warnings))
	}

	for _, w := range rs.Diagnostics().Warnings {
		e.logger.Debug("rule set warning", "key", key.String(), "attribute", w.AttributeID, "code", w.Code, "message", w.Message)
	}

	e.logger.Info("rule set registered", "key", key.String(), "version", rs.Version(), "rules", rs.Len())
}

// RegisterDocument parses a YAML or JSON rule document and registers it.
func (e *Engine) RegisterDocument(data []byte) (*rules.RuleSet, error) {
	rs, err := rules.Parse(data)
	if err != nil {
		return nil, err
	}

	e.Register(rs)

	return rs, nil
}

// LoadRulesDir registers every .yaml, .yml and .json rule document in dir.
func (e *Engine) LoadRulesDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read rules directory %s: %w", dir, err)
	}

	n := 0

	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml" && ext != ".json") {
			continue
		}

		rs, err := rules.LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return n, err
		}

		e.Register(rs)
		n++
	}

	return n, nil
}

// RuleSet returns the rule set registered for key.
func (e *Engine) RuleSet(key rules.Key) (*rules.RuleSet, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	rs, ok := e.ruleSets[normalizeKey(key)]

	return rs, ok
}

// Keys returns the registered rule set keys, sorted by their string form.
func (e *Engine) Keys() []rules.Key {
	e.mu.RLock()
	keys := slices.Collect(maps.Keys(e.ruleSets))
	e.mu.RUnlock()

	slices.SortFunc(keys, func(a, b rules.Key) int { return strings.Compare(a.String(), b.String()) })

	return keys
}

// ReplaceSchema installs a schema document for its (marketplace, country).
func (e *Engine) ReplaceSchema(doc *schema.Document) *schema.Classification {
	return e.schemas.Replace(schema.NewKey(doc.Marketplace, doc.Country), doc)
}

// InvalidateSchema drops a cached schema so the next use reloads it.
func (e *Engine) InvalidateSchema(marketplace, country string) {
	e.schemas.Invalidate(schema.NewKey(marketplace, country))
}

// Table returns the format table used for a category, with what was noted
// while choosing it. A missing or broken schema falls back to the static
// default table; a category the schema does not declare uses the flattened
// table of all categories.
func (e *Engine) Table(ctx context.Context, key rules.Key) (schema.Table, *schema.Classification, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	key = normalizeKey(key)
	scope := key.String()
	cl := e.schemas.Get(ctx, schema.NewKey(key.Marketplace, key.Country))

	if cl.IsEmpty() {
		msg := "schema unavailable, using default format table"
		if errs := cl.Diagnostics().Errors; len(errs) > 0 {
			msg += ": " + errs[0].Message
		}

		diags.AddWarning(diagnostic.CodeDefaultTableFallback, msg, scope, "")

		return schema.DefaultTable(), cl, diags
	}

	if cl.HasCategory(key.Category) {
		return cl.ForCategory(key.Category), cl, diags
	}

	flat, flatDiags := cl.Flatten()
	diags.Merge(flatDiags)

	return flat, cl, diags
}

// Process resolves rec with the rule set registered for key and builds its
// envelope. Only configuration problems are errors: a missing rule set or
// an unknown marketplace profile. Everything about the record itself is
// reported in the result.
func (e *Engine) Process(ctx context.Context, key rules.Key, rec record.Record, rctx heuristic.Context) (*Result, error) {
	key = normalizeKey(key)

	rs, ok := e.RuleSet(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoRuleSet, key)
	}

	profile, err := e.builder.Profiles().Lookup(key.Marketplace, key.Country)
	if err != nil {
		return nil, err
	}

	table, cl, diags := e.Table(ctx, key)
	if required := cl.RequiredFor(key.Category); len(required) > 0 {
		rs = rs.WithRequired(required)
	}

	res := e.resolver.Resolve(rs, rec, withProfileUnits(rctx, profile))
	if e.alloc != nil {
		e.resolver.Allocate(ctx, e.alloc, rs, rctx.SKU, &res)
	}

	env, buildDiags, err := e.builder.Build(res.Values, table, key.Marketplace, key.Country, key.Category)
	if err != nil {
		return nil, err
	}

	diags.Merge(res.Diagnostics)
	diags.Merge(buildDiags)
	diags.Sort()

	return &Result{Resolved: res, Envelope: env, Diagnostics: diags}, nil
}

// Check lints the rule set registered for key without resolving a record:
// load-time findings, auto_generate rules naming no registered heuristic
// and, when a schema is available, attribute ids the schema does not
// classify. Misspellings get a suggestion.
func (e *Engine) Check(ctx context.Context, key rules.Key) (diagnostic.Diagnostics, error) {
	key = normalizeKey(key)

	rs, ok := e.RuleSet(key)
	if !ok {
		return diagnostic.Diagnostics{}, fmt.Errorf("%w: %s", ErrNoRuleSet, key)
	}

	scope := key.String()
	lib := e.resolver.Library()
	table, cl, diags := e.Table(ctx, key)
	diags.Merge(rs.Diagnostics())

	var known []string
	if !cl.IsEmpty() {
		known = table.Names()
	}

	for _, rule := range rs.Rules() {
		if gen, ok := rule.Value.(rules.Generator); ok && !lib.Has(gen.RuleType) {
			msg := fmt.Sprintf("unknown heuristic %q", gen.RuleType)
			if hint, ok := lib.Suggest(gen.RuleType); ok {
				msg += fmt.Sprintf(" (did you mean %q?)", hint)
			}

			diags.AddError(diagnostic.CodeUnknownHeuristic, msg, scope, rule.AttributeID)
		}

		if known == nil {
			continue
		}

		if _, ok := table.Format(rule.AttributeID); ok {
			continue
		}

		msg := "attribute is not described by the schema"
		if hint, ok := match.Closest(rule.AttributeID, known, match.DefaultThreshold); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}

		diags.AddWarning(diagnostic.CodeUnknownAttribute, msg, scope, rule.AttributeID)
	}

	diags.Sort()

	return diags, nil
}

// withProfileUnits gives measurement heuristics the profile's units unless
// the caller set them.
func withProfileUnits(rctx heuristic.Context, p feed.Profile) heuristic.Context {
	values := make(map[string]any, len(rctx.Values)+2)
	maps.Copy(values, rctx.Values)

	if _, ok := values[heuristic.ValueWeightUnit]; !ok {
		values[heuristic.ValueWeightUnit] = p.WeightUnit
	}

	if _, ok := values[heuristic.ValueLengthUnit]; !ok {
		values[heuristic.ValueLengthUnit] = p.LengthUnit
	}

	rctx.Values = values

	return rctx
}

// BatchItem is the per-record outcome of ProcessBatch.
type BatchItem struct {
	Result *Result
	Err    error
}

// ProcessBatch processes inputs concurrently, bounded by the configured
// worker count. Per-record failures are kept in their BatchItem and never
// stop the batch; only ctx cancellation does.
func (e *Engine) ProcessBatch(ctx context.Context, key rules.Key, inputs []resolve.Input) ([]BatchItem, error) {
	out := make([]BatchItem, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g.SetLimit(workers)

	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := e.Process(gctx, key, in.Record, in.Context)
			out[i] = BatchItem{Result: res, Err: err}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}

	return out, ctx.Err()
}
