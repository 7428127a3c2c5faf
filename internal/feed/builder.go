package feed

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"

	"listing-engine/internal/diagnostic"
	"listing-engine/internal/schema"
)

// Builder turns resolved attributes into envelopes. It is safe for
// concurrent use.
type Builder struct {
	profiles *Profiles
	newID    func() string
	logger   *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithProfiles replaces the built-in profiles.
func WithProfiles(ps *Profiles) BuilderOption {
	return func(b *Builder) {
		if ps != nil {
			b.profiles = ps
		}
	}
}

// WithFeedID sets the feed id generator. An empty id omits the field.
func WithFeedID(gen func() string) BuilderOption {
	return func(b *Builder) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// WithBuilderLogger sets the logger. The default is slog.Default().
func WithBuilderLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a builder with the built-in profiles and random feed ids.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		profiles: DefaultProfiles(),
		newID:    uuid.NewString,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Profiles returns the profiles the builder knows.
func (b *Builder) Profiles() *Profiles {
	return b.profiles
}

// Build shapes values into a one-item envelope for (marketplace, country)
// and categoryKey, which is either "Category" or "Category/SubCategory".
// Format problems are collected as warnings; only an unknown profile is an
// error.
func (b *Builder) Build(values map[string]any, table schema.Table, marketplace, country, categoryKey string) (*Envelope, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	p, err := b.profiles.Lookup(marketplace, country)
	if err != nil {
		return nil, diags, err
	}

	category, sub := splitCategory(categoryKey)
	scope := p.key() + "/" + category

	converted, convDiags := ConvertAll(values, table, p, scope)
	diags.Merge(convDiags)

	item := Item{
		Orderable: map[string]any{},
		Visible:   map[string]map[string]any{category: {}},
	}

	var withheld []string

	for _, id := range slices.Sorted(maps.Keys(converted)) {
		bucket := item.Visible[category]

		switch {
		case p.IsAlwaysVisible(id):
			bucket = item.Orderable
		case p.LocaleSpecific:
			withheld = append(withheld, id)
			continue
		}

		if err := setNested(bucket, id, converted[id]); err != nil {
			diags.AddWarning(diagnostic.CodeFormatMismatch, err.Error(), scope, id)
		}
	}

	if len(withheld) > 0 {
		diags.AddInfo(diagnostic.CodeCategoryWithheld,
			fmt.Sprintf("category bucket left for editorial step: %s", strings.Join(withheld, ", ")), scope, "")
	}

	diags.Sort()

	env := &Envelope{
		Header: Header{
			Version:      p.Version,
			FeedID:       b.newID(),
			BusinessUnit: p.BusinessUnit,
			Locale:       slices.Clone(p.Languages),
			SubCategory:  sub,
		},
		Items: []Item{item},
	}

	b.logger.Debug("envelope built", "profile", p.key(), "category", category,
		"orderable", len(item.Orderable), "visible", len(item.Visible[category]), "withheld", len(withheld))

	return env, diags, nil
}

// ConvertAll applies the table's formats to every value for profile p.
// Attributes the table does not classify pass through as scalars; when the
// table is not empty that is noted as info.
func ConvertAll(values map[string]any, table schema.Table, p Profile, scope string) (map[string]any, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	out := make(map[string]any, len(values))

	for id, v := range values {
		if _, declared := table.Format(id); !declared && !table.IsEmpty() {
			diags.AddInfo(diagnostic.CodeUnknownCategoryFormat, "no declared format, shipped as is", scope, id)
		}

		f := table.FormatOr(id)

		t := Target{Language: p.DefaultLanguage(), Languages: p.Languages, Unit: p.UnitFor(id)}

		w, err := Convert(v, f, t)
		if err != nil {
			diags.AddWarning(diagnostic.CodeFormatMismatch,
				fmt.Sprintf("cannot convert to %s, passed through: %v", f, err), scope, id)
		}

		out[id] = w
	}

	diags.Sort()

	return out, diags
}

// splitCategory splits "Category/SubCategory". Without a slash the
// category is also the subcategory.
func splitCategory(key string) (string, string) {
	category, sub, ok := strings.Cut(key, "/")
	category = strings.TrimSpace(category)

	if !ok || strings.TrimSpace(sub) == "" {
		return category, category
	}

	return category, strings.TrimSpace(sub)
}

// setNested stores v under a dotted id, creating intermediate objects.
func setNested(bucket map[string]any, id string, v any) error {
	parts := strings.Split(id, ".")
	m := bucket

	for _, part := range parts[:len(parts)-1] {
		next, exists := m[part]
		if !exists {
			child := map[string]any{}
			m[part] = child
			m = child

			continue
		}

		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%q conflicts with a scalar at %q", id, part)
		}

		// The object may be a caller's value; extend a copy.
		child = maps.Clone(child)
		m[part] = child
		m = child
	}

	last := parts[len(parts)-1]
	if _, exists := m[last]; exists {
		return fmt.Errorf("%q is already set", id)
	}

	m[last] = v

	return nil
}
