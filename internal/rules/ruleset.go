package rules

import (
	"errors"
	"fmt"
	"time"

	"listing-engine/internal/diagnostic"
)

var (
	// ErrDuplicateAttribute is returned when two rules target the same attribute.
	ErrDuplicateAttribute = errors.New("duplicate attribute id")
	// ErrInvalidRule is returned for a rule without an id or payload.
	ErrInvalidRule = errors.New("invalid rule")
)

// RuleSet is an ordered, immutable collection of mapping rules.
type RuleSet struct {
	key      Key
	version  string
	loadedAt time.Time
	rules    []MappingRule
	index    map[string]int
	diags    diagnostic.Diagnostics
}

// NewRuleSet validates and freezes rules. Duplicate ids and rules without an
// id or payload are errors; dangling conditions and unparsable channel paths
// are kept as load warnings.
func NewRuleSet(key Key, version string, rules []MappingRule) (*RuleSet, error) {
	rs := &RuleSet{
		key:      key,
		version:  version,
		loadedAt: time.Now().UTC(),
		rules:    make([]MappingRule, 0, len(rules)),
		index:    make(map[string]int, len(rules)),
	}

	for i, r := range rules {
		if r.AttributeID == "" {
			return nil, fmt.Errorf("%w: rule #%d has no attribute id", ErrInvalidRule, i)
		}

		if r.Value == nil {
			return nil, fmt.Errorf("%w: rule %q has no value payload", ErrInvalidRule, r.AttributeID)
		}

		if _, dup := rs.index[r.AttributeID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateAttribute, r.AttributeID)
		}

		rs.index[r.AttributeID] = len(rs.rules)
		rs.rules = append(rs.rules, r.clone())
	}

	rs.validate()

	return rs, nil
}

func (rs *RuleSet) validate() {
	scope := rs.key.String()

	for _, r := range rs.rules {
		if sp, ok := r.Value.(SourcePath); ok && sp.Err != nil {
			rs.diags.AddWarning(diagnostic.CodeInvalidPath,
				fmt.Sprintf("channel path %q cannot be parsed: %v", sp.Raw, sp.Err), scope, r.AttributeID)
		}

		for _, c := range r.ConditionalRequired {
			if _, ok := rs.index[c.DependsOn]; ok && c.DependsOn != r.AttributeID {
				continue
			}

			rs.diags.AddWarning(diagnostic.CodeDanglingCondition,
				fmt.Sprintf("conditional requirement depends on %q which is not in the rule set; treated as never true", c.DependsOn),
				scope, r.AttributeID)
		}
	}
}

// Key returns the (marketplace, country, category) scope.
func (rs *RuleSet) Key() Key { return rs.key }

// Version returns the configuration version the set was loaded from.
func (rs *RuleSet) Version() string { return rs.version }

// LoadedAt returns when the set was constructed.
func (rs *RuleSet) LoadedAt() time.Time { return rs.loadedAt }

// Len returns the number of rules.
func (rs *RuleSet) Len() int { return len(rs.rules) }

// Rules returns a copy of the rules in configuration order.
func (rs *RuleSet) Rules() []MappingRule {
	out := make([]MappingRule, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.clone()
	}

	return out
}

// Rule looks up a rule by attribute id.
func (rs *RuleSet) Rule(attributeID string) (MappingRule, bool) {
	i, ok := rs.index[attributeID]
	if !ok {
		return MappingRule{}, false
	}

	return rs.rules[i].clone(), true
}

// Has returns true if the set contains a rule for the attribute.
func (rs *RuleSet) Has(attributeID string) bool {
	_, ok := rs.index[attributeID]
	return ok
}

// Diagnostics returns the load-time warnings.
func (rs *RuleSet) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics
	d.Merge(rs.diags)

	return d
}

// IsConditionLive reports whether a condition's dependency exists in the set.
// Dangling conditions are never true.
func (rs *RuleSet) IsConditionLive(owner string, c Condition) bool {
	if c.DependsOn == owner {
		return false
	}

	_, ok := rs.index[c.DependsOn]

	return ok
}

// With returns a new RuleSet with rule replacing the rule of the same id,
// or appended when the id is new.
func (rs *RuleSet) With(rule MappingRule) (*RuleSet, error) {
	next := rs.Rules()

	if i, ok := rs.index[rule.AttributeID]; ok {
		next[i] = rule
	} else {
		next = append(next, rule)
	}

	return NewRuleSet(rs.key, rs.version, next)
}

// Without returns a new RuleSet lacking the rule for attributeID.
func (rs *RuleSet) Without(attributeID string) *RuleSet {
	next := make([]MappingRule, 0, len(rs.rules))

	for _, r := range rs.rules {
		if r.AttributeID != attributeID {
			next = append(next, r)
		}
	}

	// Removing a rule cannot introduce a duplicate or an empty id.
	out, _ := NewRuleSet(rs.key, rs.version, next)

	return out
}

// WithRequired returns a new RuleSet where every listed attribute is marked
// required. Ids without a rule are ignored.
func (rs *RuleSet) WithRequired(attributeIDs []string) *RuleSet {
	next := rs.Rules()

	for _, id := range attributeIDs {
		if i, ok := rs.index[id]; ok {
			next[i].Required = true
		}
	}

	out, _ := NewRuleSet(rs.key, rs.version, next)

	return out
}

// WithKey returns a copy of the set scoped to key.
func (rs *RuleSet) WithKey(key Key) *RuleSet {
	out, _ := NewRuleSet(key, rs.version, rs.Rules())

	return out
}
