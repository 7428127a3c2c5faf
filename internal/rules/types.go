package rules

import (
	"fmt"
	"reflect"

	"listing-engine/internal/record"
)

// MappingType selects how a rule derives its attribute value.
type MappingType string

const (
	MappingDefaultValue MappingType = "default_value"
	MappingChannelData  MappingType = "channel_data"
	MappingEnumSelect   MappingType = "enum_select"
	MappingAutoGenerate MappingType = "auto_generate"
	MappingUPCPool      MappingType = "upc_pool"
)

// IsValid returns true if the mapping type is a recognized value.
func (t MappingType) IsValid() bool {
	switch t {
	case MappingDefaultValue, MappingChannelData, MappingEnumSelect, MappingAutoGenerate, MappingUPCPool:
		return true
	default:
		return false
	}
}

// RuleValue is the payload of a MappingRule. The concrete type is fixed by
// the rule's mapping type.
type RuleValue interface {
	Kind() MappingType
	isRuleValue()
}

// Literal is the payload of a default_value rule.
type Literal struct {
	Value any
}

// SourcePath is the payload of a channel_data rule.
type SourcePath struct {
	Raw    string
	Parsed record.Path
	// Err is set when Raw does not parse; such a rule never resolves.
	Err error
}

// NewSourcePath parses raw into a SourcePath, keeping the parse error.
func NewSourcePath(raw string) SourcePath {
	p, err := record.ParsePath(raw)
	return SourcePath{Raw: raw, Parsed: p, Err: err}
}

// EnumChoice is the payload of an enum_select rule.
type EnumChoice struct {
	Value string
}

// Generator is the payload of an auto_generate rule.
type Generator struct {
	RuleType string
	Param    any
}

// PoolSlot is the payload of a upc_pool rule.
type PoolSlot struct {
	Pool string
}

func (Literal) Kind() MappingType    { return MappingDefaultValue }
func (SourcePath) Kind() MappingType { return MappingChannelData }
func (EnumChoice) Kind() MappingType { return MappingEnumSelect }
func (Generator) Kind() MappingType  { return MappingAutoGenerate }
func (PoolSlot) Kind() MappingType   { return MappingUPCPool }

func (Literal) isRuleValue()    {}
func (SourcePath) isRuleValue() {}
func (EnumChoice) isRuleValue() {}
func (Generator) isRuleValue()  {}
func (PoolSlot) isRuleValue()   {}

// MappingRule describes how to derive one target attribute.
type MappingRule struct {
	AttributeID         string
	Value               RuleValue
	Required            bool
	ConditionalRequired []Condition
}

// Type returns the rule's mapping type, derived from its payload.
func (r MappingRule) Type() MappingType {
	if r.Value == nil {
		return ""
	}

	return r.Value.Kind()
}

// clone copies the condition slice so callers cannot reach a RuleSet's storage.
func (r MappingRule) clone() MappingRule {
	if r.ConditionalRequired != nil {
		r.ConditionalRequired = append([]Condition(nil), r.ConditionalRequired...)
	}

	return r
}

// Condition makes its rule required when the resolved value of DependsOn
// equals DependsOnValue.
type Condition struct {
	DependsOn      string `yaml:"dependsOn" json:"dependsOn"`
	DependsOnValue any    `yaml:"dependsOnValue" json:"dependsOnValue"`
}

// Matches reports whether a resolved value satisfies the condition.
// Scalars compare by their rendered form so 5 and "5" are equal.
func (c Condition) Matches(resolved any, found bool) bool {
	if !found {
		return false
	}

	want, wantScalar := record.Scalar(c.DependsOnValue)
	got, gotScalar := record.Scalar(resolved)

	if wantScalar && gotScalar {
		return want == got
	}

	return reflect.DeepEqual(c.DependsOnValue, resolved)
}

// Key identifies the scope of a RuleSet.
type Key struct {
	Marketplace string
	Country     string
	Category    string
}

// String returns "marketplace/country/category".
func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Marketplace, k.Country, k.Category)
}
