package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a rule document from the given path.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a YAML or JSON rule document into a RuleSet.
func Parse(data []byte) (*RuleSet, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule document: %w", err)
	}

	return FromDocument(&doc)
}

// FromDocument converts a decoded document into a RuleSet.
func FromDocument(doc *Document) (*RuleSet, error) {
	applyDefaults(doc)

	mapped := make([]MappingRule, 0, len(doc.Rules))

	for i := range doc.Rules {
		dr := &doc.Rules[i]

		if !dr.MappingType.IsValid() {
			return nil, fmt.Errorf("%w: rule %q has unknown mapping type %q", ErrInvalidRule, dr.AttributeID, dr.MappingType)
		}

		value, err := decodeValue(dr.MappingType, &dr.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: rule %q: %w", ErrInvalidRule, dr.AttributeID, err)
		}

		mapped = append(mapped, MappingRule{
			AttributeID:         dr.AttributeID,
			Value:               value,
			Required:            dr.IsRequired,
			ConditionalRequired: dr.ConditionalRequired,
		})
	}

	key := Key{Marketplace: doc.Marketplace, Country: doc.Country, Category: doc.Category}

	return NewRuleSet(key, doc.Version, mapped)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = "1"
	}
}

// Marshal serializes a RuleSet back to YAML.
func Marshal(rs *RuleSet) ([]byte, error) {
	type outRule struct {
		AttributeID         string      `yaml:"attributeId"`
		MappingType         MappingType `yaml:"mappingType"`
		Value               any         `yaml:"value,omitempty"`
		IsRequired          bool        `yaml:"isRequired,omitempty"`
		ConditionalRequired []Condition `yaml:"conditionalRequired,omitempty"`
	}

	type outDoc struct {
		Version     string    `yaml:"version,omitempty"`
		Marketplace string    `yaml:"marketplace"`
		Country     string    `yaml:"country"`
		Category    string    `yaml:"category"`
		Rules       []outRule `yaml:"rules"`
	}

	key := rs.Key()
	doc := outDoc{
		Version:     rs.Version(),
		Marketplace: key.Marketplace,
		Country:     key.Country,
		Category:    key.Category,
	}

	for _, r := range rs.Rules() {
		doc.Rules = append(doc.Rules, outRule{
			AttributeID:         r.AttributeID,
			MappingType:         r.Type(),
			Value:               encodeValue(r.Value),
			IsRequired:          r.Required,
			ConditionalRequired: r.ConditionalRequired,
		})
	}

	return yaml.Marshal(doc)
}

// WriteFile writes a RuleSet to the given path.
func WriteFile(rs *RuleSet, path string) error {
	data, err := Marshal(rs)
	if err != nil {
		return fmt.Errorf("failed to marshal rule set: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write rule file %s: %w", path, err)
	}

	return nil
}
