package schema

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Node types a schema may declare.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)

var errExpectedMapping = errors.New("expected a mapping")

// Document is a marketplace schema description for one (marketplace, country).
type Document struct {
	Version     string              `yaml:"version,omitempty"`
	Marketplace string              `yaml:"marketplace"`
	Country     string              `yaml:"country"`
	Languages   []string            `yaml:"languages,omitempty"`
	Fields      Fields              `yaml:"fields,omitempty"`
	Categories  Categories          `yaml:"categories,omitempty"`
	Required    map[string][]string `yaml:"required,omitempty"`
}

// Node declares the shape of one field.
type Node struct {
	Type       string `yaml:"type,omitempty"`
	Properties Fields `yaml:"properties,omitempty"`
	Items      *Node  `yaml:"items,omitempty"`
	Enum       []any  `yaml:"enum,omitempty"`
}

// Field is a named node. Document order is kept so that flattening is
// deterministic.
type Field struct {
	Name string
	Node *Node
}

// Fields is an ordered field map.
type Fields []Field

// Category is a category-scoped field map.
type Category struct {
	Name   string
	Fields Fields
}

// Categories is an ordered category map.
type Categories []Category

// UnmarshalYAML decodes a mapping while keeping key order.
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("fields: %w, got %v", errExpectedMapping, node.Kind)
	}

	out := make(Fields, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var n Node

		// A null value declares an untyped leaf.
		if v := node.Content[i+1]; v.Tag != "!!null" {
			if err := v.Decode(&n); err != nil {
				return fmt.Errorf("field %q: %w", node.Content[i].Value, err)
			}
		}

		out = append(out, Field{Name: node.Content[i].Value, Node: &n})
	}

	*f = out

	return nil
}

// MarshalYAML encodes the fields as an ordered mapping.
func (f Fields) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode}

	for _, field := range f {
		var v yaml.Node
		if err := v.Encode(field.Node); err != nil {
			return nil, err
		}

		out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: field.Name}, &v)
	}

	return out, nil
}

// Get returns the node for name.
func (f Fields) Get(name string) (*Node, bool) {
	for _, field := range f {
		if field.Name == name {
			return field.Node, true
		}
	}

	return nil, false
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, field := range f {
		names[i] = field.Name
	}

	return names
}

// UnmarshalYAML decodes a category mapping while keeping key order.
func (c *Categories) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("categories: %w, got %v", errExpectedMapping, node.Kind)
	}

	out := make(Categories, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var fields Fields
		if err := node.Content[i+1].Decode(&fields); err != nil {
			return fmt.Errorf("category %q: %w", node.Content[i].Value, err)
		}

		out = append(out, Category{Name: node.Content[i].Value, Fields: fields})
	}

	*c = out

	return nil
}

// MarshalYAML encodes the categories as an ordered mapping.
func (c Categories) MarshalYAML() (any, error) {
	out := &yaml.Node{Kind: yaml.MappingNode}

	for _, cat := range c {
		var v yaml.Node
		if err := v.Encode(cat.Fields); err != nil {
			return nil, err
		}

		out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: cat.Name}, &v)
	}

	return out, nil
}

// LoadFile loads and parses a schema document from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a YAML or JSON schema document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}

	if len(doc.Fields) == 0 && len(doc.Categories) == 0 {
		return nil, errors.New("schema document declares no fields")
	}

	return &doc, nil
}

// Marshal serializes a document back to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
