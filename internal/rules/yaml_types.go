package rules

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of a RuleSet.
type Document struct {
	Version     string         `yaml:"version,omitempty"`
	Marketplace string         `yaml:"marketplace"`
	Country     string         `yaml:"country"`
	Category    string         `yaml:"category"`
	Rules       []DocumentRule `yaml:"rules"`
}

// DocumentRule is the on-disk form of a MappingRule. Value stays a raw node
// until the mapping type is known.
type DocumentRule struct {
	AttributeID         string      `yaml:"attributeId"`
	MappingType         MappingType `yaml:"mappingType"`
	Value               yaml.Node   `yaml:"value,omitempty"`
	IsRequired          bool        `yaml:"isRequired,omitempty"`
	ConditionalRequired []Condition `yaml:"conditionalRequired,omitempty"`
}

// generatorNode is the object form of an auto_generate payload.
type generatorNode struct {
	RuleType string `yaml:"ruleType"`
	Param    any    `yaml:"param,omitempty"`
}

// decodeValue turns the raw value node into the payload variant for t.
func decodeValue(t MappingType, node *yaml.Node) (RuleValue, error) {
	empty := node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")

	switch t {
	case MappingDefaultValue:
		var v any
		if !empty {
			if err := node.Decode(&v); err != nil {
				return nil, err
			}
		}

		return Literal{Value: v}, nil

	case MappingChannelData:
		var s string
		if empty || node.Kind != yaml.ScalarNode {
			return nil, errors.New("channel_data value must be a path string")
		}

		if err := node.Decode(&s); err != nil {
			return nil, err
		}

		return NewSourcePath(s), nil

	case MappingEnumSelect:
		var s string
		if empty || node.Kind != yaml.ScalarNode {
			return nil, errors.New("enum_select value must be a scalar")
		}

		if err := node.Decode(&s); err != nil {
			return nil, err
		}

		return EnumChoice{Value: s}, nil

	case MappingAutoGenerate:
		switch node.Kind {
		case yaml.ScalarNode:
			var s string
			if err := node.Decode(&s); err != nil {
				return nil, err
			}

			if s == "" {
				return nil, errors.New("auto_generate value needs a ruleType")
			}

			return Generator{RuleType: s}, nil
		case yaml.MappingNode:
			var g generatorNode
			if err := node.Decode(&g); err != nil {
				return nil, err
			}

			if g.RuleType == "" {
				return nil, errors.New("auto_generate value needs a ruleType")
			}

			return Generator(g), nil
		default:
			return nil, errors.New("auto_generate value must be a rule type or {ruleType, param}")
		}

	case MappingUPCPool:
		var s string
		if !empty && node.Kind == yaml.ScalarNode {
			if err := node.Decode(&s); err != nil {
				return nil, err
			}
		}

		return PoolSlot{Pool: s}, nil

	default:
		return nil, fmt.Errorf("unknown mapping type %q", t)
	}
}

// encodeValue is the inverse of decodeValue.
func encodeValue(v RuleValue) any {
	switch t := v.(type) {
	case Literal:
		return t.Value
	case SourcePath:
		return t.Raw
	case EnumChoice:
		return t.Value
	case Generator:
		if t.Param == nil {
			return map[string]any{"ruleType": t.RuleType}
		}

		return map[string]any{"ruleType": t.RuleType, "param": t.Param}
	case PoolSlot:
		if t.Pool == "" {
			return nil
		}

		return t.Pool
	default:
		return nil
	}
}
