package schema

import (
	"strings"

	"golang.org/x/text/language"
)

// Shape is the structural kind of a schema node.
type Shape int

const (
	ShapeLeaf Shape = iota
	ShapeLanguageContainer
	ShapeMeasurementContainer
	ShapeSequence
	ShapeContainer
)

func (s Shape) String() string {
	switch s {
	case ShapeLeaf:
		return "leaf"
	case ShapeLanguageContainer:
		return "languageContainer"
	case ShapeMeasurementContainer:
		return "measurementContainer"
	case ShapeSequence:
		return "sequence"
	case ShapeContainer:
		return "container"
	default:
		return "unknown"
	}
}

// Visitor receives one callback per node shape.
type Visitor interface {
	VisitLanguageContainer(path string, n *Node)
	VisitMeasurementContainer(path string, n *Node)
	VisitSequence(path string, n *Node)
	VisitContainer(path string, n *Node)
	VisitLeaf(path string, n *Node)
}

// languageSet decides whether an object key is a language code.
type languageSet struct {
	declared map[string]struct{}
}

func newLanguageSet(declared []string) languageSet {
	ls := languageSet{}

	if len(declared) > 0 {
		ls.declared = make(map[string]struct{}, len(declared))
		for _, l := range declared {
			ls.declared[normalizeLanguage(l)] = struct{}{}
		}
	}

	return ls
}

func normalizeLanguage(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
}

// contains reports whether key names a language. Declared languages are
// authoritative; without them a key must be a two-letter ISO 639-1 code,
// optionally with a region, that x/text recognizes.
func (ls languageSet) contains(key string) bool {
	k := normalizeLanguage(key)

	if ls.declared != nil {
		_, ok := ls.declared[k]
		return ok
	}

	primary, _, _ := strings.Cut(k, "-")
	if len(primary) != 2 {
		return false
	}

	tag, err := language.Parse(k)
	if err != nil {
		return false
	}

	base, conf := tag.Base()

	return conf == language.Exact && base.String() == primary
}

func isObject(n *Node) bool {
	return n != nil && (n.Type == TypeObject || (n.Type == "" && len(n.Properties) > 0))
}

func isArray(n *Node) bool {
	return n != nil && (n.Type == TypeArray || (n.Type == "" && n.Items != nil))
}

// shapeOf returns the structural kind of n.
func (ls languageSet) shapeOf(n *Node) Shape {
	switch {
	case isArray(n):
		return ShapeSequence
	case !isObject(n) || len(n.Properties) == 0:
		return ShapeLeaf
	case ls.isLanguageContainer(n):
		return ShapeLanguageContainer
	case isMeasurementContainer(n):
		return ShapeMeasurementContainer
	default:
		return ShapeContainer
	}
}

func (ls languageSet) isLanguageContainer(n *Node) bool {
	if !isObject(n) || len(n.Properties) == 0 {
		return false
	}

	for _, f := range n.Properties {
		if !ls.contains(f.Name) {
			return false
		}
	}

	return true
}

func isMeasurementContainer(n *Node) bool {
	if !isObject(n) || len(n.Properties) != 2 {
		return false
	}

	_, unit := n.Properties.Get("unit")
	_, magnitude := n.Properties.Get("magnitude")

	return unit && magnitude
}

// walk dispatches n to v by shape. Containers are not descended into here;
// the visitor decides whether to recurse.
func (ls languageSet) walk(path string, n *Node, v Visitor) {
	switch ls.shapeOf(n) {
	case ShapeLanguageContainer:
		v.VisitLanguageContainer(path, n)
	case ShapeMeasurementContainer:
		v.VisitMeasurementContainer(path, n)
	case ShapeSequence:
		v.VisitSequence(path, n)
	case ShapeContainer:
		v.VisitContainer(path, n)
	default:
		v.VisitLeaf(path, n)
	}
}
