package record

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Path is a parsed record path.
type Path struct {
	Segments []PathSegment
}

// PathSegment is one dotted component of a path: a key followed by zero or
// more array indexes.
type PathSegment struct {
	Key     string
	Indexes []int
}

// String renders the path back into its textual form.
func (p Path) String() string {
	parts := make([]string, 0, len(p.Segments))

	for _, seg := range p.Segments {
		var b strings.Builder

		b.WriteString(seg.Key)

		for _, idx := range seg.Indexes {
			b.WriteString("[" + strconv.Itoa(idx) + "]")
		}

		parts = append(parts, b.String())
	}

	return strings.Join(parts, ".")
}

// ParsePath parses a path string into a Path.
// Supports: "key", "a.b", "items[0]", "items[0].name", "grid[1][2]".
func ParsePath(path string) (Path, error) {
	if strings.TrimSpace(path) == "" {
		return Path{}, errors.New("empty path")
	}

	var segments []PathSegment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		seg, err := parseSegment(part)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", path, err)
		}

		segments = append(segments, seg)
	}

	return Path{Segments: segments}, nil
}

// MustParsePath is like ParsePath but panics on malformed input.
// Intended for package-level constants.
func MustParsePath(path string) Path {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return p
}

func parseSegment(part string) (PathSegment, error) {
	open := strings.IndexByte(part, '[')
	if open < 0 {
		if strings.ContainsRune(part, ']') {
			return PathSegment{}, fmt.Errorf("unbalanced bracket in %q", part)
		}

		return PathSegment{Key: part}, nil
	}

	key := part[:open]
	if key == "" {
		return PathSegment{}, fmt.Errorf("index without key in %q", part)
	}

	seg := PathSegment{Key: key}
	rest := part[open:]

	for rest != "" {
		if rest[0] != '[' {
			return PathSegment{}, fmt.Errorf("unexpected %q after index in %q", rest, part)
		}

		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return PathSegment{}, fmt.Errorf("unbalanced bracket in %q", part)
		}

		idx, err := strconv.Atoi(rest[1:end])
		if err != nil || idx < 0 {
			return PathSegment{}, fmt.Errorf("invalid index %q in %q", rest[1:end], part)
		}

		seg.Indexes = append(seg.Indexes, idx)
		rest = rest[end+1:]
	}

	return seg, nil
}
