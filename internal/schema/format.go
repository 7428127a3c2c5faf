package schema

import "fmt"

//go:generate go tool stringer -type=FieldFormat -linecomment -output=fieldformat_string.go

// FieldFormat is the wire shape required for an attribute.
type FieldFormat int

const (
	FormatUnknown FieldFormat = iota // unknown

	FormatScalar            // scalar
	FormatMultiLangObject   // multiLangObject
	FormatMultiLangArray    // multiLangArray
	FormatMeasurementObject // measurementObject
	FormatPlainArray        // plainArray
	FormatEnum              // enum
)

// IsValid returns true for every format except FormatUnknown.
func (f FieldFormat) IsValid() bool {
	return f > FormatUnknown && f <= FormatEnum
}

// ParseFieldFormat parses the name produced by String.
func ParseFieldFormat(s string) (FieldFormat, error) {
	for f := FormatScalar; f <= FormatEnum; f++ {
		if f.String() == s {
			return f, nil
		}
	}

	return FormatUnknown, fmt.Errorf("unknown field format %q", s)
}

// MarshalText renders the format name.
func (f FieldFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText parses a format name.
func (f *FieldFormat) UnmarshalText(text []byte) error {
	v, err := ParseFieldFormat(string(text))
	if err != nil {
		return err
	}

	*f = v

	return nil
}
