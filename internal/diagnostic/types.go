package diagnostic

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"listing-engine/internal/common"
)

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Diagnostic is one finding about a record, a rule set or a schema.
// Scope is the "marketplace/country[/category]" key it was raised under and
// AttributeID the attribute it concerns; both may be empty.
type Diagnostic struct {
	Severity    Severity
	Code        string
	Message     string
	Scope       string
	AttributeID string
}

// String renders "[scope] attribute: [code] message", leaving out the
// parts that are empty.
func (d Diagnostic) String() string {
	var b strings.Builder

	if d.Scope != "" {
		b.WriteString("[" + d.Scope + "]")
	}

	if d.AttributeID != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(d.AttributeID)
	}

	if b.Len() > 0 {
		b.WriteString(": ")
	}

	if d.Code != "" {
		fmt.Fprintf(&b, "[%s] ", d.Code)
	}

	b.WriteString(d.Message)

	return b.String()
}

// Diagnostics collects findings by severity. The zero value is ready to
// use; the Add methods and Merge/Sort need a pointer, everything else reads
// a copy.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

func (d *Diagnostics) add(sev Severity, code, message, scope, attributeID string) {
	diag := Diagnostic{Severity: sev, Code: code, Message: message, Scope: scope, AttributeID: attributeID}

	switch sev {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

func (d *Diagnostics) AddError(code, message, scope, attributeID string) {
	d.add(SeverityError, code, message, scope, attributeID)
}

func (d *Diagnostics) AddWarning(code, message, scope, attributeID string) {
	d.add(SeverityWarning, code, message, scope, attributeID)
}

func (d *Diagnostics) AddInfo(code, message, scope, attributeID string) {
	d.add(SeverityInfo, code, message, scope, attributeID)
}

// Merge appends other's findings.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Sort orders each severity by attribute id, code and message so output
// does not depend on rule or map iteration order.
func (d *Diagnostics) Sort() {
	byKey := func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.AttributeID, b.AttributeID),
			cmp.Compare(a.Code, b.Code),
			cmp.Compare(a.Message, b.Message),
		)
	}

	slices.SortStableFunc(d.Errors, byKey)
	slices.SortStableFunc(d.Warnings, byKey)
	slices.SortStableFunc(d.Infos, byKey)
}

func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

func (d Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// IsValid reports whether nothing was serious enough to be an error.
func (d Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// All returns errors, then warnings, then infos.
func (d Diagnostics) All() []Diagnostic {
	return slices.Concat(d.Errors, d.Warnings, d.Infos)
}

// ForAttribute returns the findings about one attribute, most severe first.
func (d Diagnostics) ForAttribute(attributeID string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.AttributeID == attributeID {
			out = append(out, diag)
		}
	}

	return out
}

// Err joins the errors into one error, or returns nil when there are none.
// It is not named Error so Diagnostics never satisfies the error interface
// by accident.
func (d Diagnostics) Err() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, len(d.Errors))
	for i, e := range d.Errors {
		errs[i] = errors.New(e.String())
	}

	return errors.Join(errs...)
}
