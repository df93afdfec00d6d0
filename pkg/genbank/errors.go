package genbank

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat marks problems that invalidate the whole input.
	ErrFormat = errors.New("malformed GenBank data")

	// ErrFeatureLocation marks a feature dropped because of its location.
	ErrFeatureLocation = errors.New("bad feature location")
)

// FormatError describes input that does not follow GenBank structure.
type FormatError struct {
	// Line is 1-based, 0 when the problem is not tied to a line.
	Line int
	// Record is the LOCUS name if it was already known.
	Record string
	Msg    string
}

func (e *FormatError) Error() string {
	var res string
	switch {
	case e.Record != "" && e.Line > 0:
		res = fmt.Sprintf("record %s, line %d: ", e.Record, e.Line)
	case e.Line > 0:
		res = fmt.Sprintf("line %d: ", e.Line)
	case e.Record != "":
		res = fmt.Sprintf("record %s: ", e.Record)
	}
	return res + e.Msg
}

func (e *FormatError) Unwrap() error {
	return ErrFormat
}

// FeatureLocationError describes a feature whose location cannot be
// parsed or does not fit the record sequence.
type FeatureLocationError struct {
	Record   string
	Kind     string
	Line     int
	Location string
	// Err wraps location.ErrSyntax or location.ErrRange.
	Err error
}

func (e *FeatureLocationError) Error() string {
	return fmt.Sprintf("record %s, line %d: %s feature dropped: %v",
		e.Record, e.Line, e.Kind, e.Err)
}

func (e *FeatureLocationError) Unwrap() []error {
	return []error{ErrFeatureLocation, e.Err}
}

// Diagnostic is a recoverable problem found during parsing.
type Diagnostic struct {
	Record string
	Line   int
	Err    error
}

func (d Diagnostic) String() string {
	return d.Err.Error()
}
