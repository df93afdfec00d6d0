// Package location models GenBank feature locations.
//
// Positions in GenBank text are 1-based and inclusive. Inside this package
// every span is 0-based and half-open: text "10..20" becomes Start=9,
// End=20, so End-Start is always the span length.
//
// A Location is either Simple (one span) or Join (ordered spans that are
// concatenated in listed order). Strand is kept per span, so
// join(1..10,complement(20..30)) mixes strands and
// complement(join(1..10,20..30)) becomes
// join(complement(20..30),complement(1..10)).
//
// Partial markers '<' and '>' are stripped. Boundaries are treated as
// exact and the markers survive only as PartialStart/PartialEnd flags.
package location

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gnames/gngb/pkg/dna"
)

var (
	// ErrSyntax means a location string cannot be parsed.
	ErrSyntax = errors.New("malformed location")

	// ErrRange means a location does not fit into its sequence.
	ErrRange = errors.New("location out of sequence range")
)

// Strand of a span.
type Strand int8

const (
	// Forward strand is read as is.
	Forward Strand = 1
	// Reverse strand is read as reverse complement.
	Reverse Strand = -1
)

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Kind separates two variants of a Location.
type Kind int

const (
	// Simple location has exactly one span.
	Simple Kind = iota
	// Join location concatenates its spans in listed order.
	Join
)

func (k Kind) String() string {
	if k == Join {
		return "join"
	}
	return "simple"
}

// Span is a contiguous region of a sequence, [Start, End).
type Span struct {
	Start  int
	End    int
	Strand Strand

	// PartialStart is true when the lower boundary had '<' or '>'.
	PartialStart bool
	// PartialEnd is true when the upper boundary had '<' or '>'.
	PartialEnd bool
}

// Len returns the number of bases in the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Location of a feature.
type Location struct {
	Kind  Kind
	Spans []Span
}

// NewSimple creates a single span location from 0-based half-open
// coordinates.
func NewSimple(start, end int, strand Strand) Location {
	return Location{
		Kind:  Simple,
		Spans: []Span{{Start: start, End: end, Strand: strand}},
	}
}

// NewJoin creates a joined location, spans keep their order.
func NewJoin(spans ...Span) Location {
	res := Location{Kind: Join, Spans: make([]Span, len(spans))}
	copy(res.Spans, spans)
	return res
}

// Len is the total number of bases covered by the location.
func (l Location) Len() int {
	var res int
	for _, s := range l.Spans {
		res += s.Len()
	}
	return res
}

// Strand returns the strand shared by all spans, or 0 if spans
// disagree or there are no spans.
func (l Location) Strand() Strand {
	if len(l.Spans) == 0 {
		return 0
	}
	res := l.Spans[0].Strand
	for _, s := range l.Spans[1:] {
		if s.Strand != res {
			return 0
		}
	}
	return res
}

// IsPartial reports if any boundary was fuzzy in the source text.
func (l Location) IsPartial() bool {
	for _, s := range l.Spans {
		if s.PartialStart || s.PartialEnd {
			return true
		}
	}
	return false
}

// Validate checks that every span fits into a sequence of length n.
func (l Location) Validate(n int) error {
	if len(l.Spans) == 0 {
		return &Error{Loc: l.String(), Pos: -1, Msg: "no spans", Err: ErrSyntax}
	}
	for _, s := range l.Spans {
		if s.Start < 0 || s.End > n || s.Start >= s.End {
			return &Error{
				Loc: l.String(),
				Pos: -1,
				Msg: "span " + spanString(s) + " does not fit sequence of length " +
					strconv.Itoa(n),
				Err: ErrRange,
			}
		}
	}
	return nil
}

// Resolve extracts the nucleotides of the location from seq. Reverse
// spans are reverse complemented, spans are concatenated in listed
// order.
func (l Location) Resolve(seq []byte) ([]byte, error) {
	if err := l.Validate(len(seq)); err != nil {
		return nil, err
	}
	res := make([]byte, 0, l.Len())
	for _, s := range l.Spans {
		part := seq[s.Start:s.End]
		if s.Strand == Reverse {
			part = dna.ReverseComplement(part)
		}
		res = append(res, part...)
	}
	return res, nil
}

// String renders the location in GenBank notation. It is meant for
// reports, partial markers are restored.
func (l Location) String() string {
	if len(l.Spans) == 0 {
		return ""
	}
	parts := make([]string, len(l.Spans))
	for i, s := range l.Spans {
		parts[i] = spanString(s)
	}
	if l.Kind == Simple && len(parts) == 1 {
		return parts[0]
	}
	return "join(" + strings.Join(parts, ",") + ")"
}

func spanString(s Span) string {
	var b strings.Builder
	if s.PartialStart {
		b.WriteByte('<')
	}
	b.WriteString(strconv.Itoa(s.Start + 1))
	if s.End-s.Start != 1 || s.PartialEnd {
		b.WriteString("..")
		if s.PartialEnd {
			b.WriteByte('>')
		}
		b.WriteString(strconv.Itoa(s.End))
	}
	if s.Strand == Reverse {
		return "complement(" + b.String() + ")"
	}
	return b.String()
}
