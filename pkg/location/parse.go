package location

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Error describes a location problem.
type Error struct {
	// Loc is the location text.
	Loc string
	// Pos is the byte offset of the problem in Loc after whitespace
	// removal, -1 if not applicable.
	Pos int
	Msg string
	// Err is ErrSyntax or ErrRange.
	Err error
}

func (e *Error) Error() string {
	if e.Pos >= 0 && e.Err == ErrSyntax {
		return fmt.Sprintf("%s %q at %d: %s", e.Err, e.Loc, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s %q: %s", e.Err, e.Loc, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Parse converts a GenBank location string to a Location. It understands
// ranges "a..b", single bases "a", "complement(...)" and "join(...)",
// nested in any combination. Partial markers '<' and '>' are stripped.
// Whitespace, including line breaks, is ignored.
func Parse(s string) (Location, error) {
	p := parser{
		src: strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s),
	}
	if p.src == "" {
		return Location{}, p.errorf("empty location")
	}

	spans, join, err := p.location()
	if err != nil {
		return Location{}, err
	}
	if p.pos != len(p.src) {
		return Location{}, p.errorf("unexpected %q", p.src[p.pos:])
	}

	res := Location{Kind: Simple, Spans: spans}
	if join || len(spans) > 1 {
		res.Kind = Join
	}
	return res, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &Error{
		Loc: p.src,
		Pos: p.pos,
		Msg: fmt.Sprintf(format, args...),
		Err: ErrSyntax,
	}
}

func (p *parser) consume(prefix string) bool {
	if strings.HasPrefix(p.src[p.pos:], prefix) {
		p.pos += len(prefix)
		return true
	}
	return false
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// location returns spans in listed order and whether a join was met.
func (p *parser) location() ([]Span, bool, error) {
	switch {
	case p.consume("complement("):
		spans, join, err := p.location()
		if err != nil {
			return nil, false, err
		}
		if !p.consume(")") {
			return nil, false, p.errorf("complement is not closed")
		}
		slices.Reverse(spans)
		for i := range spans {
			spans[i].Strand = -spans[i].Strand
		}
		return spans, join, nil

	case p.consume("join("):
		var res []Span
		for {
			spans, _, err := p.location()
			if err != nil {
				return nil, false, err
			}
			res = append(res, spans...)
			if p.consume(",") {
				continue
			}
			if p.consume(")") {
				return res, true, nil
			}
			return nil, false, p.errorf("join expects ',' or ')'")
		}

	case p.consume("order("), p.consume("bond("), p.consume("gap("):
		return nil, false, p.errorf("operator is not supported")
	}

	span, err := p.span()
	if err != nil {
		return nil, false, err
	}
	return []Span{span}, false, nil
}

func (p *parser) span() (Span, error) {
	res := Span{Strand: Forward}

	res.PartialStart = p.partial()
	start, err := p.number()
	if err != nil {
		return res, err
	}
	end := start

	switch {
	case p.consume(".."):
		res.PartialEnd = p.partial()
		if end, err = p.number(); err != nil {
			return res, err
		}
	case p.peek() == '^':
		return res, p.errorf("sites between bases are not supported")
	case p.peek() == '.':
		return res, p.errorf("single base within a range is not supported")
	}

	if start > end {
		return res, p.errorf("start %d is after end %d", start, end)
	}
	res.Start = start - 1
	res.End = end
	return res, nil
}

func (p *parser) partial() bool {
	if c := p.peek(); c == '<' || c == '>' {
		p.pos++
		return true
	}
	return false
}

func (p *parser) number() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		if p.pos >= len(p.src) {
			return 0, p.errorf("position expected, got end of location")
		}
		return 0, p.errorf("position expected, got %q", p.src[p.pos])
	}
	res, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, p.errorf("bad position: %v", err)
	}
	if res < 1 {
		return 0, p.errorf("positions start at 1, got %d", res)
	}
	return res, nil
}
