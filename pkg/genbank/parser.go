package genbank

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gnames/gngb/pkg/dna"
	"github.com/gnames/gngb/pkg/location"
)

const (
	// headerIndent is the column where header values start.
	headerIndent = 12
	// qualifierIndent is the column where feature locations and
	// qualifiers start.
	qualifierIndent = 21
	// maxLine limits the length of one input line.
	maxLine = 16 * 1024 * 1024
)

// Parse reads GenBank text and returns its records in file order.
// A *FormatError stops parsing and no records are returned. Features
// with bad locations are dropped and reported as diagnostics.
func Parse(r io.Reader) ([]*Record, []Diagnostic, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, nil, err
	}
	p := parser{lines: lines}
	return p.parse()
}

// ParseString is Parse for in-memory text.
func ParseString(s string) ([]*Record, []Diagnostic, error) {
	return Parse(strings.NewReader(s))
}

func readLines(r io.Reader) ([]string, error) {
	var res []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		res = append(res, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read GenBank data: %w", err)
	}
	return res, nil
}

type parser struct {
	lines []string
	// i is the index of the current line.
	i     int
	diags []Diagnostic
}

func (p *parser) parse() ([]*Record, []Diagnostic, error) {
	var res []*Record
	for p.skipToLocus() {
		rec, err := p.record()
		if err != nil {
			return nil, nil, err
		}
		res = append(res, rec)
	}
	if len(res) == 0 {
		return nil, nil, &FormatError{Msg: "no LOCUS line found"}
	}
	return res, p.diags, nil
}

// skipToLocus moves to the next LOCUS line, skipping release banners
// and empty lines.
func (p *parser) skipToLocus() bool {
	for ; p.i < len(p.lines); p.i++ {
		if isKeyword(p.lines[p.i], "LOCUS") {
			return true
		}
	}
	return false
}

func (p *parser) formatError(rec *Record, format string, args ...any) error {
	res := &FormatError{
		Line: p.i + 1,
		Msg:  fmt.Sprintf(format, args...),
	}
	if rec != nil {
		res.Record = rec.Name
	}
	return res
}

func (p *parser) record() (*Record, error) {
	rec := &Record{}
	if err := p.locus(rec); err != nil {
		return nil, err
	}
	p.i++

	var hasFeatures bool
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		switch {
		case strings.TrimSpace(line) == "":
			p.i++
		case isKeyword(line, "FEATURES"):
			if hasFeatures {
				return nil, p.formatError(rec, "second FEATURES section")
			}
			hasFeatures = true
			if err := p.features(rec); err != nil {
				return nil, err
			}
		case isKeyword(line, "ORIGIN"):
			if err := p.origin(rec); err != nil {
				return nil, err
			}
			p.checkRecord(rec)
			return rec, nil
		case strings.HasPrefix(line, "//"):
			return nil, p.formatError(rec, "ORIGIN section is missing")
		case isKeyword(line, "LOCUS"):
			return nil, p.formatError(rec,
				"record is not terminated with '//' before next LOCUS")
		case line[0] == ' ' && !isHeaderEntry(line):
			return nil, p.formatError(rec, "unexpected continuation line")
		default:
			p.header(rec)
		}
	}
	return nil, p.formatError(rec, "unexpected end of input, ORIGIN section is missing")
}

func (p *parser) locus(rec *Record) error {
	fields := strings.Fields(p.lines[p.i])
	if len(fields) < 2 {
		return p.formatError(nil, "LOCUS line has no identifier")
	}
	rec.Name = fields[1]
	for i, f := range fields[2:] {
		idx := i + 2
		low := strings.ToLower(f)
		switch {
		case low == "bp" || low == "aa":
			if n, err := strconv.Atoi(fields[idx-1]); err == nil {
				rec.Length = n
			}
		case low == "circular":
			rec.Topology = Circular
		case low == "linear":
			rec.Topology = Linear
		case strings.Contains(f, "DNA") || strings.Contains(f, "RNA"):
			rec.Molecule = f
		case isDate(f):
			rec.Date = f
			if prev := fields[idx-1]; len(prev) == 3 && isUpper(prev) {
				rec.Division = prev
			}
		}
	}
	return nil
}

func isDate(s string) bool {
	return len(s) == 11 && s[2] == '-' && s[6] == '-'
}

func isUpper(s string) bool {
	for i := range len(s) {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// isKeyword reports if a line starts with a top level keyword.
func isKeyword(line, key string) bool {
	if !strings.HasPrefix(line, key) {
		return false
	}
	return len(line) == len(key) || line[len(key)] == ' ' || line[len(key)] == '\t'
}

// isHeaderEntry reports if a header line starts a new (sub)keyword,
// rather than continuing the previous value.
func isHeaderEntry(line string) bool {
	if len(line) == 0 {
		return false
	}
	end := min(len(line), headerIndent)
	return strings.TrimSpace(line[:end]) != ""
}

func splitHeader(line string) (string, string) {
	if len(line) <= headerIndent {
		return strings.TrimSpace(line), ""
	}
	return strings.TrimSpace(line[:headerIndent]),
		strings.TrimSpace(line[headerIndent:])
}

func (p *parser) header(rec *Record) {
	key, first := splitHeader(p.lines[p.i])
	p.i++
	var rest []string
	paragraphs := []string{first}
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		if strings.TrimSpace(line) == "" {
			// blank lines separate paragraphs of a value, for example
			// in COMMENT, if the value continues after them
			next := p.nextFilled()
			if next == len(p.lines) || isHeaderEntry(p.lines[next]) {
				break
			}
			paragraphs = append(paragraphs, "")
			p.i = next
			continue
		}
		if isHeaderEntry(line) {
			break
		}
		text := strings.TrimSpace(line)
		rest = append(rest, text)
		last := len(paragraphs) - 1
		paragraphs[last] = strings.TrimSpace(paragraphs[last] + " " + text)
		p.i++
	}
	val := strings.TrimSpace(strings.Join(paragraphs, "\n"))
	rec.Header = append(rec.Header, HeaderField{Key: key, Value: val})

	switch key {
	case "DEFINITION":
		rec.Definition = val
	case "ACCESSION":
		if f := strings.Fields(val); len(f) > 0 {
			rec.Accession = f[0]
		}
	case "VERSION":
		if f := strings.Fields(val); len(f) > 0 {
			rec.Version = f[0]
		}
	case "ORGANISM":
		rec.Organism = first
		rec.Lineage = strings.Join(rest, " ")
	}
}

// nextFilled returns the index of the first non-blank line at or after
// the current one.
func (p *parser) nextFilled() int {
	i := p.i
	for i < len(p.lines) && strings.TrimSpace(p.lines[i]) == "" {
		i++
	}
	return i
}

func indent(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

// inQualifierArea reports if a line belongs to the feature started
// above it.
func inQualifierArea(line string) bool {
	return strings.TrimSpace(line) != "" && indent(line) >= qualifierIndent
}

func (p *parser) features(rec *Record) error {
	p.i++
	for p.i < len(p.lines) {
		line := p.lines[p.i]
		switch {
		case strings.TrimSpace(line) == "":
			p.i++
		case line[0] != ' ':
			return nil
		case inQualifierArea(line):
			return p.formatError(rec, "feature table line without feature key")
		default:
			if err := p.feature(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *parser) feature(rec *Record) error {
	lineNo := p.i + 1
	fields := strings.Fields(p.lines[p.i])
	kind := fields[0]
	loc := strings.Join(fields[1:], "")
	p.i++

	for p.i < len(p.lines) && inQualifierArea(p.lines[p.i]) {
		s := strings.TrimSpace(p.lines[p.i])
		if strings.HasPrefix(s, "/") {
			break
		}
		loc += s
		p.i++
	}

	var qs Qualifiers
	for p.i < len(p.lines) && inQualifierArea(p.lines[p.i]) {
		s := strings.TrimSpace(p.lines[p.i])
		if !strings.HasPrefix(s, "/") {
			// unquoted value that wraps
			if len(qs) > 0 {
				qs[len(qs)-1].Value += " " + s
			}
			p.i++
			continue
		}
		key, val, err := p.qualifier(rec, s)
		if err != nil {
			return err
		}
		qs.Add(key, val)
	}

	l, err := location.Parse(loc)
	if err != nil {
		p.dropFeature(rec, kind, lineNo, loc, err)
		return nil
	}
	rec.Features = append(rec.Features, Feature{
		Kind:       kind,
		Location:   l,
		Qualifiers: qs,
		Line:       lineNo,
	})
	return nil
}

func (p *parser) dropFeature(rec *Record, kind string, line int, loc string, err error) {
	p.diags = append(p.diags, Diagnostic{
		Record: rec.Name,
		Line:   line,
		Err: &FeatureLocationError{
			Record:   rec.Name,
			Kind:     kind,
			Line:     line,
			Location: loc,
			Err:      err,
		},
	})
}

// qualifier parses a qualifier that starts at the current line. Quoted
// values may continue on the following lines.
func (p *parser) qualifier(rec *Record, s string) (string, string, error) {
	p.i++
	key, val, found := strings.Cut(s[1:], "=")
	if !found {
		return key, "", nil
	}
	if !strings.HasPrefix(val, `"`) {
		return key, val, nil
	}

	sep := " "
	if key == "translation" {
		sep = ""
	}

	val = val[1:]
	var parts []string
	for {
		if idx := closingQuote(val); idx >= 0 {
			parts = append(parts, val[:idx])
			break
		}
		parts = append(parts, val)
		if p.i >= len(p.lines) || !inQualifierArea(p.lines[p.i]) {
			return "", "", p.formatError(rec,
				"value of qualifier /%s is not terminated", key)
		}
		val = strings.TrimSpace(p.lines[p.i])
		p.i++
	}
	res := strings.Join(parts, sep)
	return key, strings.ReplaceAll(res, `""`, `"`), nil
}

// closingQuote finds a quote that is not escaped by doubling.
func closingQuote(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '"' {
			i++
			continue
		}
		return i
	}
	return -1
}

func (p *parser) origin(rec *Record) error {
	p.i++
	seq := make([]byte, 0, rec.Length)
	for ; p.i < len(p.lines); p.i++ {
		line := p.lines[p.i]
		if strings.HasPrefix(line, "//") {
			p.i++
			if len(seq) == 0 {
				return &FormatError{Record: rec.Name, Line: p.i,
					Msg: "sequence is empty"}
			}
			rec.Sequence = seq
			return nil
		}
		if isKeyword(line, "LOCUS") {
			return p.formatError(rec,
				"record is not terminated with '//' before next LOCUS")
		}
		for j := range len(line) {
			c := line[j]
			switch {
			case c == ' ' || c == '\t' || (c >= '0' && c <= '9'):
			case dna.IsNucleotide(c):
				if c >= 'a' {
					c -= 'a' - 'A'
				}
				seq = append(seq, c)
			default:
				return p.formatError(rec, "invalid sequence character %q", c)
			}
		}
	}
	return p.formatError(rec, "unexpected end of input, record is not terminated with '//'")
}

// checkRecord drops features that do not fit the sequence and reports a
// declared length that differs from the real one.
func (p *parser) checkRecord(rec *Record) {
	if rec.Length > 0 && rec.Length != len(rec.Sequence) {
		p.diags = append(p.diags, Diagnostic{
			Record: rec.Name,
			Err: fmt.Errorf(
				"record %s: LOCUS declares %d bp, sequence has %d",
				rec.Name, rec.Length, len(rec.Sequence),
			),
		})
	}

	features := rec.Features[:0]
	for _, f := range rec.Features {
		if err := f.Location.Validate(len(rec.Sequence)); err != nil {
			p.dropFeature(rec, f.Kind, f.Line, f.Location.String(), err)
			continue
		}
		features = append(features, f)
	}
	rec.Features = features
}
