// Package report keeps results of a translation run and renders them in
// several output formats.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gngb/pkg/errcode"
)

// Format of the report output.
type Format int

const (
	// Text is a human readable layout with sequences wrapped at 72
	// columns.
	Text Format = iota
	// CompactJSON is one JSON document on one line.
	CompactJSON
	// PrettyJSON is an indented JSON document.
	PrettyJSON
	// CSV has one line per coding feature.
	CSV
	// TSV is like CSV with tab separators.
	TSV
	// YAML is a YAML document.
	YAML
)

var formats = map[string]Format{
	"text":   Text,
	"json":   CompactJSON,
	"pretty": PrettyJSON,
	"csv":    CSV,
	"tsv":    TSV,
	"yaml":   YAML,
}

// NewFormat converts a format name to Format.
func NewFormat(s string) (Format, error) {
	res, ok := formats[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Text, &gn.Error{
			Code: errcode.ReportFormatError,
			Msg:  "Unknown report format <em>%s</em>",
			Vars: []any{s},
			Err:  fmt.Errorf("unknown report format %q", s),
		}
	}
	return res, nil
}

func (f Format) String() string {
	for k, v := range formats {
		if v == f {
			return k
		}
	}
	return "text"
}

// Report is the outcome of processing one GenBank file.
type Report struct {
	// Input is the path of the GenBank file.
	Input string `json:"input" yaml:"input"`
	// Style is "one-letter" or "three-letter".
	Style string `json:"style" yaml:"style"`
	// ListOnly is true when features are listed without translation.
	ListOnly bool `json:"listOnly,omitempty" yaml:"list_only,omitempty"`
	// Records are in file order.
	Records []Record `json:"records" yaml:"records"`
	// Diagnostics are recoverable problems: dropped features and
	// untranslatable regions.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Stats       Stats        `json:"stats" yaml:"stats"`
}

// Record summarises one GenBank record.
type Record struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
	Organism   string `json:"organism,omitempty" yaml:"organism,omitempty"`
	// OrganismCanonical is the organism name without authors and ranks
	// below species qualifiers.
	OrganismCanonical string `json:"organismCanonical,omitempty" yaml:"organism_canonical,omitempty"`
	Topology          string `json:"topology" yaml:"topology"`
	Length            int    `json:"length" yaml:"length"`
	// FeaturesNum counts features that survived parsing.
	FeaturesNum int `json:"featuresNum" yaml:"features_num"`
	// CodingNum counts features of coding kinds, before selection.
	CodingNum int       `json:"codingNum" yaml:"coding_num"`
	Features  []Feature `json:"features" yaml:"features"`
}

// Feature is a translated coding feature.
type Feature struct {
	// Index is the 0-based position of the feature among all features
	// of the record.
	Index     int    `json:"index" yaml:"index"`
	Kind      string `json:"kind" yaml:"kind"`
	Location  string `json:"location" yaml:"location"`
	Strand    string `json:"strand" yaml:"strand"`
	Partial   bool   `json:"partial,omitempty" yaml:"partial,omitempty"`
	Gene      string `json:"gene,omitempty" yaml:"gene,omitempty"`
	LocusTag  string `json:"locusTag,omitempty" yaml:"locus_tag,omitempty"`
	ProteinID string `json:"proteinId,omitempty" yaml:"protein_id,omitempty"`
	Product   string `json:"product,omitempty" yaml:"product,omitempty"`
	// Qualifiers are distinct qualifier keys of the feature, filled
	// when features are listed.
	Qualifiers []string `json:"qualifiers,omitempty" yaml:"qualifiers,omitempty"`

	NucleotidesLen int    `json:"nucleotidesLen" yaml:"nucleotides_len"`
	Nucleotides    string `json:"nucleotides,omitempty" yaml:"nucleotides,omitempty"`

	Translation string `json:"translation" yaml:"translation"`
	ProteinLen  int    `json:"proteinLen" yaml:"protein_len"`
	// Stopped is true if translation ended at a stop codon.
	Stopped bool `json:"stopped" yaml:"stopped"`
	// TranslationID is UUIDv5 of the one letter translation.
	TranslationID string `json:"translationId,omitempty" yaml:"translation_id,omitempty"`
	// Cached is true if the translation came from the cache.
	Cached bool `json:"cached,omitempty" yaml:"cached,omitempty"`
	// Error is set for features that could not be translated.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Diagnostic kinds.
const (
	KindLocation    = "location"
	KindTranslation = "translation"
	KindRecord      = "record"
)

// Diagnostic is a recoverable problem.
type Diagnostic struct {
	Record string `json:"record" yaml:"record"`
	// Line is 1-based, 0 if unknown.
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) String() string {
	return d.Message
}

// Stats counts results of a run.
type Stats struct {
	RecordsNum      int `json:"recordsNum" yaml:"records_num"`
	FeaturesNum     int `json:"featuresNum" yaml:"features_num"`
	TranslatedNum   int `json:"translatedNum" yaml:"translated_num"`
	UntranslatedNum int `json:"untranslatedNum" yaml:"untranslated_num"`
	CachedNum       int `json:"cachedNum" yaml:"cached_num"`
	DroppedNum      int `json:"droppedNum" yaml:"dropped_num"`
}

// Write renders the report in the given format.
func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case CompactJSON, PrettyJSON:
		return r.writeJSON(w, f == PrettyJSON)
	case CSV:
		return r.writeCSV(w, ',')
	case TSV:
		return r.writeCSV(w, '\t')
	case YAML:
		return r.writeYAML(w)
	default:
		return r.writeText(w)
	}
}
