// Package genbank parses GenBank flat files into records with features
// and sequences.
//
// This is a pure package: it reads from an io.Reader and has no other
// I/O. Problems that make a whole file unreliable are returned as
// *FormatError. A malformed feature location only drops that feature and
// is reported as a Diagnostic.
package genbank

import (
	"slices"

	"github.com/gnames/gngb/pkg/location"
)

// Topology of a molecule.
type Topology int

const (
	// Linear molecule. It is assumed when LOCUS does not say otherwise.
	Linear Topology = iota
	// Circular molecule, for example a plasmid.
	Circular
)

func (t Topology) String() string {
	if t == Circular {
		return "circular"
	}
	return "linear"
}

// HeaderField is one header entry. Continuation lines are joined with
// single spaces.
type HeaderField struct {
	Key   string
	Value string
}

// Record is one entry of a GenBank file, from LOCUS to '//'.
type Record struct {
	// Name is the LOCUS identifier.
	Name string
	// Length is the length declared in LOCUS, 0 if absent.
	Length   int
	Molecule string
	Topology Topology
	Division string
	Date     string

	Definition string
	Accession  string
	Version    string
	// Organism is the first line of SOURCE/ORGANISM.
	Organism string
	// Lineage is the taxonomic lineage following the organism name.
	Lineage string

	// Header keeps all header fields in file order.
	Header []HeaderField

	// Features with valid locations, in file order.
	Features []Feature

	// Sequence in upper case.
	Sequence []byte
}

// Len returns the number of bases in the sequence.
func (r *Record) Len() int {
	return len(r.Sequence)
}

// ID returns the versioned accession if known, the LOCUS name
// otherwise.
func (r *Record) ID() string {
	if r.Version != "" {
		return r.Version
	}
	if r.Accession != "" {
		return r.Accession
	}
	return r.Name
}

// HeaderValues returns values of all header fields with the given key.
func (r *Record) HeaderValues(key string) []string {
	var res []string
	for _, v := range r.Header {
		if v.Key == key {
			res = append(res, v.Value)
		}
	}
	return res
}

// FeaturesOfKind returns features that have one of the given kinds.
func (r *Record) FeaturesOfKind(kinds ...string) []Feature {
	var res []Feature
	for _, f := range r.Features {
		if slices.Contains(kinds, f.Kind) {
			res = append(res, f)
		}
	}
	return res
}

// Feature is an annotated region of a record.
type Feature struct {
	// Kind is the feature key, for example "gene" or "CDS".
	Kind       string
	Location   location.Location
	Qualifiers Qualifiers
	// Line is the 1-based line of the feature in the input.
	Line int
}

// Qualifier returns the first value of a qualifier or an empty string.
func (f Feature) Qualifier(key string) string {
	res, _ := f.Qualifiers.First(key)
	return res
}
