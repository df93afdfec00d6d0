// Package translate converts nucleotide regions of features into amino
// acid sequences with the standard genetic code.
//
// The reading frame always starts at the first base of the resolved
// region. Trailing one or two bases are dropped. Translation stops at the
// first stop codon, which is not included into the result.
package translate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gngb/pkg/codon"
	"github.com/gnames/gngb/pkg/location"
)

// ErrTranslation marks regions that cannot be translated.
var ErrTranslation = errors.New("cannot translate")

// Delimiter separates residues in three letter output.
const Delimiter = "-"

// Style of amino acid codes in the output.
type Style int

const (
	// ThreeLetter renders residues as "Met-Ala".
	ThreeLetter Style = iota
	// OneLetter renders residues as "MA".
	OneLetter
)

func (s Style) String() string {
	if s == OneLetter {
		return "one-letter"
	}
	return "three-letter"
}

// TranslationError describes a region that cannot be translated.
type TranslationError struct {
	// Pos is the 0-based offset in the resolved region, -1 if the
	// whole region is at fault.
	Pos int
	// Codon is the offending codon, if any.
	Codon string
	Msg   string
}

func (e *TranslationError) Error() string {
	if e.Codon != "" {
		return fmt.Sprintf("%s: codon %q at %d: %s",
			ErrTranslation, e.Codon, e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: %s", ErrTranslation, e.Msg)
}

func (e *TranslationError) Unwrap() error {
	return ErrTranslation
}

// Peptide is the result of translating a nucleotide region.
type Peptide struct {
	// Residues are one letter codes, the stop codon is not included.
	Residues []byte
	// Stopped is true if translation ended at a stop codon.
	Stopped bool
	// Codons is the number of codons read, the stop codon included.
	Codons int
	// Dropped is the number of trailing bases that did not form a codon.
	Dropped int
}

// Len returns the number of residues.
func (p Peptide) Len() int {
	return len(p.Residues)
}

// Render returns residues in the given style.
func (p Peptide) Render(style Style) string {
	return Render(p.Residues, style)
}

// Render converts one letter residues to a string in the given style.
func Render(residues []byte, style Style) string {
	if style == OneLetter {
		return string(residues)
	}
	names := make([]string, len(residues))
	for i, aa := range residues {
		names[i] = codon.ThreeLetter(aa)
	}
	return strings.Join(names, Delimiter)
}

// Resolve returns the nucleotides of a location in seq.
func Resolve(seq []byte, loc location.Location) ([]byte, error) {
	return loc.Resolve(seq)
}

// Region translates a resolved nucleotide region.
func Region(region []byte) (Peptide, error) {
	var res Peptide
	if len(region) < 3 {
		return res, &TranslationError{
			Pos: -1,
			Msg: fmt.Sprintf("region has %d bases, a codon needs 3", len(region)),
		}
	}

	full := len(region) - len(region)%3
	res.Residues = make([]byte, 0, full/3)
	res.Dropped = len(region) - full
	for i := 0; i < full; i += 3 {
		aa, err := codon.Standard.Translate(region[i], region[i+1], region[i+2])
		if err != nil {
			return Peptide{}, &TranslationError{
				Pos:   i,
				Codon: string(region[i : i+3]),
				Msg:   err.Error(),
			}
		}
		res.Codons++
		if aa == codon.Stop {
			res.Stopped = true
			res.Dropped = len(region) - i - 3
			break
		}
		res.Residues = append(res.Residues, aa)
	}
	return res, nil
}

// Translate resolves loc against seq and translates the result.
func Translate(seq []byte, loc location.Location, style Style) (string, error) {
	region, err := Resolve(seq, loc)
	if err != nil {
		return "", err
	}
	p, err := Region(region)
	if err != nil {
		return "", err
	}
	return p.Render(style), nil
}
