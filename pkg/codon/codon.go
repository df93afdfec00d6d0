// Package codon provides the standard genetic code and amino acid
// names. The table is built once during package initialization and is
// never modified, so it is safe for concurrent use.
package codon

import (
	"errors"
	"fmt"
)

// Stop is the residue symbol of a stop codon.
const Stop byte = '*'

// Unknown is the residue symbol for a codon that can be read, but whose
// ambiguity codes point to more than one residue.
const Unknown byte = 'X'

// ErrSymbol is returned when a codon contains a symbol outside of the
// IUPAC nucleotide alphabet.
var ErrSymbol = errors.New("not a nucleotide symbol")

// StandardCode is NCBI translation table 1. Codons are ordered by
// bases T, C, A, G: index = 16*first + 4*second + third, so TTT is 0 and
// GGG is 63.
const StandardCode = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"

// Standard is the standard genetic code.
var Standard = New(1, "Standard", StandardCode)

// base bit masks, TCAG order matches the table layout.
const (
	mT = 1 << iota
	mC
	mA
	mG
)

var masks = func() [256]uint8 {
	var res [256]uint8
	m := map[byte]uint8{
		'T': mT, 'U': mT, 'C': mC, 'A': mA, 'G': mG,
		'R': mA | mG, 'Y': mC | mT, 'S': mG | mC, 'W': mA | mT,
		'K': mG | mT, 'M': mA | mC,
		'B': mC | mG | mT, 'D': mA | mG | mT, 'H': mA | mC | mT,
		'V': mA | mC | mG, 'N': mA | mC | mG | mT,
	}
	for k, v := range m {
		res[k] = v
		res[k+'a'-'A'] = v
	}
	return res
}()

// Table maps codons to residues. Codons may contain IUPAC ambiguity
// codes; such codon gets a residue when all its expansions agree.
type Table struct {
	ID   int
	Name string
	// lookup is indexed by three 4-bit base masks.
	lookup [1 << 12]byte
}

// New builds a table from a 64 letter code in TCAG order.
// It panics if the code does not have 64 letters.
func New(id int, name, code string) *Table {
	if len(code) != 64 {
		panic(fmt.Sprintf("genetic code %d must have 64 residues, got %d",
			id, len(code)))
	}
	res := &Table{ID: id, Name: name}
	for m1 := 1; m1 < 16; m1++ {
		for m2 := 1; m2 < 16; m2++ {
			for m3 := 1; m3 < 16; m3++ {
				res.lookup[m1<<8|m2<<4|m3] = resolve(code, m1, m2, m3)
			}
		}
	}
	return res
}

func resolve(code string, m1, m2, m3 int) byte {
	var res byte
	for i := range 4 {
		if m1&(1<<i) == 0 {
			continue
		}
		for j := range 4 {
			if m2&(1<<j) == 0 {
				continue
			}
			for k := range 4 {
				if m3&(1<<k) == 0 {
					continue
				}
				aa := code[16*i+4*j+k]
				if res == 0 {
					res = aa
				} else if res != aa {
					return Unknown
				}
			}
		}
	}
	return res
}

// Translate returns the residue of a codon of three nucleotide symbols
// in any case. Stop codons return Stop. Ambiguous codons that do not
// resolve to a single residue return Unknown.
func (t *Table) Translate(b1, b2, b3 byte) (byte, error) {
	m1, m2, m3 := masks[b1], masks[b2], masks[b3]
	if m1 == 0 || m2 == 0 || m3 == 0 {
		return 0, ErrSymbol
	}
	return t.lookup[int(m1)<<8|int(m2)<<4|int(m3)], nil
}
