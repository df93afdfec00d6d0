// Package dna provides complement and reverse complement of nucleotide
// sequences. It knows the IUPAC nucleotide alphabet, including ambiguity
// codes, and keeps the case of every symbol.
package dna

// Alphabet lists upper case IUPAC nucleotide symbols accepted in
// sequences.
const Alphabet = "ACGTURYSWKMBDHVN"

var complement [256]byte

func init() {
	pairs := []struct{ a, b byte }{
		{'A', 'T'}, {'C', 'G'}, {'U', 'A'},
		{'R', 'Y'}, {'S', 'S'}, {'W', 'W'},
		{'K', 'M'}, {'B', 'V'}, {'D', 'H'},
		{'N', 'N'},
	}
	for _, p := range pairs {
		set(p.a, p.b)
		if p.a != 'U' {
			set(p.b, p.a)
		}
	}
}

func set(a, b byte) {
	complement[a] = b
	complement[a+'a'-'A'] = b + 'a' - 'A'
}

// IsNucleotide reports if b belongs to the IUPAC nucleotide alphabet in
// any case.
func IsNucleotide(b byte) bool {
	return complement[b] != 0
}

// Complement returns the complementary symbol of b. Unknown symbols
// are returned unchanged.
func Complement(b byte) byte {
	if c := complement[b]; c != 0 {
		return c
	}
	return b
}

// ReverseComplement returns a new slice that holds the reverse
// complement of seq.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	res := make([]byte, n)
	for i, b := range seq {
		res[n-1-i] = Complement(b)
	}
	return res
}
