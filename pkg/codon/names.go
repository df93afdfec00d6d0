package codon

var threeLetter = map[byte]string{
	'A': "Ala",
	'B': "Asx",
	'C': "Cys",
	'D': "Asp",
	'E': "Glu",
	'F': "Phe",
	'G': "Gly",
	'H': "His",
	'I': "Ile",
	'J': "Xle",
	'K': "Lys",
	'L': "Leu",
	'M': "Met",
	'N': "Asn",
	'O': "Pyl",
	'P': "Pro",
	'Q': "Gln",
	'R': "Arg",
	'S': "Ser",
	'T': "Thr",
	'U': "Sec",
	'V': "Val",
	'W': "Trp",
	'X': "Xaa",
	'Y': "Tyr",
	'Z': "Glx",
	'*': "Ter",
}

// ThreeLetter returns the three letter abbreviation of a one letter
// residue code. Unknown codes give "Xaa".
func ThreeLetter(aa byte) string {
	if res, ok := threeLetter[aa]; ok {
		return res
	}
	return threeLetter[Unknown]
}
