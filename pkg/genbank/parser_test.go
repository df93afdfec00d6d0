package genbank_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gngb/pkg/genbank"
	"github.com/gnames/gngb/pkg/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seq1 = "ATGGCATAATCATTTCATATGCCCTTTTTTGGGTAGATGTGGTGTCACTAGGGCCCAAATTTGGG"

func parseSample(t *testing.T) ([]*genbank.Record, []genbank.Diagnostic) {
	f, err := os.Open(filepath.Join("..", "..", "testdata", "sample.gb"))
	require.NoError(t, err)
	defer f.Close()

	recs, diags, err := genbank.Parse(f)
	require.NoError(t, err)
	return recs, diags
}

func TestParseSampleHeader(t *testing.T) {
	recs, _ := parseSample(t)
	require.Len(t, recs, 2)

	r := recs[0]
	assert.Equal(t, "TEST0001", r.Name)
	assert.Equal(t, 65, r.Length)
	assert.Equal(t, "DNA", r.Molecule)
	assert.Equal(t, genbank.Circular, r.Topology)
	assert.Equal(t, "BCT", r.Division)
	assert.Equal(t, "10-JUN-2013", r.Date)
	assert.Equal(t,
		"Synthetic test plasmid pTEST1, complete sequence, with a "+
			"definition that continues on a second line.",
		r.Definition)
	assert.Equal(t, "TEST0001", r.Accession)
	assert.Equal(t, "TEST0001.1", r.Version)
	assert.Equal(t, "TEST0001.1", r.ID())
	assert.Equal(t, "Yersinia pestis biovar Microtus str. 91001", r.Organism)
	assert.True(t, strings.HasPrefix(r.Lineage, "Bacteria; Proteobacteria;"))
	assert.True(t, strings.HasSuffix(r.Lineage, "Yersinia."))
	assert.Equal(t, []string{"Doe,J. and Roe,R."}, r.HeaderValues("AUTHORS"))
	assert.Equal(t, []string{"."}, r.HeaderValues("KEYWORDS"))

	r = recs[1]
	assert.Equal(t, "TEST0002", r.Name)
	assert.Equal(t, genbank.Linear, r.Topology)
	assert.Equal(t, "linear", r.Topology.String())
	assert.Equal(t, "Escherichia coli", r.Organism)
}

func TestParseSampleSequence(t *testing.T) {
	recs, _ := parseSample(t)
	assert.Equal(t, seq1, string(recs[0].Sequence))
	assert.Equal(t, 65, recs[0].Len())
	assert.Equal(t, "ATGGGNAAACCCTGGTGGAATATGTAAGGG", string(recs[1].Sequence))
}

func TestParseSampleFeatures(t *testing.T) {
	recs, diags := parseSample(t)
	r := recs[0]

	kinds := make([]string, len(r.Features))
	for i, f := range r.Features {
		kinds[i] = f.Kind
	}
	assert.Equal(t, []string{"source", "gene", "CDS", "CDS", "CDS", "CDS"}, kinds)
	assert.Len(t, r.FeaturesOfKind("CDS"), 4)
	assert.Len(t, r.FeaturesOfKind("CDS", "gene"), 5)

	cds := r.FeaturesOfKind("CDS")
	assert.Equal(t, "abcA", cds[0].Qualifier("gene"))
	assert.Equal(t, []string{"first note", "second note"},
		cds[0].Qualifiers.Values("note"))
	assert.Equal(t, "1", cds[0].Qualifier("codon_start"))

	assert.Equal(t, location.Reverse, cds[1].Location.Strand())
	assert.Equal(t, "complement(10..18)", cds[1].Location.String())

	assert.Equal(t, location.Join, cds[2].Location.Kind)
	assert.Equal(t, "join(19..24,31..36)", cds[2].Location.String())
	assert.Equal(t,
		"gamma protein with a rather long name that wraps onto a second line",
		cds[2].Qualifier("product"))

	assert.Equal(t, `epsilon "quoted" protein`, cds[3].Qualifier("product"))
	assert.Equal(t, "MWCH", cds[3].Qualifier("translation"))
	assert.True(t, cds[3].Qualifiers.Has("pseudo"))
	assert.Equal(t, "", cds[3].Qualifier("pseudo"))

	require.Len(t, diags, 2)
	assert.Equal(t, "TEST0001", diags[0].Record)
	assert.ErrorIs(t, diags[0].Err, genbank.ErrFeatureLocation)
	assert.ErrorIs(t, diags[0].Err, location.ErrSyntax)

	var flErr *genbank.FeatureLocationError
	require.ErrorAs(t, diags[0].Err, &flErr)
	assert.Equal(t, "CDS", flErr.Kind)
	assert.Equal(t, "join(40..45,,50..55)", flErr.Location)

	assert.Equal(t, "TEST0002", diags[1].Record)
	assert.ErrorIs(t, diags[1].Err, genbank.ErrFeatureLocation)
	assert.ErrorIs(t, diags[1].Err, location.ErrRange)
	assert.Len(t, recs[1].Features, 5)
}

func TestPartialLocation(t *testing.T) {
	recs, _ := parseSample(t)
	cds := recs[1].FeaturesOfKind("CDS")
	require.NotEmpty(t, cds)
	loc := cds[0].Location
	assert.True(t, loc.IsPartial())
	assert.Equal(t, 0, loc.Spans[0].Start)
	assert.Equal(t, 12, loc.Spans[0].End)
}

const minimal = `LOCUS       MIN1                       9 bp    DNA     linear   UNK 01-JAN-2000
FEATURES             Location/Qualifiers
     CDS             1..9
                     /gene="a"
ORIGIN
        1 atggcataa
//
`

func TestParseMinimal(t *testing.T) {
	recs, diags, err := genbank.ParseString(minimal)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, recs, 1)
	assert.Equal(t, "MIN1", recs[0].ID())
	assert.Equal(t, "ATGGCATAA", string(recs[0].Sequence))
	require.Len(t, recs[0].Features, 1)
	assert.Equal(t, "a", recs[0].Features[0].Qualifier("gene"))
	assert.Equal(t, 3, recs[0].Features[0].Line)
}

func TestParseNoTopology(t *testing.T) {
	data := "LOCUS       OLD1\nORIGIN\n        1 acgt\n//\n"
	recs, _, err := genbank.ParseString(data)
	require.NoError(t, err)
	assert.Equal(t, genbank.Linear, recs[0].Topology)
	assert.Equal(t, 0, recs[0].Length)
}

func TestParseCRLF(t *testing.T) {
	data := strings.ReplaceAll(minimal, "\n", "\r\n")
	recs, _, err := genbank.ParseString(data)
	require.NoError(t, err)
	assert.Equal(t, "ATGGCATAA", string(recs[0].Sequence))
}

func TestOneBadLocationAmongThree(t *testing.T) {
	data := `LOCUS       THREE1                    18 bp    DNA     linear   UNK 01-JAN-2000
FEATURES             Location/Qualifiers
     CDS             1..9
                     /gene="a"
     CDS             join(1..3,,4..9)
                     /gene="b"
     CDS             complement(10..18)
                     /gene="c"
ORIGIN
        1 atggcataat tattgcat
//
`
	recs, diags, err := genbank.ParseString(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Len(t, recs[0].Features, 2)
	assert.Equal(t, "a", recs[0].Features[0].Qualifier("gene"))
	assert.Equal(t, "c", recs[0].Features[1].Qualifier("gene"))
	require.Len(t, diags, 1)
	assert.Equal(t, 5, diags[0].Line)
	assert.Contains(t, diags[0].String(), "CDS feature dropped")
}

func TestParseCommentParagraphs(t *testing.T) {
	tests := []struct {
		msg     string
		comment string
		want    string
	}{
		{
			"one paragraph",
			"COMMENT     REVIEWED REFSEQ: This record has been curated\n" +
				"            by NCBI staff.\n",
			"REVIEWED REFSEQ: This record has been curated by NCBI staff.",
		},
		{
			"blank line with spaces",
			"COMMENT     REVIEWED REFSEQ: curated.\n" +
				"            \n" +
				"            Summary: a gene.\n",
			"REVIEWED REFSEQ: curated.\nSummary: a gene.",
		},
		{
			"empty lines",
			"COMMENT     REVIEWED REFSEQ: curated.\n" +
				"\n" +
				"\n" +
				"            Summary: a gene\n" +
				"            with two lines.\n",
			"REVIEWED REFSEQ: curated.\nSummary: a gene with two lines.",
		},
		{
			"blank line before next keyword",
			"COMMENT     REVIEWED REFSEQ: curated.\n" +
				"\n",
			"REVIEWED REFSEQ: curated.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			data := "LOCUS       NM_0001                    9 bp    mRNA    linear   PRI 01-JAN-2000\n" +
				tt.comment +
				"ACCESSION   NM_0001\n" +
				"ORIGIN\n        1 atggcataa\n//\n"
			recs, _, err := genbank.ParseString(data)
			require.NoError(t, err)
			require.Len(t, recs, 1)
			assert.Equal(t, []string{tt.want}, recs[0].HeaderValues("COMMENT"))
			assert.Equal(t, "NM_0001", recs[0].Accession)
		})
	}
}

func TestLengthMismatch(t *testing.T) {
	data := strings.Replace(minimal, "9 bp", "12 bp", 1)
	recs, diags, err := genbank.ParseString(data)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].String(), "LOCUS declares 12 bp")
	assert.False(t, errors.Is(diags[0].Err, genbank.ErrFeatureLocation))
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		msg  string
		data string
		err  string
	}{
		{
			msg:  "empty input",
			data: "",
			err:  "no LOCUS line",
		},
		{
			msg:  "no locus",
			data: "DEFINITION  nothing here\n",
			err:  "no LOCUS line",
		},
		{
			msg:  "locus without name",
			data: "LOCUS\nORIGIN\n        1 acgt\n//\n",
			err:  "no identifier",
		},
		{
			msg:  "missing origin",
			data: strings.Replace(minimal, "ORIGIN\n        1 atggcataa\n", "", 1),
			err:  "ORIGIN section is missing",
		},
		{
			msg:  "missing origin at end of input",
			data: "LOCUS       X1  4 bp DNA linear\nDEFINITION  x.\n",
			err:  "ORIGIN section is missing",
		},
		{
			msg:  "invalid sequence character",
			data: strings.Replace(minimal, "atggcataa", "atggc-taa", 1),
			err:  "invalid sequence character",
		},
		{
			msg:  "empty sequence",
			data: "LOCUS       E1  0 bp DNA linear\nORIGIN\n//\n",
			err:  "sequence is empty",
		},
		{
			msg:  "record not terminated",
			data: strings.TrimSuffix(minimal, "//\n"),
			err:  "not terminated",
		},
		{
			msg:  "record runs into next locus",
			data: strings.Replace(minimal, "//\n", "", 1) + minimal,
			err:  "not terminated",
		},
		{
			msg:  "unterminated qualifier",
			data: strings.Replace(minimal, `/gene="a"`, `/gene="a`, 1),
			err:  "not terminated",
		},
		{
			msg: "qualifier without feature",
			data: strings.Replace(minimal, "     CDS             1..9\n",
				"", 1),
			err: "without feature key",
		},
	}

	for _, v := range tests {
		recs, diags, err := genbank.ParseString(v.data)
		require.Error(t, err, v.msg)
		assert.Nil(t, recs, v.msg)
		assert.Nil(t, diags, v.msg)
		assert.ErrorIs(t, err, genbank.ErrFormat, v.msg)
		assert.Contains(t, err.Error(), v.err, v.msg)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	err := &genbank.FormatError{Line: 3, Record: "R1", Msg: "boom"}
	assert.Equal(t, "record R1, line 3: boom", err.Error())
	err = &genbank.FormatError{Line: 3, Msg: "boom"}
	assert.Equal(t, "line 3: boom", err.Error())
	err = &genbank.FormatError{Msg: "boom"}
	assert.Equal(t, "boom", err.Error())
}
