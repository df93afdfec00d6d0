package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"gopkg.in/yaml.v3"
)

const (
	// LineWidth is the width of wrapped sequences in the text output.
	LineWidth = 72
	// delimiter separates three letter residues.
	delimiter = "-"
)

func (r *Report) writeJSON(w io.Writer, pretty bool) error {
	enc := gnfmt.GNjson{Pretty: pretty}
	res, err := enc.Encode(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(res))
	return err
}

func (r *Report) writeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

// CSVHeader is the first line of CSV and TSV output.
var CSVHeader = []string{
	"RecordID", "Organism", "Index", "Kind", "Location", "Strand", "Gene",
	"LocusTag", "ProteinID", "Product", "NucleotidesLen", "ProteinLen",
	"Stopped", "TranslationID", "Translation", "Error",
}

func (r *Report) writeCSV(w io.Writer, sep rune) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(csvLine(CSVHeader, sep))
	for _, rec := range r.Records {
		for _, f := range rec.Features {
			row := []string{
				rec.ID,
				rec.Organism,
				strconv.Itoa(f.Index),
				f.Kind,
				f.Location,
				f.Strand,
				f.Gene,
				f.LocusTag,
				f.ProteinID,
				f.Product,
				strconv.Itoa(f.NucleotidesLen),
				strconv.Itoa(f.ProteinLen),
				strconv.FormatBool(f.Stopped),
				f.TranslationID,
				f.Translation,
				f.Error,
			}
			bw.WriteString(csvLine(row, sep))
		}
	}
	return bw.Flush()
}

func csvLine(row []string, sep rune) string {
	return strings.TrimRight(gnfmt.ToCSV(row, sep), "\r\n") + "\n"
}

func (r *Report) writeText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	threeLetter := r.Style != "one-letter"

	for i, rec := range r.Records {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "Record name: %s\n", rec.ID)
		fmt.Fprintf(bw, "Sequence length: %s bp, %s\n",
			humanize.Comma(int64(rec.Length)), rec.Topology)
		if rec.Definition != "" {
			fmt.Fprintf(bw, "Definition: %s\n", rec.Definition)
		}
		if rec.Organism != "" {
			org := rec.Organism
			if rec.OrganismCanonical != "" && rec.OrganismCanonical != org {
				org += " (" + rec.OrganismCanonical + ")"
			}
			fmt.Fprintf(bw, "Organism: %s\n", org)
		}
		fmt.Fprintf(bw, "\nFound %s features, including %s coding.\n",
			humanize.Comma(int64(rec.FeaturesNum)),
			humanize.Comma(int64(rec.CodingNum)))

		for _, f := range rec.Features {
			if r.ListOnly {
				writeListed(bw, f)
				continue
			}
			writeFeature(bw, f, threeLetter)
		}
	}

	if len(r.Diagnostics) > 0 {
		fmt.Fprintf(bw, "\nWarnings (%d):\n", len(r.Diagnostics))
		for _, d := range r.Diagnostics {
			fmt.Fprintf(bw, "  %s\n", d.Message)
		}
	}
	return bw.Flush()
}

func writeFeature(w io.Writer, f Feature, threeLetter bool) {
	fmt.Fprintf(w, "\n%d) %s %s\n", f.Index, f.Kind, featureTitle(f))
	fmt.Fprintf(w, "Location: %s\n", f.Location)

	if f.Nucleotides != "" {
		fmt.Fprintln(w, "\nDNA sequence:")
		fmt.Fprintf(w, "Length: %s\n\n", humanize.Comma(int64(f.NucleotidesLen)))
		for _, l := range WrapResidues(strings.Split(f.Nucleotides, ""), "") {
			fmt.Fprintln(w, l)
		}
	}

	if f.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", f.Error)
		return
	}

	if threeLetter {
		fmt.Fprintln(w, "\nThree-letter code:")
		for _, l := range WrapResidues(splitResidues(f.Translation), delimiter) {
			fmt.Fprintln(w, l)
		}
	} else {
		fmt.Fprintln(w, "\nOne-letter code:")
		for _, l := range WrapResidues(strings.Split(f.Translation, ""), "") {
			fmt.Fprintln(w, l)
		}
	}
	stop := "no stop codon"
	if f.Stopped {
		stop = "stop codon reached"
	}
	fmt.Fprintf(w, "Length: %s (%s)\n",
		humanize.Comma(int64(f.ProteinLen)), stop)
}

func writeListed(w io.Writer, f Feature) {
	partial := ""
	if f.Partial {
		partial = ", partial"
	}
	fmt.Fprintf(w, "%d) %s %s\n", f.Index, f.Kind, featureTitle(f))
	fmt.Fprintf(w, "   %s (%s, %s bp%s)\n", f.Location, f.Strand,
		humanize.Comma(int64(f.NucleotidesLen)), partial)
	if len(f.Qualifiers) > 0 {
		fmt.Fprintf(w, "   /%s\n", strings.Join(f.Qualifiers, " /"))
	}
}

func featureTitle(f Feature) string {
	var parts []string
	for _, v := range []string{f.Gene, f.LocusTag, f.ProteinID} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	res := strings.Join(parts, " ")
	if f.Product != "" {
		res += ": " + f.Product
	}
	return res
}

func splitResidues(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, delimiter)
}

// WrapResidues arranges residues into lines no wider than LineWidth
// plus a number column. Every line starts with the 1-based zero-padded
// number of its first residue. Residues are joined with sep.
func WrapResidues(residues []string, sep string) []string {
	if len(residues) == 0 {
		return nil
	}
	size := len(residues[0]) + len(sep)
	perLine := max(1, (LineWidth+len(sep))/size)
	width := len(strconv.Itoa(len(residues)))

	var res []string
	for start := 0; start < len(residues); start += perLine {
		end := min(start+perLine, len(residues))
		line := fmt.Sprintf("%0*d %s", width, start+1,
			strings.Join(residues[start:end], sep))
		res = append(res, line)
	}
	return res
}
