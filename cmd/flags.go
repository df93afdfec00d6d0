package cmd

import (
	"github.com/gnames/gngb/pkg/config"
	"github.com/spf13/cobra"
)

// translateFlags keep values of command line flags that change
// translation settings.
type translateFlags struct {
	oneLetter       bool
	kinds           []string
	sel             []string
	format          string
	nomCode         string
	withNucleotides bool
	jobs            int
	progress        bool
	withCache       bool
	cleanCache      bool
}

func (f *translateFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.BoolVarP(&f.oneLetter, "one-letter", "1", false,
		"use one letter amino acid codes")
	fs.StringSliceVarP(&f.kinds, "kinds", "k", nil,
		"feature kinds to translate (default CDS)")
	fs.StringSliceVarP(&f.sel, "select", "s", nil,
		"keep only features with these protein_id, gene or locus_tag values")
	fs.StringVarP(&f.format, "format", "f", "",
		"output format: text, json, pretty, csv, tsv, yaml")
	fs.StringVar(&f.nomCode, "code", "",
		"nomenclatural code of organism names")
	fs.BoolVarP(&f.withNucleotides, "with-nucleotides", "n", false,
		"include nucleotide sequences of features")
	fs.IntVarP(&f.jobs, "jobs", "j", 0,
		"number of concurrent workers")
	fs.BoolVarP(&f.progress, "progress", "p", false,
		"show progress bar")
	fs.BoolVarP(&f.withCache, "with-cache", "c", false,
		"keep translations in a persistent cache")
	fs.BoolVar(&f.cleanCache, "clean-cache", false,
		"remove all cached translations")
}

// options converts explicitly set flags to config options.
func (f *translateFlags) options(cmd *cobra.Command) []config.Option {
	var res []config.Option
	fs := cmd.Flags()

	if fs.Changed("one-letter") {
		res = append(res, config.OptOneLetter(f.oneLetter))
	}
	if fs.Changed("kinds") {
		res = append(res, config.OptFeatureKinds(f.kinds))
	}
	if fs.Changed("select") {
		res = append(res, config.OptSelect(f.sel))
	}
	if fs.Changed("format") {
		res = append(res, config.OptFormat(f.format))
	}
	if fs.Changed("code") {
		res = append(res, config.OptNomCode(f.nomCode))
	}
	if fs.Changed("with-nucleotides") {
		res = append(res, config.OptWithNucleotides(f.withNucleotides))
	}
	if fs.Changed("jobs") {
		res = append(res, config.OptJobsNumber(f.jobs))
	}
	if fs.Changed("progress") {
		res = append(res, config.OptWithProgress(f.progress))
	}
	if fs.Changed("with-cache") {
		res = append(res, config.OptWithCache(f.withCache))
	}
	return res
}
