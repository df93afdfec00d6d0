/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/gnames/gn"
	"github.com/gnames/gngb/internal/ioprocess"
	"github.com/gnames/gngb/pkg/config"
	"github.com/gnames/gngb/pkg/report"
	"github.com/spf13/cobra"
)

// getListCmd returns the list command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getListCmd() *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List features of a GenBank file",
		Long: `List all features of all records of a GenBank file without
translating them. For every feature its index, kind, location,
strand and length are shown together with gene, locus_tag,
protein_id and product qualifiers.

Indices shown by this command are the positions of features inside
their records, the same indices are used by the translation output.

Examples:
  gngb list NC_005816.gb
  gngb list -f csv NC_005816.gb`,
		Aliases: []string{"ls"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runList(cmd, args, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	listCmd.Flags().StringVarP(
		&format, "format", "f", "",
		"output format: text, json, pretty, csv, tsv, yaml",
	)

	return listCmd
}

func runList(cmd *cobra.Command, args []string, format string) error {
	var opts []config.Option
	if cmd.Flags().Changed("format") {
		opts = append(opts, config.OptFormat(format))
	}
	if len(args) > 0 {
		opts = append(opts, config.OptInput(args[0]))
	}
	cfg.Update(opts)

	f, err := report.NewFormat(cfg.Translate.Format)
	if err != nil {
		return err
	}

	p, err := ioprocess.New(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	res, err := p.List(cmd.Context(), cfg.Input)
	if err != nil {
		return err
	}
	warnDiagnostics(res, f)
	return res.Write(cmd.OutOrStdout(), f)
}
