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
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iofs"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var (
		mode  string
		quiet bool
		inp   curator.ImportInput
	)

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a taxonomy document",
		Long: `Import a taxonomy document in JSON or YAML.

The document is validated first, an invalid document changes nothing.
Modes:
  merge    tags with the same names are updated, the rest are added
  replace  all live tags are deleted before the import

Every imported tag belongs to the document given by --document (UUID).
Use --dry-run to see validation results and conflicts with live tags
without writing anything.

Examples:
  gntag import taxonomy.json --document 0b6a3a40-3f55-4c3c-9a3c-2a5f0c4e2a11
  gntag import taxonomy.yaml -d UUID --mode replace
  gntag import taxonomy.json --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inp.Mode = curator.ImportMode(mode)
			inp.WithProgress = !quiet
			err := runImport(cmd, args[0], inp)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().StringVarP(&inp.DocumentID, "document", "d", "",
		"UUID of the document that owns imported tags")
	importCmd.Flags().StringVarP(&mode, "mode", "m", string(curator.ImportMerge),
		"import mode: merge or replace")
	importCmd.Flags().BoolVar(&inp.DryRun, "dry-run", false,
		"validate and detect conflicts without writing")
	importCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"do not show the progress bar")

	return importCmd
}

func runImport(cmd *cobra.Command, path string, inp curator.ImportInput) error {
	data, err := iofs.ReadFile(path)
	if err != nil {
		return err
	}
	inp.Data = data

	ctx := context.Background()
	c, closeDB, err := openCurator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	rep, err := c.ImportTaxonomy(ctx, inp)
	if rep != nil {
		printImportReport(cmd.OutOrStdout(), rep)
		printResult(rep.Result)
	}
	if err != nil {
		return err
	}
	if inp.DryRun {
		gn.Info("Dry run, nothing was written.")
	}
	return nil
}
