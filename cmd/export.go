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
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iofs"
	"github.com/gnames/gntag/pkg/taxonomy"
	"github.com/spf13/cobra"
)

// getExportCmd returns the export command.
func getExportCmd() *cobra.Command {
	var output, format string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the taxonomy to JSON or YAML",
		Long: `Export parents with their children, merge rules and orphans
to a taxonomy document. Without --output the document goes to STDOUT.

Examples:
  gntag export > taxonomy.json
  gntag export --format yaml --output taxonomy.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runExport(cmd, output, format)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	exportCmd.Flags().StringVarP(&output, "output", "o", "",
		"file for the document (default STDOUT)")
	exportCmd.Flags().StringVarP(&format, "format", "f", "json",
		"document format: json or yaml")

	return exportCmd
}

func runExport(cmd *cobra.Command, output, format string) error {
	f, ok := taxonomy.NewFormat(format)
	if !ok {
		return fmt.Errorf("unknown format '%s', use json or yaml", format)
	}

	ctx := context.Background()
	c, closeDB, err := openCurator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	doc, err := c.ExportTaxonomy(ctx)
	if err != nil {
		return err
	}
	data, err := taxonomy.Encode(doc, f)
	if err != nil {
		return err
	}

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err = iofs.WriteFile(output, data); err != nil {
		return err
	}
	gn.Info("Exported <em>%s</em> parents, <em>%s</em> rules to <em>%s</em>",
		count(len(doc.Parents)), count(len(doc.Rules)), output)
	return nil
}
