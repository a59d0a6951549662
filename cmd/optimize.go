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
	"io"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iooptimize"
	"github.com/gnames/gntag/internal/iostore"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Reclaims space and refreshes statistics of the tag store",
		Long: `Optimize the tag store after many curation decisions.

The command counts live tags and orphans waiting for review, then
reclaims space left by deleted rows and updates query planner
statistics (VACUUM and ANALYZE). Orphans are reported, never removed.

Prerequisites:
  - Database must be created (run 'gntag create' first)

Examples:
  # Optimize with default settings
  gntag optimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd.OutOrStdout())
		},
	}

	return optimizeCmd
}

func runOptimize(out io.Writer) error {
	ctx := context.Background()

	op, err := connect(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
Run 'gntag create' first to initialize the schema.`)
		return nil
	}

	s, err := iostore.New(op)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Starting tag store optimization...")
	res, err := iooptimize.NewOptimizer(op, s).Optimize(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	fmt.Fprintf(out, "Tags: %s, orphans: %s\n", count(res.Tags), count(res.Orphans))
	gn.Info("Tag store optimization is complete!")

	return nil
}
