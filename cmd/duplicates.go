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
	"io"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getDuplicatesCmd returns the duplicates command.
func getDuplicatesCmd() *cobra.Command {
	var asJSON bool

	duplicatesCmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Detect duplicate tags",
		Long: `Detect exact and near-duplicate tags in the live taxonomy.

The report contains:
  - Exact duplicates: parent rows with exactly the same name
  - Similar parents: pairs of parent names above the parent threshold
  - Similar children: pairs of children of the same parent above
    the child threshold

Parent names beyond detect.max_parent_names are not compared, the
report says so in its limitations.

Examples:
  gntag duplicates
  gntag duplicates --json`,
		Aliases: []string{"dups"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDuplicates(cmd.OutOrStdout(), asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	jsonFlag(duplicatesCmd, &asJSON)

	return duplicatesCmd
}

func runDuplicates(out io.Writer, asJSON bool) error {
	ctx := context.Background()
	c, closeDB, err := openCurator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	rep, err := c.ListDuplicates(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(out, rep)
	}
	printDuplicates(out, rep)
	return nil
}
