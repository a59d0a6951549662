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
	"github.com/gnames/gntag/pkg/curator"
	"github.com/spf13/cobra"
)

// getMergeCmd returns the merge command.
func getMergeCmd() *cobra.Command {
	var inp curator.MergeInput

	mergeCmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge candidate names into a master tag",
		Long: `Merge absorbs all rows of candidate names into the master tag.

For every candidate name:
  1. Children of its parent rows move to the master
     (or become orphans when the master is a child)
  2. All rows with the name are deleted
  3. A merge rule candidate -> master is learned

Candidates are processed one by one, a failed candidate does not stop
the others. The merge is recorded in the curation log.

Examples:
  gntag merge --master ID --candidate saude --candidate Saude
  gntag merge -m ID -c "Saúde, bem-estar" --scope assistant -r "accent"

Repeat --candidate for every name, names may contain commas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, closeDB, err := openCurator(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer closeDB()

			return curateDone(c.Merge(ctx, inp))
		},
	}

	mergeCmd.Flags().StringVarP(&inp.MasterID, "master", "m", "",
		"id of the tag that survives the merge")
	mergeCmd.Flags().StringArrayVarP(&inp.CandidateNames, "candidate", "c",
		nil, "names to absorb into the master")
	mergeCmd.Flags().StringVarP(&inp.Scope, "scope", "s", "",
		"scope of learned merge rules (default from config)")
	mergeCmd.Flags().StringVar(&inp.CreatedBy, "created-by", "",
		"author of learned merge rules (default from config)")
	rationaleFlag(mergeCmd, &inp.Rationale)
	decisionMSFlag(mergeCmd, &inp.DecisionMS)
	_ = mergeCmd.MarkFlagRequired("master")
	_ = mergeCmd.MarkFlagRequired("candidate")

	return mergeCmd
}
