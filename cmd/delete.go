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
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/spf13/cobra"
)

// getDeleteCmd returns the delete command.
func getDeleteCmd() *cobra.Command {
	var (
		ids     []string
		all     bool
		reasons []string
		inp     curator.DeleteInput
	)

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete tags",
		Long: `Delete tags by id, or with --all every tag sharing their names.

Children of deleted parents become orphans. At least one reason is
required, accepted reasons are:
  ` + reasonList() + `

Examples:
  gntag delete --id ID --reason misspelling
  gntag delete --id ID --all --reason generic-term --note "too broad"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inp.TagIDs = ids
			inp.Scope = tag.ScopeSingle
			if all {
				inp.Scope = tag.ScopeAll
			}
			for _, r := range reasons {
				inp.Reasons = append(inp.Reasons, tag.Reason(r))
			}

			ctx := context.Background()
			c, closeDB, err := openCurator(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer closeDB()

			return curateDone(c.Delete(ctx, inp))
		},
	}

	deleteCmd.Flags().StringSliceVarP(&ids, "id", "i", nil,
		"ids of tags to delete")
	deleteCmd.Flags().BoolVarP(&all, "all", "a", false,
		"delete all tags with the same names")
	deleteCmd.Flags().StringSliceVar(&reasons, "reason", nil,
		"reasons of the deletion")
	deleteCmd.Flags().StringVarP(&inp.Note, "note", "n", "",
		"free-form note stored in the curation log")
	decisionMSFlag(deleteCmd, &inp.DecisionMS)
	_ = deleteCmd.MarkFlagRequired("id")
	_ = deleteCmd.MarkFlagRequired("reason")

	return deleteCmd
}

func reasonList() string {
	res := make([]string, len(tag.Reasons))
	for i, r := range tag.Reasons {
		res[i] = string(r)
	}
	return strings.Join(res, "\n  ")
}
