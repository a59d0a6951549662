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
	"github.com/spf13/cobra"
)

// getRejectCmd returns the reject command.
func getRejectCmd() *cobra.Command {
	var (
		ids    []string
		reason string
	)

	rejectCmd := &cobra.Command{
		Use:   "reject",
		Short: "Record that tags are not duplicates",
		Long: `Record in the curation log that similar tags are not
duplicates. Tags stay unchanged.

Examples:
  gntag reject --id ID1 --id ID2 --reason "different meaning"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, closeDB, err := openCurator(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer closeDB()

			return curateDone(c.RejectDuplicate(ctx, ids, reason))
		},
	}

	rejectCmd.Flags().StringSliceVarP(&ids, "id", "i", nil,
		"ids of tags that are not duplicates")
	rejectCmd.Flags().StringVar(&reason, "reason", "",
		"why the tags are different")
	_ = rejectCmd.MarkFlagRequired("id")
	_ = rejectCmd.MarkFlagRequired("reason")

	return rejectCmd
}
