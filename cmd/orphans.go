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

// getOrphansCmd returns the orphans command with its subcommands.
func getOrphansCmd() *cobra.Command {
	orphansCmd := &cobra.Command{
		Use:   "orphans",
		Short: "Review children without an existing parent",
		Long: `Review orphans: children without a parent or with a parent
that does not exist.

Subcommands:
  list    show orphans
  adopt   attach an orphan to an existing parent
  delete  delete orphans

Examples:
  gntag orphans list
  gntag orphans adopt ORPHAN_ID PARENT_ID
  gntag orphans delete ID1 ID2`,
	}

	orphansCmd.AddCommand(
		getOrphansListCmd(),
		getOrphansAdoptCmd(),
		getOrphansDeleteCmd(),
	)
	return orphansCmd
}

func getOrphansListCmd() *cobra.Command {
	var asJSON bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List orphans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOrphansList(cmd.OutOrStdout(), asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	jsonFlag(listCmd, &asJSON)
	return listCmd
}

func runOrphansList(out io.Writer, asJSON bool) error {
	ctx := context.Background()
	c, closeDB, err := openCurator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	orphans, err := c.ListOrphans(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(out, orphans)
	}
	gn.Info("Orphans: <em>%s</em>", count(len(orphans)))
	printTags(out, orphans)
	return nil
}

func getOrphansAdoptCmd() *cobra.Command {
	var rationale string

	adoptCmd := &cobra.Command{
		Use:   "adopt ORPHAN_ID PARENT_ID",
		Short: "Attach an orphan to an existing parent",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, closeDB, err := openCurator(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer closeDB()

			return curateDone(c.AdoptOrphan(ctx, args[0], args[1], rationale))
		},
	}
	rationaleFlag(adoptCmd, &rationale)
	return adoptCmd
}

func getOrphansDeleteCmd() *cobra.Command {
	var rationale string

	deleteCmd := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete orphans",
		Long: `Delete one or more orphans. Ids that are not orphans are
reported as failed, the rest are deleted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, closeDB, err := openCurator(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer closeDB()

			return curateDone(c.DeleteOrphans(ctx, args, rationale))
		},
	}
	rationaleFlag(deleteCmd, &rationale)
	return deleteCmd
}
