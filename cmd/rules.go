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

// getRulesCmd returns the rules command with its subcommands.
func getRulesCmd() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Review learned merge rules",
		Long: `Merge rules are learned from merges: every absorbed name
points to the name of the master. Rules are unique for a source name
within a scope, repeated merges increase their usage count.

Examples:
  gntag rules list
  gntag rules delete RULE_ID`,
	}

	rulesCmd.AddCommand(getRulesListCmd(), getRulesDeleteCmd())
	return rulesCmd
}

func getRulesListCmd() *cobra.Command {
	var asJSON bool

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List merge rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRulesList(cmd.OutOrStdout(), asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	jsonFlag(listCmd, &asJSON)
	return listCmd
}

func runRulesList(out io.Writer, asJSON bool) error {
	ctx := context.Background()
	c, closeDB, err := openCurator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	rules, err := c.Rules(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(out, rules)
	}
	printRules(out, rules)
	return nil
}

func getRulesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RULE_ID",
		Short: "Delete a merge rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, closeDB, err := openCurator(ctx)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			defer closeDB()

			return curateDone(c.DeleteRule(ctx, args[0]))
		},
	}
}
