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

// getClustersCmd returns the clusters command.
func getClustersCmd() *cobra.Command {
	var asJSON bool

	clustersCmd := &cobra.Command{
		Use:   "clusters",
		Short: "Group similar parent names for batch review",
		Long: `Group similar parent names into review clusters.

Every cluster has a master name (the one used by more documents) and
candidates that would be merged into it. Each candidate has a reason,
such as accent, case or plural difference.

Examples:
  gntag clusters
  gntag clusters --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runClusters(cmd.OutOrStdout(), asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	jsonFlag(clustersCmd, &asJSON)

	return clustersCmd
}

func runClusters(out io.Writer, asJSON bool) error {
	ctx := context.Background()
	c, closeDB, err := openCurator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	cls, err := c.BuildClusters(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(out, cls)
	}
	printClusters(out, cls)
	return nil
}
