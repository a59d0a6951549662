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

// getEventsCmd returns the events command.
func getEventsCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Show the curation log",
		Long: `Show the latest curation events, newest first.

Every merge, deletion, adoption, rejection, export and import is
recorded with the tags involved, the decision and its rationale.

Examples:
  gntag events
  gntag events --limit 100 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runEvents(cmd.OutOrStdout(), limit, asJSON)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	eventsCmd.Flags().IntVarP(&limit, "limit", "l", 20,
		"number of events to show, 0 shows all")
	jsonFlag(eventsCmd, &asJSON)

	return eventsCmd
}

func runEvents(out io.Writer, limit int, asJSON bool) error {
	ctx := context.Background()
	c, closeDB, err := openCurator(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	events, err := c.Events(ctx, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(out, events)
	}
	printEvents(out, events)
	return nil
}
