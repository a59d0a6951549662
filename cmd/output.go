package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntag/pkg/clusters"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/duplicates"
	"github.com/gnames/gntag/pkg/tag"
)

func printJSON(out io.Writer, v any) error {
	res, err := gnfmt.GNjson{Pretty: true}.Encode(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(res))
	return err
}

func count(i int) string {
	return humanize.Comma(int64(i))
}

// curateDone prints the result of a mutation and the error, if any.
func curateDone(res *tag.Result, err error) error {
	printResult(res)
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}

// printResult shows the outcome of a curation operation.
func printResult(res *tag.Result) {
	if res == nil {
		return
	}
	msg := "<em>%s</em> %s: succeeded %s, failed %s, documents %s"
	vars := []any{
		res.Action, res.Status, count(res.Succeeded),
		count(res.Failed), count(res.Documents),
	}
	if res.Status == tag.Succeeded {
		gn.Info(msg, vars...)
	} else {
		gn.Warn(msg, vars...)
	}
	if len(res.FailedItems) > 0 {
		gn.Warn("Failed items: %s", strings.Join(res.FailedItems, ", "))
	}
	if res.EventID != "" {
		gn.Info("Recorded event <em>%s</em>", res.EventID)
	}
}

func printDuplicates(out io.Writer, rep *duplicates.Report) {
	fmt.Fprintf(out, "Exact duplicates: %s\n", count(len(rep.ExactGroups)))
	for _, g := range rep.ExactGroups {
		fmt.Fprintf(out, "  %s (%s rows): %s\n",
			g.Name, count(g.Count), strings.Join(g.IDs, ", "))
	}

	fmt.Fprintf(out, "\nSimilar parents: %s\n", count(len(rep.ParentPairs)))
	for _, p := range rep.ParentPairs {
		printPair(out, "  ", p)
	}

	fmt.Fprintf(out, "\nSimilar children: %s parents\n",
		count(len(rep.ChildPairs)))
	for _, g := range rep.ChildPairs {
		fmt.Fprintf(out, "  %s (%s)\n", g.ParentName, g.ParentID)
		for _, p := range g.Pairs {
			printPair(out, "    ", p)
		}
	}

	fmt.Fprintf(out, "\nParent names compared: %s of %s\n",
		count(rep.ParentNamesCompared), count(rep.ParentNamesTotal))
	for _, l := range rep.Limitations {
		fmt.Fprintf(out, "Limitation: %s\n", l)
	}
}

func printPair(out io.Writer, indent string, p duplicates.Pair) {
	fmt.Fprintf(out, "%s%s ~ %s  %.2f\n", indent, p.NameA, p.NameB, p.Score)
}

func printClusters(out io.Writer, cls []clusters.Cluster) {
	fmt.Fprintf(out, "Clusters: %s\n", count(len(cls)))
	for _, c := range cls {
		fmt.Fprintf(out, "\n%s (%s documents)\n",
			c.Master, count(c.MasterDocuments))
		for _, cand := range c.Candidates {
			fmt.Fprintf(out, "  <- %s (%s documents) %.2f %s\n",
				cand.Name, count(cand.Documents), cand.Score, cand.Reason)
		}
	}
}

func printTags(out io.Writer, tags []tag.Tag) {
	for _, t := range tags {
		parent := "-"
		if t.ParentID != nil {
			parent = *t.ParentID
		}
		fmt.Fprintf(out, "%s\t%s\t%s\tparent: %s\tdocument: %s\n",
			t.ID, t.Type, t.Name, parent, t.DocumentID)
	}
}

func printRules(out io.Writer, rules []tag.MergeRule) {
	for _, r := range rules {
		fmt.Fprintf(out, "%s\t%s -> %s\tscope: %s\tused: %s\n",
			r.ID, r.SourceName, r.CanonicalName, r.Scope, count(r.UsageCount))
	}
}

func printEvents(out io.Writer, events []tag.Event) {
	for _, e := range events {
		names := make([]string, len(e.Tags))
		for i := range e.Tags {
			names[i] = e.Tags[i].Name
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n",
			eventTime(e), e.Action, strings.Join(names, ", "), e.Rationale)
	}
}

func eventTime(e tag.Event) string {
	return e.CreatedAt.Format("2006-01-02 15:04:05")
}

func printImportReport(out io.Writer, rep *curator.ImportReport) {
	v := rep.Validation
	fmt.Fprintf(out, "Parents: %s, children: %s, rules: %s\n",
		count(v.Parents), count(v.Children), count(v.Rules))
	for _, e := range v.Errors {
		fmt.Fprintf(out, "Error: %s\n", e)
	}
	for _, w := range v.Warnings {
		fmt.Fprintf(out, "Warning: %s\n", w)
	}
	fmt.Fprintf(out, "Conflicts: %s\n", count(len(rep.Conflicts)))
	for _, c := range rep.Conflicts {
		fmt.Fprintf(out, "  %s %s exists as %s\n", c.Type, c.Name, c.ExistingID)
	}
}
