// Package duplicates finds exact and near-duplicate tags in a snapshot of
// the tag set. It only reads its input and can be abandoned at any moment
// through the context.
package duplicates

import (
	"context"
	"fmt"
	"slices"

	"github.com/gnames/gntag/pkg/config"
	"github.com/gnames/gntag/pkg/similarity"
	"github.com/gnames/gntag/pkg/tag"
	"golang.org/x/sync/errgroup"
)

// ExactGroup contains parent tags sharing exactly the same name.
type ExactGroup struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// Pair is two different names with similar spelling.
type Pair struct {
	NameA string `json:"name_a"`
	NameB string `json:"name_b"`

	// Score is the similarity from 0 to 1.
	Score float64 `json:"score"`

	// IDs contains rows of both names.
	IDs []string `json:"ids"`
}

// ChildGroup contains similar children of one parent.
type ChildGroup struct {
	ParentID   string `json:"parent_id"`
	ParentName string `json:"parent_name"`
	Pairs      []Pair `json:"pairs"`
}

// Report contains the three products of detection.
type Report struct {
	ExactGroups []ExactGroup `json:"exact_groups"`
	ParentPairs []Pair       `json:"parent_pairs"`
	ChildPairs  []ChildGroup `json:"child_pairs"`

	// ParentNamesTotal is the number of unique parent names.
	ParentNamesTotal int `json:"parent_names_total"`

	// ParentNamesCompared is the number of unique parent names that took
	// part in the pairwise comparison.
	ParentNamesCompared int `json:"parent_names_compared"`

	// ChildParentsSkipped is the number of parents whose children were not
	// compared because there were too few or too many of them.
	ChildParentsSkipped int `json:"child_parents_skipped"`

	// CaseOnlyPairs is the number of compared name pairs that differ only
	// in letter case or spacing. Such names score 100, so they belong
	// neither to exact groups nor to similar pairs.
	CaseOnlyPairs int `json:"case_only_pairs"`

	// Limitations explain what was left out of the comparison.
	Limitations []string `json:"limitations,omitempty"`
}

// Detector finds duplicates according to thresholds and caps of its
// configuration.
type Detector struct {
	cfg  config.DetectConfig
	jobs int
}

// New creates a Detector. Child duplicates are searched by jobs workers.
func New(cfg config.DetectConfig, jobs int) *Detector {
	if jobs < 1 {
		jobs = 1
	}
	return &Detector{cfg: cfg, jobs: jobs}
}

// Detect builds the duplicates report for a snapshot of the tag set.
// An empty snapshot gives an empty report.
func (d *Detector) Detect(ctx context.Context, tags []tag.Tag) (*Report, error) {
	res := Report{
		ExactGroups: []ExactGroup{},
		ParentPairs: []Pair{},
		ChildPairs:  []ChildGroup{},
	}

	var parents []tag.Tag
	children := make(map[string][]tag.Tag)
	for _, t := range tags {
		switch t.Type {
		case tag.Parent:
			parents = append(parents, t)
		case tag.Child:
			if t.ParentID != nil {
				children[*t.ParentID] = append(children[*t.ParentID], t)
			}
		}
	}

	res.ExactGroups = exactGroups(parents)

	pairs, err := d.parentPairs(ctx, parents, &res)
	if err != nil {
		return nil, err
	}
	res.ParentPairs = pairs

	groups, err := d.childPairs(ctx, parents, children, &res)
	if err != nil {
		return nil, err
	}
	res.ChildPairs = groups

	if res.CaseOnlyPairs > 0 {
		res.Limitations = append(res.Limitations, fmt.Sprintf(
			"%d pair(s) of names differ only in letter case or spacing, "+
				"they are not listed as exact groups or similar pairs",
			res.CaseOnlyPairs,
		))
	}

	return &res, nil
}

func exactGroups(parents []tag.Tag) []ExactGroup {
	res := []ExactGroup{}
	idx := make(map[string]int)
	for _, t := range parents {
		i, ok := idx[t.Name]
		if !ok {
			idx[t.Name] = len(res)
			res = append(res, ExactGroup{Name: t.Name})
			i = len(res) - 1
		}
		res[i].Count++
		res[i].IDs = append(res[i].IDs, t.ID)
	}

	return slices.DeleteFunc(res, func(g ExactGroup) bool {
		return g.Count < 2
	})
}

// nameIDs keeps unique names in order of their first appearance together
// with ids of the rows that carry them.
type nameIDs struct {
	names []string
	ids   map[string][]string
}

func uniqueNames(tags []tag.Tag) nameIDs {
	res := nameIDs{ids: make(map[string][]string)}
	for _, t := range tags {
		if _, ok := res.ids[t.Name]; !ok {
			res.names = append(res.names, t.Name)
		}
		res.ids[t.Name] = append(res.ids[t.Name], t.ID)
	}
	return res
}

func (d *Detector) parentPairs(
	ctx context.Context,
	parents []tag.Tag,
	rep *Report,
) ([]Pair, error) {
	un := uniqueNames(parents)
	names := un.names
	rep.ParentNamesTotal = len(names)
	if limit := d.cfg.MaxParentNames; limit > 0 && len(names) > limit {
		names = names[:limit]
		rep.Limitations = append(rep.Limitations, fmt.Sprintf(
			"only the first %d of %d unique parent names were compared",
			limit, rep.ParentNamesTotal,
		))
	}
	rep.ParentNamesCompared = len(names)

	res, caseOnly, err := d.comparePairs(ctx, names, un.ids, d.cfg.ParentThreshold)
	if err != nil {
		return nil, err
	}
	rep.CaseOnlyPairs += caseOnly
	return res, nil
}

// comparePairs scores every unordered pair of names and keeps those with
// threshold <= score < 100, best first. Equal scores keep the order in
// which pairs were found. It also counts pairs of different names that
// score 100.
func (d *Detector) comparePairs(
	ctx context.Context,
	names []string,
	ids map[string][]string,
	threshold int,
) ([]Pair, int, error) {
	res := []Pair{}
	var caseOnly int
	for i := range names {
		if err := ctx.Err(); err != nil {
			return nil, 0, CancelledError(err)
		}
		for j := i + 1; j < len(names); j++ {
			score := similarity.Score(names[i], names[j])
			if score >= 100 {
				caseOnly++
				continue
			}
			if score < threshold {
				continue
			}
			pairIDs := slices.Concat(ids[names[i]], ids[names[j]])
			res = append(res, Pair{
				NameA: names[i],
				NameB: names[j],
				Score: float64(score) / 100,
				IDs:   pairIDs,
			})
		}
	}

	slices.SortStableFunc(res, func(a, b Pair) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return res, caseOnly, nil
}

func (d *Detector) childPairs(
	ctx context.Context,
	parents []tag.Tag,
	children map[string][]tag.Tag,
	rep *Report,
) ([]ChildGroup, error) {
	var eligible []tag.Tag
	for _, p := range parents {
		n := len(children[p.ID])
		if n < 2 {
			continue
		}
		if n < d.cfg.MinChildren || n > d.cfg.MaxChildren {
			rep.ChildParentsSkipped++
			continue
		}
		eligible = append(eligible, p)
	}
	if rep.ChildParentsSkipped > 0 {
		rep.Limitations = append(rep.Limitations, fmt.Sprintf(
			"children of %d parent(s) were not compared, "+
				"only parents with %d to %d children are checked",
			rep.ChildParentsSkipped, d.cfg.MinChildren, d.cfg.MaxChildren,
		))
	}

	found := make([][]Pair, len(eligible))
	caseOnly := make([]int, len(eligible))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.jobs)
	for i, p := range eligible {
		g.Go(func() error {
			un := uniqueNames(children[p.ID])
			pairs, n, err := d.comparePairs(ctx, un.names, un.ids, d.cfg.ChildThreshold)
			if err != nil {
				return err
			}
			caseOnly[i] = n
			if limit := d.cfg.MaxChildPairs; limit > 0 && len(pairs) > limit {
				pairs = pairs[:limit]
			}
			found[i] = pairs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := []ChildGroup{}
	for i, p := range eligible {
		rep.CaseOnlyPairs += caseOnly[i]
		if len(found[i]) == 0 {
			continue
		}
		res = append(res, ChildGroup{
			ParentID:   p.ID,
			ParentName: p.Name,
			Pairs:      found[i],
		})
	}
	return res, nil
}
