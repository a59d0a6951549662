// Package clusters groups similar parent names into review clusters.
//
// Every cluster has one master name that survives a merge and candidate
// names that are absorbed into it. A name is a candidate in at most one
// cluster, and a master is never a candidate anywhere.
package clusters

import (
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/gnames/gntag/pkg/duplicates"
	"github.com/gnames/gntag/pkg/tag"
)

// NameStats describes all rows that carry the same name.
type NameStats struct {
	// Documents is the number of distinct owning documents.
	Documents int

	IDs      []string
	Synonyms []string
}

// Candidate is a name proposed to be merged into the cluster master.
type Candidate struct {
	Name      string   `json:"name"`
	Documents int      `json:"documents"`
	Score     float64  `json:"score"`
	Reason    string   `json:"reason"`
	IDs       []string `json:"ids"`
}

// Cluster is one batch-review unit.
type Cluster struct {
	Master          string      `json:"master"`
	MasterDocuments int         `json:"master_documents"`
	MasterIDs       []string    `json:"master_ids"`
	Candidates      []Candidate `json:"candidates"`
}

// Builder turns similar pairs into clusters.
type Builder struct {
	classifier Classifier
}

// New creates a Builder. A nil classifier means DefaultRules.
func New(classifier Classifier) *Builder {
	if classifier == nil {
		classifier = DefaultRules()
	}
	return &Builder{classifier: classifier}
}

// Stats collects NameStats of parent tags.
func Stats(tags []tag.Tag) map[string]NameStats {
	res := make(map[string]NameStats)
	docs := make(map[string]map[string]struct{})
	for _, t := range tags {
		if !t.IsParent() {
			continue
		}
		st := res[t.Name]
		st.IDs = append(st.IDs, t.ID)
		for _, syn := range t.Synonyms {
			if !slices.Contains(st.Synonyms, syn) {
				st.Synonyms = append(st.Synonyms, syn)
			}
		}
		if docs[t.Name] == nil {
			docs[t.Name] = make(map[string]struct{})
		}
		if t.DocumentID != "" {
			docs[t.Name][t.DocumentID] = struct{}{}
		}
		st.Documents = len(docs[t.Name])
		res[t.Name] = st
	}
	return res
}

// Build goes through pairs in their order and places every pair either
// into a new cluster or into the cluster of its master. Pairs whose
// candidate is already placed somewhere, or whose master is already a
// candidate, are skipped. The result is sorted by the number of
// candidates, largest first.
func (b *Builder) Build(
	pairs []duplicates.Pair,
	stats map[string]NameStats,
) []Cluster {
	res := []Cluster{}
	masters := make(map[string]int)
	candidates := make(map[string]struct{})

	for _, p := range pairs {
		master, cand := chooseMaster(p.NameA, p.NameB, stats)
		if _, ok := candidates[cand]; ok {
			continue
		}
		if _, ok := masters[cand]; ok {
			continue
		}
		if _, ok := candidates[master]; ok {
			continue
		}

		idx, ok := masters[master]
		if !ok {
			st := stats[master]
			res = append(res, Cluster{
				Master:          master,
				MasterDocuments: st.Documents,
				MasterIDs:       st.IDs,
			})
			idx = len(res) - 1
			masters[master] = idx
		}

		cst := stats[cand]
		mst := stats[master]
		reason := b.classifier.Reason(
			Subject{Name: master, Synonyms: mst.Synonyms},
			Subject{Name: cand, Synonyms: cst.Synonyms},
		)
		res[idx].Candidates = append(res[idx].Candidates, Candidate{
			Name:      cand,
			Documents: cst.Documents,
			Score:     p.Score,
			Reason:    reason,
			IDs:       cst.IDs,
		})
		candidates[cand] = struct{}{}
	}

	slices.SortStableFunc(res, func(a, b Cluster) int {
		return len(b.Candidates) - len(a.Candidates)
	})
	return res
}

// chooseMaster prefers the name with more documents, then the name that
// starts with a capital letter, then the first name of the pair.
func chooseMaster(a, b string, stats map[string]NameStats) (string, string) {
	da, db := stats[a].Documents, stats[b].Documents
	switch {
	case da > db:
		return a, b
	case db > da:
		return b, a
	}

	ua, ub := startsUpper(a), startsUpper(b)
	if ub && !ua {
		return b, a
	}
	return a, b
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
