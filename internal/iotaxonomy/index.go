package iotaxonomy

import "github.com/gnames/gntag/pkg/tag"

// index finds tags by type and case-insensitive name. It grows with
// imported rows, so repeated names of a document meet each other too.
type index struct {
	tags map[string][]*tag.Tag

	// parents holds ids of all known parents.
	parents map[string]struct{}

	// used marks rows that already took a place in the imported
	// hierarchy.
	used map[*tag.Tag]struct{}
}

func newIndex(tags []tag.Tag) *index {
	res := index{
		tags:    make(map[string][]*tag.Tag),
		parents: make(map[string]struct{}),
		used:    make(map[*tag.Tag]struct{}),
	}
	for i := range tags {
		res.add(tags[i])
	}
	return &res
}

func key(tp tag.Type, name string) string {
	return string(tp) + "|" + tag.NameKey(name)
}

func (idx *index) add(t tag.Tag) *tag.Tag {
	k := key(t.Type, t.Name)
	idx.tags[k] = append(idx.tags[k], &t)
	if t.Type == tag.Parent {
		idx.parents[t.ID] = struct{}{}
	}
	return &t
}

func (idx *index) use(t *tag.Tag) {
	idx.used[t] = struct{}{}
}

// find returns the first parent with the name.
func (idx *index) find(name string) *tag.Tag {
	ts := idx.tags[key(tag.Parent, name)]
	if len(ts) == 0 {
		return nil
	}
	return ts[0]
}

// findChild returns a child with the name that is already under the
// parent, or the first orphan with the name that is not placed by the
// import yet. Children of other parents are never taken away.
func (idx *index) findChild(name, parentID string) *tag.Tag {
	ts := idx.tags[key(tag.Child, name)]
	for _, t := range ts {
		if t.ParentID != nil && *t.ParentID == parentID {
			return t
		}
	}
	for _, t := range ts {
		if _, ok := idx.used[t]; ok || !idx.isOrphan(t) {
			continue
		}
		return t
	}
	return nil
}

func (idx *index) isOrphan(t *tag.Tag) bool {
	if t.ParentID == nil || *t.ParentID == "" {
		return true
	}
	_, ok := idx.parents[*t.ParentID]
	return !ok
}
