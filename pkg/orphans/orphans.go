// Package orphans derives orphaned children from a snapshot of the tag set.
// Nothing is stored, orphans are found anew on every read.
package orphans

import "github.com/gnames/gntag/pkg/tag"

// Find returns children whose parent reference is empty or does not point
// to an existing parent tag. The order of the input is preserved.
func Find(tags []tag.Tag) []tag.Tag {
	parents := make(map[string]struct{})
	for _, t := range tags {
		if t.IsParent() {
			parents[t.ID] = struct{}{}
		}
	}

	res := []tag.Tag{}
	for _, t := range tags {
		if IsOrphan(t, parents) {
			res = append(res, t)
		}
	}
	return res
}

// IsOrphan checks one tag against a set of existing parent ids.
func IsOrphan(t tag.Tag, parents map[string]struct{}) bool {
	if !t.IsChild() {
		return false
	}
	if t.ParentID == nil {
		return true
	}
	_, ok := parents[*t.ParentID]
	return !ok
}
