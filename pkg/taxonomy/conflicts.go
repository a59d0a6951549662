package taxonomy

import (
	"github.com/gnames/gntag/pkg/tag"
)

// Conflict is a name of the document that already exists in the live
// taxonomy with the same type, compared case-insensitively.
type Conflict struct {
	Name       string   `json:"name"`
	Type       tag.Type `json:"type"`
	ExistingID string   `json:"existing_id"`
}

// Conflicts lists collisions between the document and live tags. Every
// pair of a document name and an existing row is listed once.
func Conflicts(doc *Document, live []tag.Tag) []Conflict {
	res := []Conflict{}
	index := map[tag.Type]map[string][]string{
		tag.Parent: {},
		tag.Child:  {},
	}
	for _, t := range live {
		if m, ok := index[t.Type]; ok {
			key := tag.NameKey(t.Name)
			m[key] = append(m[key], t.ID)
		}
	}

	seen := make(map[string]struct{})
	add := func(name string, tp tag.Type) {
		for _, id := range index[tp][tag.NameKey(name)] {
			key := string(tp) + "|" + tag.NameKey(name) + "|" + id
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			res = append(res, Conflict{Name: name, Type: tp, ExistingID: id})
		}
	}

	for _, p := range doc.Parents {
		add(p.Name, tag.Parent)
		for _, c := range p.Children {
			add(c.Name, tag.Child)
		}
	}
	return res
}
