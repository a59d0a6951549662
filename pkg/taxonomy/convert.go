package taxonomy

import (
	"strings"
	"time"

	"github.com/gnames/gnlib"
)

// FromRaw converts a validated document to its typed form. Items that
// Validate reports as errors or ignored warnings are skipped. Names are
// cleaned from broken UTF-8 and surrounding spaces.
func FromRaw(raw map[string]any) *Document {
	res := Document{
		Parents: []Node{},
		Rules:   []Rule{},
		Orphans: []Orphan{},
	}
	res.Version, _ = raw["version"].(string)
	switch t := raw["exported_at"].(type) {
	case time.Time:
		res.ExportedAt = t
	case string:
		res.ExportedAt, _ = time.Parse(time.RFC3339, t)
	}

	parents, _ := raw["parents"].([]any)
	for _, pv := range parents {
		p, ok := pv.(map[string]any)
		if !ok {
			continue
		}
		node, ok := nodeOf(p)
		if !ok {
			continue
		}
		children, _ := p["children"].([]any)
		for _, chv := range children {
			ch, ok := chv.(map[string]any)
			if !ok {
				continue
			}
			if chNode, ok := nodeOf(ch); ok {
				node.Children = append(node.Children, chNode)
			}
		}
		res.Parents = append(res.Parents, node)
	}

	rules, _ := raw["rules"].([]any)
	for _, rv := range rules {
		r, ok := rv.(map[string]any)
		if !ok {
			continue
		}
		src, okSrc := stringOf(r, "source_name")
		can, okCan := stringOf(r, "canonical_name")
		if !okSrc || !okCan {
			continue
		}
		scope, _ := stringOf(r, "scope")
		count, ok := toInt(r["usage_count"])
		if !ok || count < 1 {
			count = 1
		}
		res.Rules = append(res.Rules, Rule{
			SourceName:    cleanName(src),
			CanonicalName: cleanName(can),
			Scope:         scope,
			UsageCount:    count,
		})
	}

	orphans, _ := raw["orphans"].([]any)
	for _, ov := range orphans {
		o, ok := ov.(map[string]any)
		if !ok {
			continue
		}
		name, ok := nameOf(o)
		if !ok {
			continue
		}
		id, _ := o["id"].(string)
		parentID, _ := o["parent_id"].(string)
		res.Orphans = append(res.Orphans, Orphan{
			ID:       id,
			Name:     cleanName(name),
			ParentID: parentID,
		})
	}
	return &res
}

func nodeOf(m map[string]any) (Node, bool) {
	name, ok := nameOf(m)
	if !ok {
		return Node{}, false
	}
	res := Node{Name: cleanName(name)}
	res.ID, _ = m["id"].(string)
	if isStringList(m["synonyms"]) {
		syns, _ := m["synonyms"].([]any)
		for _, s := range syns {
			if syn := cleanName(s.(string)); syn != "" {
				res.Synonyms = append(res.Synonyms, syn)
			}
		}
	}
	return res, true
}

func cleanName(s string) string {
	return strings.TrimSpace(gnlib.FixUtf8(s))
}
