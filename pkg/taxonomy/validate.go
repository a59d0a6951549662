package taxonomy

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/gnames/gnlib"
	"github.com/gnames/gntag/pkg/config"
)

// Validation is the outcome of structural validation of a document.
// Errors block an import, warnings do not.
type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`

	// Parents, Children and Rules are the numbers of items to import.
	Parents  int `json:"parents"`
	Children int `json:"children"`
	Rules    int `json:"rules"`
}

// OK is true when there are no errors.
func (v Validation) OK() bool {
	return len(v.Errors) == 0
}

func (v *Validation) errorf(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

func (v *Validation) warnf(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks the structure of a decoded document.
func Validate(raw map[string]any) Validation {
	res := Validation{Errors: []string{}, Warnings: []string{}}
	if raw == nil {
		res.errorf("document is empty")
		return res
	}

	validateVersion(raw, &res)
	validateParents(raw, &res)
	validateRules(raw, &res)
	validateOrphans(raw, &res)
	return res
}

func validateVersion(raw map[string]any, res *Validation) {
	v, ok := raw["version"]
	if !ok || v == nil {
		res.errorf("missing required field 'version'")
		return
	}
	version, ok := v.(string)
	if !ok {
		res.errorf("field 'version' must be a string")
		return
	}
	if !gnlib.IsVersion(version) {
		res.errorf("version '%s' is not a semantic version", version)
		return
	}
	if gnlib.CmpVersion(version, config.MinVersionTaxonomy) < 0 {
		res.errorf(
			"version '%s' is too old, the oldest supported version is '%s'",
			version, config.MinVersionTaxonomy,
		)
	}
}

func validateParents(raw map[string]any, res *Validation) {
	v, ok := raw["parents"]
	if !ok {
		res.errorf("missing required field 'parents'")
		return
	}
	parents, ok := v.([]any)
	if !ok {
		res.errorf("field 'parents' must be a list")
		return
	}

	for i, pv := range parents {
		p, ok := pv.(map[string]any)
		if !ok {
			res.errorf("parent #%d is not an object", i+1)
			continue
		}
		name, ok := nameOf(p)
		if !ok {
			res.errorf("parent #%d has no name", i+1)
			continue
		}
		res.Parents++
		if !isStringList(p["synonyms"]) {
			res.warnf("synonyms of parent '%s' are malformed and ignored", name)
		}

		cv, ok := p["children"]
		if !ok || cv == nil {
			continue
		}
		children, ok := cv.([]any)
		if !ok {
			res.errorf("children of parent '%s' must be a list", name)
			continue
		}
		for j, chv := range children {
			ch, ok := chv.(map[string]any)
			if !ok {
				res.errorf("child #%d of parent '%s' is not an object", j+1, name)
				continue
			}
			chName, ok := nameOf(ch)
			if !ok {
				res.errorf("child #%d of parent '%s' has no name", j+1, name)
				continue
			}
			res.Children++
			if !isStringList(ch["synonyms"]) {
				res.warnf("synonyms of child '%s' are malformed and ignored", chName)
			}
		}
	}
}

func validateRules(raw map[string]any, res *Validation) {
	v, ok := raw["rules"]
	if !ok || v == nil {
		return
	}
	rules, ok := v.([]any)
	if !ok {
		res.warnf("field 'rules' is not a list, rules are ignored")
		return
	}

	for i, rv := range rules {
		r, ok := rv.(map[string]any)
		if !ok {
			res.warnf("rule #%d is not an object and is ignored", i+1)
			continue
		}
		src, okSrc := stringOf(r, "source_name")
		_, okCan := stringOf(r, "canonical_name")
		if !okSrc || !okCan {
			res.warnf("rule #%d needs source_name and canonical_name, ignored", i+1)
			continue
		}
		res.Rules++
		if sv, ok := r["scope"]; ok {
			if _, ok := sv.(string); !ok {
				res.warnf("scope of rule '%s' is malformed, default scope is used", src)
			}
		}
		if uv, ok := r["usage_count"]; ok {
			if n, ok := toInt(uv); !ok || n < 1 {
				res.warnf("usage_count of rule '%s' is malformed, 1 is used", src)
			}
		}
	}
}

func validateOrphans(raw map[string]any, res *Validation) {
	v, ok := raw["orphans"]
	if !ok || v == nil {
		return
	}
	list, ok := v.([]any)
	if !ok {
		res.warnf("field 'orphans' is not a list and is ignored")
		return
	}
	if len(list) > 0 {
		res.warnf("%d orphan(s) of the document will not be imported", len(list))
	}
}

func nameOf(m map[string]any) (string, bool) {
	return stringOf(m, "name")
}

func stringOf(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func isStringList(v any) bool {
	if v == nil {
		return true
	}
	l, ok := v.([]any)
	if !ok {
		return false
	}
	for _, s := range l {
		if _, ok := s.(string); !ok {
			return false
		}
	}
	return true
}

// toInt accepts integers decoded from YAML and numbers decoded from JSON.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
