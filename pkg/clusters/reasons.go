package clusters

import (
	"strings"
	"unicode/utf8"

	"github.com/gnames/gntag/pkg/similarity"
)

// Reasons given by the default rules.
const (
	ReasonCase       = "case-only difference"
	ReasonAccent     = "accent-only difference"
	ReasonSynonym    = "synonym"
	ReasonPlural     = "pluralization"
	ReasonAcronym    = "acronym"
	ReasonLanguage   = "cross-language equivalent"
	ReasonTypo       = "typo"
	ReasonSimilarity = "similarity match"
)

// Subject is a name with its known synonyms.
type Subject struct {
	Name     string
	Synonyms []string
}

// Classifier explains to a reviewer why a candidate looks like a duplicate
// of the master. The explanation is advisory.
type Classifier interface {
	Reason(master, candidate Subject) string
}

// Rule is a named predicate of the RuleChain.
type Rule struct {
	Reason string
	Match  func(master, candidate Subject) bool
}

// RuleChain applies rules in order, the first matching rule gives the
// reason. When nothing matches the reason is ReasonSimilarity.
type RuleChain []Rule

// Reason implements Classifier.
func (rc RuleChain) Reason(master, candidate Subject) string {
	for _, r := range rc {
		if r.Match(master, candidate) {
			return r.Reason
		}
	}
	return ReasonSimilarity
}

// DefaultRules returns rules for Portuguese, English and Spanish names.
func DefaultRules() RuleChain {
	return RuleChain{
		{Reason: ReasonCase, Match: caseOnly},
		{Reason: ReasonAccent, Match: accentOnly},
		{Reason: ReasonSynonym, Match: synonym},
		{Reason: ReasonPlural, Match: plural},
		{Reason: ReasonAcronym, Match: acronym},
		{Reason: ReasonLanguage, Match: crossLanguage},
		{Reason: ReasonTypo, Match: typo},
	}
}

func caseOnly(m, c Subject) bool {
	return m.Name != c.Name &&
		similarity.Normalize(m.Name) == similarity.Normalize(c.Name)
}

func accentOnly(m, c Subject) bool {
	return similarity.Normalize(m.Name) != similarity.Normalize(c.Name) &&
		similarity.Fold(m.Name) == similarity.Fold(c.Name)
}

func synonym(m, c Subject) bool {
	has := func(syns []string, name string) bool {
		name = similarity.Fold(name)
		for _, s := range syns {
			if similarity.Fold(s) == name {
				return true
			}
		}
		return false
	}
	return has(m.Synonyms, c.Name) || has(c.Synonyms, m.Name)
}

// pluralSuffixes map folded plural endings to singular endings.
var pluralSuffixes = [][2]string{
	{"oes", "ao"},
	{"aes", "ao"},
	{"ais", "al"},
	{"eis", "el"},
	{"ois", "ol"},
	{"uis", "ul"},
	{"ns", "m"},
	{"es", ""},
	{"s", ""},
}

func singulars(s string) []string {
	res := []string{s}
	for _, v := range pluralSuffixes {
		stem, ok := strings.CutSuffix(s, v[0])
		if !ok || len(stem) < 2 {
			continue
		}
		res = append(res, stem+v[1])
	}
	return res
}

func plural(m, c Subject) bool {
	fm, fc := similarity.Fold(m.Name), similarity.Fold(c.Name)
	if fm == fc {
		return false
	}
	for _, a := range singulars(fm) {
		for _, b := range singulars(fc) {
			if a == b {
				return true
			}
		}
	}
	return false
}

var stopWords = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {}, "e": {},
	"del": {}, "la": {}, "el": {}, "y": {},
	"of": {}, "the": {}, "and": {}, "for": {},
}

func initials(words []string, skipStop bool) string {
	var sb strings.Builder
	for _, w := range words {
		if _, ok := stopWords[w]; ok && skipStop {
			continue
		}
		r, _ := utf8.DecodeRuneInString(w)
		sb.WriteRune(r)
	}
	return sb.String()
}

func acronym(m, c Subject) bool {
	check := func(short, long string) bool {
		sw := strings.Fields(similarity.Fold(short))
		lw := strings.Fields(similarity.Fold(long))
		if len(sw) != 1 || len(lw) < 2 || len(sw[0]) < 2 {
			return false
		}
		return sw[0] == initials(lw, true) || sw[0] == initials(lw, false)
	}
	return check(m.Name, c.Name) || check(c.Name, m.Name)
}

// glossary groups equivalent terms of different languages, folded.
var glossary = [][]string{
	{"saude", "health", "salud"},
	{"educacao", "education", "educacion"},
	{"seguranca", "security", "safety", "seguridad"},
	{"economia", "economy", "economics"},
	{"meio ambiente", "environment", "medio ambiente"},
	{"cultura", "culture"},
	{"esporte", "esportes", "sport", "sports", "deporte", "deportes"},
	{"transporte", "transport", "transportation"},
	{"politica", "politics", "policy"},
	{"tecnologia", "technology"},
	{"ciencia", "science"},
	{"habitacao", "housing", "vivienda"},
	{"trabalho", "work", "labor", "trabajo", "emprego", "employment", "empleo"},
	{"justica", "justice", "justicia"},
	{"agricultura", "agriculture"},
	{"turismo", "tourism"},
	{"inteligencia artificial", "artificial intelligence"},
}

var glossaryIndex = func() map[string]int {
	res := make(map[string]int)
	for i, terms := range glossary {
		for _, t := range terms {
			res[t] = i
		}
	}
	return res
}()

func crossLanguage(m, c Subject) bool {
	gm, okm := glossaryIndex[similarity.Fold(m.Name)]
	gc, okc := glossaryIndex[similarity.Fold(c.Name)]
	return okm && okc && gm == gc
}

func typo(m, c Subject) bool {
	return similarity.Distance(m.Name, c.Name) <= 2
}
