// Package resolve turns free-text country names into ISO3 codes.
//
// Resolution is exact first (normalized name or alias), then fuzzy over the
// same reference list. Resolvers never fail: an unresolvable name yields
// ("", false).
package resolve

import (
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// candidate is one searchable spelling of a country.
type candidate struct {
	key  string // normalized spelling
	iso3 string
}

// candidates implements fuzzy.Source.
type candidates []candidate

func (c candidates) Len() int            { return len(c) }
func (c candidates) String(i int) string { return c[i].key }

// FuzzyResolver matches names against a reference country list.
type FuzzyResolver struct {
	exact   map[string]string
	targets candidates
}

// NewFuzzyResolver builds a resolver over the given countries.
func NewFuzzyResolver(countries []Country) *FuzzyResolver {
	r := &FuzzyResolver{exact: make(map[string]string)}
	for _, c := range countries {
		iso3 := strings.ToUpper(c.ISO3)
		for _, spelling := range append([]string{c.Name}, c.Aliases...) {
			key := Normalize(spelling)
			if key == "" {
				continue
			}
			if _, dup := r.exact[key]; dup {
				continue
			}
			r.exact[key] = iso3
			r.targets = append(r.targets, candidate{key: key, iso3: iso3})
		}
	}
	return r
}

// Resolve implements core.CountryResolver.
func (r *FuzzyResolver) Resolve(name string) (string, bool) {
	variants := Variants(name)
	if len(variants) == 0 {
		return "", false
	}

	if iso3, ok := r.exact[variants[0]]; ok {
		return iso3, true
	}
	for _, v := range variants[1:] {
		if iso3, ok := r.exact[v]; ok {
			return iso3, false
		}
	}

	best, found := fuzzy.Match{}, false
	for _, v := range variants {
		for _, m := range fuzzy.FindFrom(v, r.targets) {
			// Reject targets far longer than the query; a subsequence match
			// against a long name is almost always coincidental.
			if len(v)*2 < len(m.Str) {
				continue
			}
			if !found || r.better(m, best) {
				best, found = m, true
			}
		}
	}
	if !found {
		return "", false
	}
	return r.targets[best.Index].iso3, false
}

// better orders matches by score, then shorter target, then ISO3.
func (r *FuzzyResolver) better(a, b fuzzy.Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if len(a.Str) != len(b.Str) {
		return len(a.Str) < len(b.Str)
	}
	return r.targets[a.Index].iso3 < r.targets[b.Index].iso3
}

// Variants returns the normalized forms tried for a name, most specific
// first: the full name, the name without parenthetical qualifiers, and the
// part before the first comma. Duplicates and empties are removed.
func Variants(name string) []string {
	forms := []string{name}
	if i := strings.Index(name, "("); i > 0 {
		forms = append(forms, name[:i])
	}
	if i := strings.Index(name, ","); i > 0 {
		forms = append(forms, name[:i])
	}

	seen := make(map[string]bool, len(forms))
	out := make([]string, 0, len(forms))
	for _, f := range forms {
		n := Normalize(f)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases a name, strips accents, and reduces punctuation to
// single spaces: "Côte d'Ivoire" → "cote d ivoire".
func Normalize(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	return b.String()
}

// Known returns the sorted ISO3 codes the resolver can produce.
func (r *FuzzyResolver) Known() []string {
	seen := make(map[string]bool)
	for _, iso3 := range r.exact {
		seen[iso3] = true
	}
	out := make([]string, 0, len(seen))
	for iso3 := range seen {
		out = append(out, iso3)
	}
	sort.Strings(out)
	return out
}
