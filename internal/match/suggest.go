package match

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum similarity for a name to be suggested.
const DefaultThreshold = 0.6

// Normalize folds case and drops the separators API object and field
// names commonly mix ("_", "-", "." and blanks), so that
// "ZObject_update" and "zobjectUpdate" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '_', '-', '.', ' ':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// Suggest returns up to limit candidates resembling name, best first.
// Ties are broken alphabetically so the output is stable.
func Suggest(name string, candidates []string, limit int) []string {
	if limit <= 0 || name == "" {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}

	norm := Normalize(name)

	var hits []scored

	for _, c := range candidates {
		if c == name {
			continue
		}

		s := Similarity(norm, Normalize(c))
		if s >= DefaultThreshold {
			hits = append(hits, scored{name: c, score: s})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}

		return hits[i].name < hits[j].name
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}

	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}

	return out
}
