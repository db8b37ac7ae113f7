package catalog

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Filter returns the ids containing query as a case-insensitive substring,
// in catalog order. An empty query matches everything.
func Filter(ids []string, query string) []string {
	out := make([]string, 0, len(ids))
	if query == "" {
		return append(out, ids...)
	}

	q := strings.ToLower(query)
	for _, id := range ids {
		if strings.Contains(strings.ToLower(id), q) {
			out = append(out, id)
		}
	}
	return out
}

// maxSuggestDistance caps how far a suggestion may be from the query.
// Shorter queries get a tighter bound, one edit per three runes.
const maxSuggestDistance = 3

// Suggest returns the id closest to query by edit distance, for use as a
// hint when Filter comes back empty. Ties keep catalog order.
func Suggest(ids []string, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	qr := []rune(q)
	limit := len(qr) / 3
	if limit < 1 {
		limit = 1
	}
	if limit > maxSuggestDistance {
		limit = maxSuggestDistance
	}

	best, bestDist := "", limit+1
	for _, id := range ids {
		lower := strings.ToLower(id)
		d := levenshtein.ComputeDistance(q, lower)
		// Compare against a prefix too so short queries still find long ids
		if r := []rune(lower); len(r) > len(qr) {
			if pd := levenshtein.ComputeDistance(q, string(r[:len(qr)])); pd < d {
				d = pd
			}
		}
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
