package model

import (
	"sort"
	"strings"
)

// SortByUpdatedDesc orders prizes most recently touched first.
func SortByUpdatedDesc(prizes []Prize) {
	sort.SliceStable(prizes, func(i, j int) bool {
		return prizes[i].UpdatedAt > prizes[j].UpdatedAt
	})
}

// Filter returns prizes whose name or note contains query (case-insensitive)
// and, when category is non-empty, whose category matches exactly.
// Order of the input is preserved.
func Filter(prizes []Prize, query string, category Category) []Prize {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Prize, 0, len(prizes))
	for _, p := range prizes {
		if category != "" && p.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.NoteText()), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
