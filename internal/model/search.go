package model

import "strings"

// SearchResult is one symbol/name candidate returned by a backend search
type SearchResult struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// FilterResults narrows backend candidates to those whose symbol or name
// contains query as a case-insensitive substring, preserving backend order
// and keeping at most limit entries. The backend already matches on its
// side, so this is a client-side guard against overly loose responses.
func FilterResults(results []SearchResult, query string, limit int) []SearchResult {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" || limit <= 0 {
		return nil
	}

	filtered := make([]SearchResult, 0, limit)
	for _, r := range results {
		if !strings.Contains(strings.ToLower(r.Symbol), needle) &&
			!strings.Contains(strings.ToLower(r.Name), needle) {
			continue
		}
		filtered = append(filtered, r)
		if len(filtered) == limit {
			break
		}
	}
	return filtered
}
