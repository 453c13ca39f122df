package domain

import "strings"

// Query holds the kiosk survey answers for one recommendation request.
type Query struct {
	// Occasion is collected by the survey but does not influence ranking.
	Occasion string
	Style    string
	Budget   float64
	Category string
	Vibe     string
}

// HasCategory reports whether the category filter applies.
func (q Query) HasCategory() bool {
	return Normalize(q.Category) != ""
}

// Normalize lowercases and trims s for case-insensitive comparisons.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
