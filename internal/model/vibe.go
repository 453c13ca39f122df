package model

import (
	"strings"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

// VibeRule maps a lowercase keyword to the style tags it hints at.
type VibeRule struct {
	Keyword string
	Styles  []string
}

// VibeTable is an ordered set of rules. It is never mutated after construction.
type VibeTable []VibeRule

// DefaultVibeTable covers the common vibes and celebrity references kiosk
// users type in.
var DefaultVibeTable = VibeTable{
	{Keyword: "classic", Styles: []string{"traditional", "minimal"}},
	{Keyword: "glam", Styles: []string{"bold", "modern"}},
	{Keyword: "boho", Styles: []string{"modern"}},
	{Keyword: "minimal", Styles: []string{"minimal"}},
	{Keyword: "bold", Styles: []string{"bold"}},
	{Keyword: "deepika", Styles: []string{"classic", "traditional", "glam"}},
	{Keyword: "alia", Styles: []string{"modern", "minimal"}},
	{Keyword: "priyanka", Styles: []string{"bold", "glam"}},
}

// Resolve returns the style tags for every keyword contained in vibe.
// Matching is by substring, so "deepika padukone vibes" hits "deepika".
func (t VibeTable) Resolve(vibe string) []string {
	v := domain.Normalize(vibe)
	if v == "" {
		return nil
	}

	var styles []string
	for _, rule := range t {
		kw := domain.Normalize(rule.Keyword)
		if kw == "" || !strings.Contains(v, kw) {
			continue
		}
		for _, s := range rule.Styles {
			styles = append(styles, domain.Normalize(s))
		}
	}
	return styles
}
