package domain

import "math"

// Item is one sellable piece from the catalog. String fields are trimmed and
// Price is a non-negative number once the catalog loader has produced it.
type Item struct {
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	Price                float64 `json:"price"`
	Style                string  `json:"style"`
	ImageURL             string  `json:"image_url"`
	CelebrityInspiration string  `json:"celebrity_inspiration"`
	Design               *string `json:"design"`
	Link                 *string `json:"link"`
}

// HasUsablePrice reports whether the price can take part in budget comparisons.
func (i Item) HasUsablePrice() bool {
	return !math.IsNaN(i.Price) && !math.IsInf(i.Price, 0) && i.Price >= 0
}

// Candidate is an item that survived filtering, annotated with its score.
type Candidate struct {
	Item  Item    `json:"item"`
	Score float64 `json:"score"`
}
