package handler

import (
	"strings"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

// SurveyResponse is the kiosk survey as posted by the frontend.
type SurveyResponse struct {
	Occasion string   `json:"occasion"`
	Style    string   `json:"style" validate:"required"`
	Budget   *float64 `json:"budget" validate:"required,gte=0"`
	// Category is one of earrings, necklace or ring when set.
	Category *string `json:"category"`
	// Vibe is free text, often a celebrity name.
	Vibe *string `json:"vibe"`
}

func (s SurveyResponse) Query() domain.Query {
	q := domain.Query{
		Occasion: s.Occasion,
		Style:    strings.TrimSpace(s.Style),
	}
	if s.Budget != nil {
		q.Budget = *s.Budget
	}
	if s.Category != nil {
		q.Category = *s.Category
	}
	if s.Vibe != nil {
		q.Vibe = *s.Vibe
	}
	return q
}

type BatchRequest struct {
	Queries []SurveyResponse `json:"queries" validate:"required,min=1,max=20,dive"`
}

// JewelryItem is the public shape of a recommended item. Design and link are
// null when the catalog has no value for them.
type JewelryItem struct {
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	Price                float64 `json:"price"`
	Style                string  `json:"style"`
	ImageURL             string  `json:"image_url"`
	CelebrityInspiration string  `json:"celebrity_inspiration"`
	Design               *string `json:"design"`
	Link                 *string `json:"link"`
}

func toJewelryItems(items []domain.Item) []JewelryItem {
	out := make([]JewelryItem, len(items))
	for i, it := range items {
		out[i] = JewelryItem{
			Name:                 it.Name,
			Category:             it.Category,
			Price:                it.Price,
			Style:                it.Style,
			ImageURL:             it.ImageURL,
			CelebrityInspiration: it.CelebrityInspiration,
			Design:               it.Design,
			Link:                 it.Link,
		}
	}
	return out
}

type BatchItemResponse struct {
	Index           int           `json:"index"`
	Recommendations []JewelryItem `json:"recommendations,omitempty"`
	Status          string        `json:"status"`
	Error           string        `json:"error,omitempty"`
	Message         string        `json:"message,omitempty"`
}

type BatchResponse struct {
	Results     []BatchItemResponse `json:"results"`
	Summary     domain.BatchSummary `json:"summary"`
	GeneratedAt string              `json:"generated_at"`
}

type SpeakResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
	Status   string `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status         string `json:"status"`
	CatalogItems   int    `json:"catalog_items"`
	CatalogVersion string `json:"catalog_version,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
