package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

const (
	DefaultPlaceholderImage = "https://via.placeholder.com/400x400?text=Jewelry+Image"

	defaultStyle     = "General"
	defaultCelebrity = "-"
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// Normalize turns a header row plus data rows into catalog items. Rows with a
// missing, unparsable or negative price are dropped and counted in skipped.
func Normalize(rows [][]string, placeholder string) (items []domain.Item, skipped int, err error) {
	if len(rows) == 0 {
		return nil, 0, fmt.Errorf("%w: no header row", domain.ErrMissingColumns)
	}
	if placeholder == "" {
		placeholder = DefaultPlaceholderImage
	}

	cols, err := resolveColumns(rows[0])
	if err != nil {
		return nil, 0, err
	}

	items = make([]domain.Item, 0, len(rows)-1)
	for _, row := range rows[1:] {
		price, ok := parsePrice(cell(row, cols.price))
		if !ok {
			skipped++
			continue
		}

		it := domain.Item{
			Name:                 cell(row, cols.name),
			Category:             cell(row, cols.category),
			Price:                price,
			Style:                styleOf(row, cols),
			CelebrityInspiration: defaultCelebrity,
			Design:               optionalCell(row, cols.design),
			Link:                 optionalCell(row, cols.link),
		}
		if cols.celebrity >= 0 {
			it.CelebrityInspiration = cell(row, cols.celebrity)
		}
		it.ImageURL = imageOf(cleanImage(cell(row, cols.image)), it.Link, placeholder)

		items = append(items, it)
	}
	return items, skipped, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func optionalCell(row []string, idx int) *string {
	v := cell(row, idx)
	if v == "" {
		return nil
	}
	return &v
}

func parsePrice(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	p, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0, false
	}
	return p, true
}

func styleOf(row []string, cols columns) string {
	switch {
	case cols.style >= 0:
		return cell(row, cols.style)
	case cols.styleSource >= 0:
		if s := cell(row, cols.styleSource); s != "" {
			return s
		}
	}
	return defaultStyle
}

func cleanImage(url string) string {
	if strings.Contains(strings.ToLower(url), "unknown") {
		return ""
	}
	return url
}

func isImageURL(url string) bool {
	u := domain.Normalize(url)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(u, ext) {
			return true
		}
	}
	return false
}

// imageOf prefers the sheet's image, then a link that points straight at an
// image, then the placeholder.
func imageOf(image string, link *string, placeholder string) string {
	if image != "" {
		return image
	}
	if link != nil && isImageURL(*link) {
		return *link
	}
	return placeholder
}
