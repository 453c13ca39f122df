package catalog

import (
	"fmt"
	"strings"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

const (
	colName      = "Name"
	colCategory  = "Category"
	colPrice     = "Price"
	colStyle     = "Style"
	colImageURL  = "Image URL"
	colCelebrity = "Celebrity Inspiration"
)

// columnAliases lists the header spellings accepted for each field, already
// normalized. The canonical header is always checked first.
var columnAliases = map[string][]string{
	colName:      {"name", "product name", "title", "item name"},
	colCategory:  {"category", "type", "jewelry type", "jewel type"},
	colPrice:     {"price", "mrp", "cost", "amount", "sale price"},
	colStyle:     {"style", "design style"},
	colImageURL:  {"image url", "image", "imageurl", "image link", "image_url"},
	colCelebrity: {"celebrity inspiration", "inspired by", "celebrity", "inspiration"},
}

var (
	designHeaders      = []string{"Design", "Jewel Design", "Jewelry Design", "Design Description", "Design Name"}
	linkHeaders        = []string{"Link", "URL", "Product Link", "Product URL", "Buy Link", "Purchase Link"}
	styleSourceHeaders = []string{"collection name", "collection", "theme"}
)

// columns holds the index of each field in a row, or -1 when absent.
type columns struct {
	name, category, price, style, image, celebrity int
	design, link                                   int
	// styleSource is used when there is no style column.
	styleSource int
}

func resolveColumns(header []string) (columns, error) {
	exact := make(map[string]int, len(header))
	lookup := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		if _, ok := exact[h]; !ok {
			exact[h] = i
		}
		key := domain.Normalize(h)
		if _, ok := lookup[key]; !ok && key != "" {
			lookup[key] = i
		}
	}

	find := func(target string) int {
		if i, ok := exact[target]; ok {
			return i
		}
		for _, alias := range columnAliases[target] {
			if i, ok := lookup[alias]; ok {
				return i
			}
		}
		return -1
	}
	first := func(candidates []string) int {
		for _, c := range candidates {
			if i, ok := lookup[domain.Normalize(c)]; ok {
				return i
			}
		}
		return -1
	}

	cols := columns{
		name:        find(colName),
		category:    find(colCategory),
		price:       find(colPrice),
		style:       find(colStyle),
		image:       find(colImageURL),
		celebrity:   find(colCelebrity),
		design:      first(designHeaders),
		link:        first(linkHeaders),
		styleSource: -1,
	}
	if cols.style < 0 {
		cols.styleSource = first(styleSourceHeaders)
	}

	var missing []string
	if cols.name < 0 {
		missing = append(missing, colName)
	}
	if cols.category < 0 {
		missing = append(missing, colCategory)
	}
	if cols.price < 0 {
		missing = append(missing, colPrice)
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", domain.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return cols, nil
}
