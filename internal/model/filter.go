package model

import "github.com/actuallystonmai/stylist-kiosk/internal/domain"

// Filter narrows items down to the candidates for q. The category filter runs
// first and may leave nothing behind. Style and budget come next; if no item
// matches both, every remaining item within budget is kept instead and
// fallback is true. Items whose price cannot be compared are skipped.
func Filter(items []domain.Item, q domain.Query) (candidates []domain.Item, fallback bool, err error) {
	if len(items) == 0 {
		return nil, false, domain.ErrCatalogUnavailable
	}

	scoped := items
	if q.HasCategory() {
		category := domain.Normalize(q.Category)
		scoped = make([]domain.Item, 0, len(items))
		for _, it := range items {
			if domain.Normalize(it.Category) == category {
				scoped = append(scoped, it)
			}
		}
	}

	style := domain.Normalize(q.Style)
	for _, it := range scoped {
		if withinBudget(it, q.Budget) && domain.Normalize(it.Style) == style {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) > 0 {
		return candidates, false, nil
	}

	for _, it := range scoped {
		if withinBudget(it, q.Budget) {
			candidates = append(candidates, it)
		}
	}
	return candidates, true, nil
}

func withinBudget(it domain.Item, budget float64) bool {
	return it.HasUsablePrice() && it.Price <= budget
}
