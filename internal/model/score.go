package model

import (
	"math"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

const (
	styleMatchBonus = 2.0
	vibeMatchBonus  = 1.0
)

// Score rates how well item fits q. Each bonus defaults to zero when the
// field it needs is missing or unusable, so the result is never negative.
func Score(item domain.Item, q domain.Query, vibeStyles []string) float64 {
	return styleBonus(item, q) + vibeBonus(item, vibeStyles) + budgetBonus(item, q.Budget)
}

func styleBonus(item domain.Item, q domain.Query) float64 {
	style := domain.Normalize(item.Style)
	if style == "" || style != domain.Normalize(q.Style) {
		return 0
	}
	return styleMatchBonus
}

func vibeBonus(item domain.Item, vibeStyles []string) float64 {
	if len(vibeStyles) == 0 {
		return 0
	}
	style := domain.Normalize(item.Style)
	if style == "" {
		return 0
	}
	for _, s := range vibeStyles {
		if s == style {
			return vibeMatchBonus
		}
	}
	return 0
}

// budgetBonus rewards prices close to the budget without going over. The
// denominator is floored at 1 so tiny budgets do not blow up.
func budgetBonus(item domain.Item, budget float64) float64 {
	if !item.HasUsablePrice() || math.IsNaN(budget) || item.Price > budget {
		return 0
	}
	return math.Max(0, 1-(budget-item.Price)/math.Max(budget, 1))
}
