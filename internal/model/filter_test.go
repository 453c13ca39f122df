package model

import (
	"errors"
	"math"
	"testing"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

func item(name, category, style string, price float64) domain.Item {
	return domain.Item{
		Name:     name,
		Category: category,
		Style:    style,
		Price:    price,
		ImageURL: "https://img.example/" + name + ".jpg",
	}
}

func names(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func TestFilter_EmptyCatalog(t *testing.T) {
	_, _, err := Filter(nil, domain.Query{Style: "modern", Budget: 1000})
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestFilter_StyleAndBudget(t *testing.T) {
	items := []domain.Item{
		item("a", "ring", "Modern ", 500),
		item("b", "ring", "bold", 400),
		item("c", "necklace", "modern", 2000),
		item("d", "earrings", "MODERN", 1000),
	}

	got, fallback, err := Filter(items, domain.Query{Style: " modern", Budget: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fallback {
		t.Error("fallback should not be used when style matches")
	}
	if want := []string{"a", "d"}; !equalStrings(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestFilter_BudgetFallback(t *testing.T) {
	items := []domain.Item{
		item("a", "ring", "classic", 100),
		item("b", "ring", "bold", 200),
		item("c", "ring", "minimal", 300),
		item("d", "ring", "classic", 5000),
		item("e", "ring", "bold", 9000),
	}

	got, fallback, err := Filter(items, domain.Query{Style: "modern", Budget: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fallback {
		t.Error("expected fallback to be used")
	}
	if want := []string{"a", "b", "c"}; !equalStrings(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestFilter_Category(t *testing.T) {
	items := []domain.Item{
		item("a", "Ring", "modern", 100),
		item("b", " necklace ", "modern", 100),
		item("c", "earrings", "modern", 100),
	}

	got, _, err := Filter(items, domain.Query{Style: "modern", Budget: 1000, Category: "NECKLACE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"b"}; !equalStrings(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestFilter_CategoryWithoutMatchIsNotFatal(t *testing.T) {
	items := []domain.Item{item("a", "ring", "modern", 100)}

	got, fallback, err := Filter(items, domain.Query{Style: "modern", Budget: 1000, Category: "bracelet"})
	if err != nil {
		t.Fatalf("category miss should not fail, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %v", names(got))
	}
	if !fallback {
		t.Error("expected fallback flag when nothing matched")
	}
}

func TestFilter_SkipsUnusablePrices(t *testing.T) {
	items := []domain.Item{
		item("nan", "ring", "modern", math.NaN()),
		item("neg", "ring", "modern", -5),
		item("inf", "ring", "modern", math.Inf(1)),
		item("ok", "ring", "modern", 10),
	}

	got, _, err := Filter(items, domain.Query{Style: "modern", Budget: math.Inf(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"ok"}; !equalStrings(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
