package model

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

func TestRank_StableDescending(t *testing.T) {
	in := []domain.Candidate{
		{Item: domain.Item{Name: "a"}, Score: 1},
		{Item: domain.Item{Name: "b"}, Score: 2},
		{Item: domain.Item{Name: "c"}, Score: 1},
		{Item: domain.Item{Name: "d"}, Score: 2},
	}

	got := Rank(in)
	want := []string{"b", "d", "a", "c"}
	for i, c := range got {
		if c.Item.Name != want[i] {
			t.Fatalf("rank order = %v, want %v", candidateNames(got), want)
		}
	}
	if in[0].Item.Name != "a" {
		t.Error("Rank must not reorder its input")
	}
}

func TestPool(t *testing.T) {
	for _, n := range []int{0, 3, 4, 20, 21, 50} {
		cands := make([]domain.Candidate, n)
		got := len(Pool(cands))
		want := n
		if n > PoolSize {
			want = PoolSize
		}
		if got != want {
			t.Errorf("Pool(%d) size = %d, want %d", n, got, want)
		}
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	client := NewClient(nil, 1)

	items, _, err := client.Recommend(nil, domain.Query{Style: "modern", Budget: 100})
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
	if items != nil {
		t.Errorf("expected no items, got %v", items)
	}
}

func TestRecommend_SmallCandidateSetReturnedWhole(t *testing.T) {
	client := NewClient(nil, 1)
	catalog := []domain.Item{
		item("a", "ring", "modern", 100),
		item("b", "ring", "modern", 200),
		item("c", "ring", "bold", 50),
	}

	items, ranking, err := client.Recommend(catalog, domain.Query{Style: "modern", Budget: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// b is closer to budget than a
	if want := []string{"b", "a"}; !equalStrings(names(items), want) {
		t.Errorf("got %v, want %v", names(items), want)
	}
	if ranking.Fallback {
		t.Error("did not expect fallback")
	}
}

func TestRecommend_FallbackWithinBudget(t *testing.T) {
	client := NewClient(nil, 7)
	catalog := []domain.Item{
		item("a", "ring", "classic", 100),
		item("b", "ring", "bold", 200),
		item("c", "ring", "minimal", 300),
		item("d", "ring", "classic", 5000),
		item("e", "ring", "bold", 9000),
	}

	items, ranking, err := client.Recommend(catalog, domain.Query{Style: "modern", Budget: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ranking.Fallback || ranking.Candidates != 3 {
		t.Errorf("expected fallback with 3 candidates, got %+v", ranking)
	}
	if len(items) > ResultSize {
		t.Fatalf("got %d items, want at most %d", len(items), ResultSize)
	}
	for _, it := range items {
		if it.Price > 1000 {
			t.Errorf("%s exceeds budget: %v", it.Name, it.Price)
		}
	}
}

func TestRecommend_SamplesFromTopPool(t *testing.T) {
	client := NewClient(nil, 42)

	// distinct prices give distinct descending scores by budget closeness
	catalog := make([]domain.Item, 50)
	for i := range catalog {
		catalog[i] = item(fmt.Sprintf("item-%02d", i), "ring", "modern", float64(1000-i*10))
	}
	q := domain.Query{Style: "modern", Budget: 1000}

	top := make(map[string]bool)
	for i := 0; i < PoolSize; i++ {
		top[catalog[i].Name] = true
	}

	for run := 0; run < 200; run++ {
		items, ranking, err := client.Recommend(catalog, q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(ranking.Pool) != PoolSize {
			t.Fatalf("pool size = %d, want %d", len(ranking.Pool), PoolSize)
		}
		if len(items) != ResultSize {
			t.Fatalf("got %d items, want %d", len(items), ResultSize)
		}
		seen := make(map[string]bool)
		for _, it := range items {
			if !top[it.Name] {
				t.Fatalf("%s is outside the top %d", it.Name, PoolSize)
			}
			if seen[it.Name] {
				t.Fatalf("duplicate pick %s", it.Name)
			}
			seen[it.Name] = true
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	catalog := make([]domain.Item, 30)
	for i := range catalog {
		style := "modern"
		if i%3 == 0 {
			style = "bold"
		}
		catalog[i] = item(fmt.Sprintf("item-%02d", i), "ring", style, float64(100+i*7%40))
	}
	q := domain.Query{Style: "modern", Budget: 300, Vibe: "priyanka"}

	first, err := NewClient(nil, 1).Rank(catalog, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewClient(nil, 2).Rank(catalog, q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("ranking differs between runs with the same input")
	}
}

func candidateNames(cands []domain.Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Item.Name
	}
	return out
}
