package service

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/actuallystonmai/stylist-kiosk/internal/catalog"
	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
	"github.com/actuallystonmai/stylist-kiosk/internal/model"
	"github.com/actuallystonmai/stylist-kiosk/seeds"
)

type stubLoader struct {
	items []domain.Item
	err   error
	calls int
}

func (l *stubLoader) Load(context.Context) (*catalog.Catalog, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return catalog.New(l.items, "stub", 0), nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]model.Ranking
	sets    int
	cleared []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]model.Ranking)}
}

func (c *memoryCache) key(version string, q domain.Query) string {
	return version + "|" + domain.Normalize(q.Style) + "|" + domain.Normalize(q.Category) + "|" + domain.Normalize(q.Vibe)
}

func (c *memoryCache) Get(_ context.Context, version string, q domain.Query) (model.Ranking, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[c.key(version, q)]
	return r, ok, nil
}

func (c *memoryCache) Set(_ context.Context, version string, q domain.Query, r model.Ranking) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[c.key(version, q)] = r
	return nil
}

func (c *memoryCache) ClearVersion(_ context.Context, version string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared = append(c.cleared, version)
	return nil
}

type stubStore struct {
	items []domain.Item
	err   error
}

func (s *stubStore) ReplaceItems(_ context.Context, items []domain.Item) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.items = items
	return len(items), nil
}

func demoItems(n int) []domain.Item {
	return seeds.Catalog(rand.New(rand.NewSource(1)), n)
}

func TestRecommend_NoCatalog(t *testing.T) {
	svc := NewService(&stubLoader{}, model.NewClient(nil, 1), nil, nil)

	_, err := svc.Recommend(context.Background(), domain.Query{Style: "modern", Budget: 1000})
	if !errors.Is(err, domain.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestRecommend_WithinBudget(t *testing.T) {
	svc := NewService(&stubLoader{items: demoItems(200)}, model.NewClient(nil, 1), nil, nil)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	q := domain.Query{Style: "modern", Budget: 20000}
	for i := 0; i < 20; i++ {
		res, err := svc.Recommend(context.Background(), q)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Items) > model.ResultSize {
			t.Fatalf("got %d items", len(res.Items))
		}
		for _, it := range res.Items {
			if it.Price > q.Budget {
				t.Errorf("%s over budget: %v", it.Name, it.Price)
			}
		}
	}
}

func TestRecommend_UsesPoolCache(t *testing.T) {
	cache := newMemoryCache()
	svc := NewService(&stubLoader{items: demoItems(100)}, model.NewClient(nil, 1), cache, nil)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	q := domain.Query{Style: "bold", Budget: 50000, Vibe: "priyanka"}

	first, err := svc.Recommend(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.CacheHit {
		t.Error("first call should miss the cache")
	}

	second, err := svc.Recommend(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second call should hit the cache")
	}
	if second.Pool != first.Pool {
		t.Errorf("pool size changed between calls: %d vs %d", first.Pool, second.Pool)
	}
	if cache.sets != 1 {
		t.Errorf("expected 1 cache write, got %d", cache.sets)
	}
}

func TestRecommendBatch(t *testing.T) {
	svc := NewService(&stubLoader{items: demoItems(60)}, model.NewClient(nil, 1), nil, nil)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	queries := []domain.Query{
		{Style: "modern", Budget: 30000},
		{Style: "classic", Budget: 80000, Category: "ring"},
		{Style: "glam", Budget: 0},
	}
	resp, err := svc.RecommendBatch(context.Background(), queries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != len(queries) {
		t.Fatalf("expected %d results, got %d", len(queries), len(resp.Results))
	}
	for i, r := range resp.Results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
	}
	if resp.Summary.SuccessCount != 3 || resp.Summary.FailedCount != 0 {
		t.Errorf("unexpected summary %+v", resp.Summary)
	}

	if _, err := svc.RecommendBatch(context.Background(), nil); err == nil {
		t.Error("expected error for empty batch")
	}
	if _, err := svc.RecommendBatch(context.Background(), make([]domain.Query, MaxBatchSize+1)); err == nil {
		t.Error("expected error for oversized batch")
	}
}

func TestRecommendBatch_ReportsFailures(t *testing.T) {
	svc := NewService(&stubLoader{}, model.NewClient(nil, 1), nil, nil)

	resp, err := svc.RecommendBatch(context.Background(), []domain.Query{{Style: "modern", Budget: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resp.Results[0]
	if r.Status != domain.StatusFailed || r.Error != "catalog_unavailable" {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestRefresh(t *testing.T) {
	loader := &stubLoader{items: demoItems(10)}
	store := &stubStore{}
	cache := newMemoryCache()
	svc := NewService(loader, model.NewClient(nil, 1), cache, store)

	res, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.RefreshOK || res.Count != 10 || !res.Mirrored {
		t.Errorf("unexpected refresh result %+v", res)
	}
	if len(store.items) != 10 {
		t.Errorf("store received %d items, want 10", len(store.items))
	}

	oldVersion := svc.Catalog().Version()
	loader.items = demoItems(12)
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cache.cleared) != 1 || cache.cleared[0] != oldVersion {
		t.Errorf("expected old version %s to be cleared, got %v", oldVersion, cache.cleared)
	}
}

func TestRefresh_NoData(t *testing.T) {
	store := &stubStore{}
	svc := NewService(&stubLoader{}, model.NewClient(nil, 1), nil, store)

	res, err := svc.Refresh(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != domain.RefreshNoData || res.Mirrored {
		t.Errorf("unexpected refresh result %+v", res)
	}
}

func TestRefresh_LoadFailureKeepsCatalog(t *testing.T) {
	loader := &stubLoader{items: demoItems(5)}
	svc := NewService(loader, model.NewClient(nil, 1), nil, nil)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	loader.err = domain.ErrNoCatalogFile
	_, err := svc.Refresh(context.Background())
	if !errors.Is(err, domain.ErrNoCatalogFile) {
		t.Fatalf("expected ErrNoCatalogFile, got %v", err)
	}
	if svc.Catalog().Len() != 5 {
		t.Errorf("previous catalog should stay active, have %d items", svc.Catalog().Len())
	}
}

func TestRefresh_StoreError(t *testing.T) {
	svc := NewService(&stubLoader{items: demoItems(3)}, model.NewClient(nil, 1), nil, &stubStore{err: errors.New("db down")})

	if _, err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected mirror error")
	}
}
