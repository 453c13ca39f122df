package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/stylist-kiosk/internal/catalog"
	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
	"github.com/actuallystonmai/stylist-kiosk/internal/logging"
	"github.com/actuallystonmai/stylist-kiosk/internal/metrics"
	"github.com/actuallystonmai/stylist-kiosk/internal/model"
)

const (
	MaxBatchSize     = 20
	batchConcurrency = 4
)

// PoolCache caches ranked pools per catalog version and query.
type PoolCache interface {
	Get(ctx context.Context, version string, q domain.Query) (model.Ranking, bool, error)
	Set(ctx context.Context, version string, q domain.Query, ranking model.Ranking) error
	ClearVersion(ctx context.Context, version string) error
}

// ItemStore mirrors the active catalog somewhere durable.
type ItemStore interface {
	ReplaceItems(ctx context.Context, items []domain.Item) (int, error)
}

type Service struct {
	loader      catalog.Loader
	modelClient *model.Client
	cache       PoolCache
	store       ItemStore

	current atomic.Pointer[catalog.Catalog]
	log     zerolog.Logger
}

// NewService wires the recommendation service. cache and store are optional
// and may be nil.
func NewService(loader catalog.Loader, modelClient *model.Client, cache PoolCache, store ItemStore) *Service {
	return &Service{
		loader:      loader,
		modelClient: modelClient,
		cache:       cache,
		store:       store,
		log:         logging.With("service"),
	}
}

// Catalog returns the active catalog snapshot, or nil before the first load.
func (s *Service) Catalog() *catalog.Catalog {
	return s.current.Load()
}

// SetCatalog makes c the active catalog and returns the previous one.
func (s *Service) SetCatalog(c *catalog.Catalog) *catalog.Catalog {
	prev := s.current.Swap(c)
	metrics.CatalogItems.Set(float64(c.Len()))
	metrics.CatalogSkippedRows.Set(float64(c.Skipped()))
	return prev
}

// Load reads the catalog from the loader and activates it.
func (s *Service) Load(ctx context.Context) (*catalog.Catalog, error) {
	if s.loader == nil {
		return nil, errors.New("no catalog loader configured")
	}
	cat, err := s.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	prev := s.SetCatalog(cat)
	s.log.Info().
		Str("source", cat.Source()).
		Str("version", cat.Version()).
		Int("items", cat.Len()).
		Int("skipped_rows", cat.Skipped()).
		Msg("catalog loaded")

	if s.cache != nil && prev != nil && prev.Version() != cat.Version() {
		if err := s.cache.ClearVersion(ctx, prev.Version()); err != nil {
			s.log.Warn().Err(err).Str("version", prev.Version()).Msg("cache invalidation failed")
		}
	}
	return cat, nil
}

func (s *Service) Recommend(ctx context.Context, q domain.Query) (*domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cat := s.Catalog()
	if cat.Len() == 0 {
		metrics.RecommendationsTotal.WithLabelValues("catalog_unavailable").Inc()
		return nil, domain.ErrCatalogUnavailable
	}

	ranking, cacheHit, err := s.rank(ctx, cat, q)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			metrics.RecommendationsTotal.WithLabelValues("catalog_unavailable").Inc()
		}
		return nil, err
	}

	items := s.modelClient.Pick(ranking.Pool)

	if ranking.Fallback {
		metrics.RecommendationFallbacks.Inc()
	}
	outcome := "ok"
	if len(items) == 0 {
		outcome = "empty"
	}
	metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()

	s.log.Debug().
		Str("style", q.Style).
		Float64("budget", q.Budget).
		Str("category", q.Category).
		Int("candidates", ranking.Candidates).
		Int("pool", len(ranking.Pool)).
		Bool("fallback", ranking.Fallback).
		Bool("cache_hit", cacheHit).
		Int("returned", len(items)).
		Msg("recommendation served")

	return &domain.RecommendationResult{
		Items:    items,
		Pool:     len(ranking.Pool),
		Fallback: ranking.Fallback,
		CacheHit: cacheHit,
	}, nil
}

func (s *Service) rank(ctx context.Context, cat *catalog.Catalog, q domain.Query) (model.Ranking, bool, error) {
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, cat.Version(), q)
		if err != nil {
			s.log.Warn().Err(err).Msg("cache get error")
		}
		if found {
			metrics.PoolCacheHits.Inc()
			return cached, true, nil
		}
		metrics.PoolCacheMisses.Inc()
	}

	start := time.Now()
	ranking, err := s.modelClient.Rank(cat.Items(), q)
	metrics.RankingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return model.Ranking{}, false, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cat.Version(), q, ranking); err != nil {
			s.log.Warn().Err(err).Msg("cache set error")
		}
	}
	return ranking, false, nil
}

// RecommendBatch runs several surveys at once with bounded concurrency. A
// failing query is reported in its own result and does not fail the batch.
func (s *Service) RecommendBatch(ctx context.Context, queries []domain.Query) (*domain.BatchResponse, error) {
	if len(queries) == 0 || len(queries) > MaxBatchSize {
		return nil, fmt.Errorf("batch size must be between 1 and %d, got %d", MaxBatchSize, len(queries))
	}
	start := time.Now()

	results := make([]domain.BatchItemResult, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, q := range queries {
		g.Go(func() error {
			results[i] = s.processBatchQuery(gctx, i, q)
			return nil
		})
	}
	_ = g.Wait()

	summary := domain.BatchSummary{}
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			summary.SuccessCount++
		} else {
			summary.FailedCount++
		}
	}
	summary.ProcessingTimeMs = time.Since(start).Milliseconds()

	return &domain.BatchResponse{
		Results:     results,
		Summary:     summary,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *Service) processBatchQuery(ctx context.Context, idx int, q domain.Query) domain.BatchItemResult {
	result, err := s.Recommend(ctx, q)
	if err != nil {
		s.log.Warn().Err(err).Int("index", idx).Msg("batch query failed")
		code, msg := categorizeError(err)
		return domain.BatchItemResult{
			Index:   idx,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}
	return domain.BatchItemResult{
		Index:           idx,
		Recommendations: result.Items,
		Status:          domain.StatusSuccess,
	}
}

// Refresh reloads the catalog and mirrors it to the item store when one is
// configured. On a load failure the previous catalog stays active.
func (s *Service) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	cat, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.RefreshResult{
		Status:   domain.RefreshOK,
		Count:    cat.Len(),
		Version:  cat.Version(),
		LoadedAt: cat.LoadedAt(),
	}
	if cat.Len() == 0 {
		result.Status = domain.RefreshNoData
		return result, nil
	}

	if s.store != nil {
		n, err := s.store.ReplaceItems(ctx, cat.Items())
		if err != nil {
			return nil, fmt.Errorf("mirror catalog: %w", err)
		}
		result.Mirrored = true
		s.log.Info().Int("items", n).Msg("catalog mirrored to item store")
	}
	return result, nil
}

// Handle response error
func categorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrCatalogUnavailable) {
		return "catalog_unavailable", "jewelry database not available"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "request_timeout", "request timed out, please try again"
	}
	return "internal_error", "an unexpected error occurred"
}
