package model

import (
	"math/rand"
	"sync"
	"time"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

// Client runs the recommendation pipeline. Ranking is a pure function of the
// catalog and the query; only the final pick from the pool is random.
type Client struct {
	vibes VibeTable

	mu  sync.Mutex
	rng *rand.Rand
}

// NewClient builds a Client over the given vibe table. A zero seed draws one
// from the clock, so repeated kiosk visits see some variety.
func NewClient(vibes VibeTable, seed int64) *Client {
	if vibes == nil {
		vibes = DefaultVibeTable
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Client{
		vibes: vibes,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Ranking is the deterministic part of a recommendation: the pool the final
// items are drawn from plus some bookkeeping about how it was built.
type Ranking struct {
	Pool       []domain.Candidate `json:"pool"`
	Candidates int                `json:"candidates"`
	Fallback   bool               `json:"fallback"`
	VibeStyles []string           `json:"vibe_styles,omitempty"`
}

// Rank filters, scores and sorts items for q and returns the top pool.
func (c *Client) Rank(items []domain.Item, q domain.Query) (Ranking, error) {
	vibeStyles := c.vibes.Resolve(q.Vibe)

	filtered, fallback, err := Filter(items, q)
	if err != nil {
		return Ranking{}, err
	}

	scored := make([]domain.Candidate, 0, len(filtered))
	for _, it := range filtered {
		scored = append(scored, domain.Candidate{Item: it, Score: Score(it, q, vibeStyles)})
	}

	return Ranking{
		Pool:       Pool(Rank(scored)),
		Candidates: len(scored),
		Fallback:   fallback,
		VibeStyles: vibeStyles,
	}, nil
}

// Pick draws the final items from a ranked pool.
func (c *Client) Pick(pool []domain.Candidate) []domain.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return sample(c.rng, pool)
}

// Recommend is Rank followed by Pick.
func (c *Client) Recommend(items []domain.Item, q domain.Query) ([]domain.Item, Ranking, error) {
	ranking, err := c.Rank(items, q)
	if err != nil {
		return nil, Ranking{}, err
	}
	return c.Pick(ranking.Pool), ranking, nil
}
