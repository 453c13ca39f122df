package model

import (
	"math/rand"
	"sort"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

const (
	// PoolSize is how many top-ranked candidates the final pick is drawn from.
	PoolSize = 20
	// ResultSize is the most items a single recommendation returns.
	ResultSize = 3
)

// Rank sorts candidates by score descending. Ties keep their input order.
func Rank(candidates []domain.Candidate) []domain.Candidate {
	ranked := make([]domain.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// Pool truncates ranked candidates to the top PoolSize once there are more
// than ResultSize of them.
func Pool(ranked []domain.Candidate) []domain.Candidate {
	if len(ranked) > ResultSize && len(ranked) > PoolSize {
		return ranked[:PoolSize]
	}
	return ranked
}

// sample draws ResultSize distinct candidates from pool using a partial
// Fisher-Yates shuffle. Pools at or below ResultSize come back unchanged.
func sample(rng *rand.Rand, pool []domain.Candidate) []domain.Item {
	if len(pool) <= ResultSize {
		out := make([]domain.Item, len(pool))
		for i, c := range pool {
			out[i] = c.Item
		}
		return out
	}

	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	out := make([]domain.Item, 0, ResultSize)
	for i := 0; i < ResultSize; i++ {
		j := i + rng.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, pool[idx[i]].Item)
	}
	return out
}
