package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
	"github.com/actuallystonmai/stylist-kiosk/internal/logging"
)

// ItemStore receives the generated catalog.
type ItemStore interface {
	ReplaceItems(ctx context.Context, items []domain.Item) (int, error)
}

// Setup writes a deterministic demo catalog of n items to store.
func Setup(ctx context.Context, store ItemStore, n int) error {
	rng := rand.New(rand.NewSource(42))

	logging.Info().Int("items", n).Msg("[seed] generating demo catalog")
	items := Catalog(rng, n)

	written, err := store.ReplaceItems(ctx, items)
	if err != nil {
		return fmt.Errorf("seed items: %w", err)
	}
	logging.Info().Int("items", written).Msg("[seed] seeding complete")
	return nil
}

var (
	categories       = []string{"ring", "necklace", "earrings", "bracelet"}
	categoryWeights  = []float64{0.35, 0.25, 0.3, 0.1}
	styles           = []string{"modern", "traditional", "minimal", "bold", "classic", "glam"}
	celebrities      = []string{"Deepika", "Alia", "Priyanka", "Katrina", "-"}
	celebrityWeights = []float64{0.25, 0.25, 0.2, 0.1, 0.2}
	designs          = []string{"Solitaire", "Halo", "Jhumka", "Choker", "Cuff", "Pendant", "Stud", "Tennis"}
	adjectives       = []string{"Aurora", "Lotus", "Celeste", "Noor", "Ember", "Mira", "Tara", "Zara", "Ivy", "Opal"}
)

// Catalog generates n demo items. The same rng seed always yields the same
// catalog.
func Catalog(rng *rand.Rand, n int) []domain.Item {
	items := make([]domain.Item, 0, n)
	for i := range n {
		category := weightedChoice(rng, categories, categoryWeights)
		style := styles[rng.Intn(len(styles))]
		design := designs[rng.Intn(len(designs))]
		name := fmt.Sprintf("%s %s %s", adjectives[i%len(adjectives)], design, category)
		if i >= len(adjectives) {
			name = fmt.Sprintf("%s %d", name, i/len(adjectives)+1)
		}

		it := domain.Item{
			Name:                 name,
			Category:             category,
			Price:                priceFor(rng),
			Style:                style,
			ImageURL:             fmt.Sprintf("https://images.example.com/jewelry/%04d.jpg", i+1),
			CelebrityInspiration: weightedChoice(rng, celebrities, celebrityWeights),
			Design:               &design,
		}
		if rng.Float64() < 0.6 {
			link := fmt.Sprintf("https://shop.example.com/p/%04d", i+1)
			it.Link = &link
		}
		items = append(items, it)
	}
	return items
}

// priceFor skews toward affordable pieces with a long tail of statement ones,
// rounded to the nearest 50.
func priceFor(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := 2000 + math.Pow(u, 2.5)*148000
	return math.Round(raw/50) * 50
}

func weightedChoice(rng *rand.Rand, choices []string, weights []float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
