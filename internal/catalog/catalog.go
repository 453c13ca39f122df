// Package catalog loads the jewelry catalog the recommender works from.
//
// A Catalog is immutable once built. The service swaps whole catalogs on
// refresh instead of mutating one in place, so requests can keep reading the
// snapshot they started with.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

// Loader produces a fresh catalog from some source.
type Loader interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Catalog is a read-only, fingerprinted set of items.
type Catalog struct {
	items    []domain.Item
	version  string
	source   string
	skipped  int
	loadedAt time.Time
}

// New copies items into a new Catalog. skipped is the number of source rows
// that were dropped during normalization.
func New(items []domain.Item, source string, skipped int) *Catalog {
	owned := make([]domain.Item, len(items))
	copy(owned, items)
	return &Catalog{
		items:    owned,
		version:  fingerprint(owned),
		source:   source,
		skipped:  skipped,
		loadedAt: time.Now().UTC(),
	}
}

// Items returns the catalog contents. Callers must not modify the slice.
func (c *Catalog) Items() []domain.Item {
	if c == nil {
		return nil
	}
	return c.items
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Version identifies the catalog contents; equal items give equal versions.
func (c *Catalog) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}

func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}

func (c *Catalog) Skipped() int {
	if c == nil {
		return 0
	}
	return c.skipped
}

func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}

func fingerprint(items []domain.Item) string {
	h := xxhash.New()
	for _, it := range items {
		_, _ = h.WriteString(it.Name)
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(it.Category)
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(strconv.FormatFloat(it.Price, 'g', -1, 64))
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(it.Style)
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(it.ImageURL)
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(it.CelebrityInspiration)
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(optional(it.Design))
		_, _ = h.WriteString("\x1f")
		_, _ = h.WriteString(optional(it.Link))
		_, _ = h.WriteString("\x1e")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
