package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

// insertBatchSize keeps each INSERT well under the postgres parameter limit.
const insertBatchSize = 500

const itemColumns = "name, category, price, style, image_url, celebrity_inspiration, design, link"

// ReplaceItems swaps the mirrored catalog for items in one transaction.
func (r *Repository) ReplaceItems(ctx context.Context, items []domain.Item) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin replace items: %w", err)
	}

	fail := func(err error) (int, error) {
		_ = tx.Rollback(ctx)
		return 0, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM item_trends`); err != nil {
		return fail(fmt.Errorf("clear item trends: %w", err))
	}
	if _, err := tx.Exec(ctx, `DELETE FROM items`); err != nil {
		return fail(fmt.Errorf("clear items: %w", err))
	}

	for start := 0; start < len(items); start += insertBatchSize {
		end := min(start+insertBatchSize, len(items))
		query, args := buildInsert(items[start:end])
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fail(fmt.Errorf("insert items %d-%d: %w", start, end, err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit replace items: %w", err)
	}
	return len(items), nil
}

func buildInsert(items []domain.Item) (string, []any) {
	rows := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*8)

	for _, it := range items {
		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args, it.Name, it.Category, it.Price, it.Style,
			it.ImageURL, it.CelebrityInspiration, it.Design, it.Link)
	}

	return "INSERT INTO items (" + itemColumns + ") VALUES " + strings.Join(rows, ", "), args
}

// ListItems returns the mirrored catalog in insertion order.
func (r *Repository) ListItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+`
		FROM items
		WHERE price IS NOT NULL AND price >= 0
		ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var (
			it           domain.Item
			design, link pgtype.Text
		)
		err := rows.Scan(&it.Name, &it.Category, &it.Price, &it.Style,
			&it.ImageURL, &it.CelebrityInspiration, &design, &link)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		it.Design = textPtr(design)
		it.Link = textPtr(link)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over items: %w", err)
	}
	return items, nil
}

// Count mirrored items
func (r *Repository) CountItems(ctx context.Context) (int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return total, nil
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid || t.String == "" {
		return nil
	}
	s := t.String
	return &s
}
