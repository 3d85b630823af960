package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"trenddrop/internal/models"
)

// Product views and functions.
const (
	ViewTopByFeedback = "v_products_top_by_feedback"
	ViewRecent7d      = "v_products_recent_7d"
	FuncSearch        = "products_by_keyword"
)

// productColumns is the standard column list for product row queries.
// Numeric columns are cast so they scan into float64 regardless of the
// underlying column type.
const productColumns = `id::text, title, price::float8, currency, image_url, url, keyword,
	seller_feedback::float8, top_rated, provider, source, created_at`

// scanProducts scans multiple rows into a slice of ProductRows.
func scanProducts(rows pgx.Rows) ([]models.ProductRow, error) {
	defer rows.Close()

	products := []models.ProductRow{}
	for rows.Next() {
		var p models.ProductRow
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Price,
			&p.Currency,
			&p.ImageURL,
			&p.URL,
			&p.Keyword,
			&p.SellerFeedback,
			&p.TopRated,
			&p.Provider,
			&p.Source,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// TopByFeedback reads the precomputed top-by-feedback view.
func (d *DB) TopByFeedback(ctx context.Context, limit int) ([]models.ProductRow, error) {
	return d.readView(ctx, ViewTopByFeedback, limit)
}

// Recent7d reads the precomputed seven day recency view.
func (d *DB) Recent7d(ctx context.Context, limit int) ([]models.ProductRow, error) {
	return d.readView(ctx, ViewRecent7d, limit)
}

func (d *DB) readView(ctx context.Context, view string, limit int) ([]models.ProductRow, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	// view is always one of the package constants above
	rows, err := d.Pool.Query(ctx, `SELECT `+productColumns+` FROM `+view+` LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", view, err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", view, err)
	}
	return products, nil
}

// SearchProducts invokes the products_by_keyword search function.
func (d *DB) SearchProducts(ctx context.Context, params models.SearchParams) ([]models.ProductRow, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.Pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM `+FuncSearch+`(q => $1, min_feedback => $2, days => $3, max_rows => $4)
	`, params.Query, params.MinFeedback, params.Days, params.MaxRows)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", FuncSearch, err)
	}

	products, err := scanProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", FuncSearch, err)
	}
	return products, nil
}
