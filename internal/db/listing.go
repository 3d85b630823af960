package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"trenddrop/internal/models"
)

// ViewTop is the curated listing view consumed by the public products API.
const ViewTop = "v_products_top"

// scanRecords scans rows of any shape into ordered records, keeping the
// column order reported by the server.
func scanRecords(rows pgx.Rows) ([]models.Record, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := []models.Record{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(models.Record, len(fields))
		for i, fd := range fields {
			rec[i] = models.Field{Key: fd.Name, Value: normalizeValue(values[i])}
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// normalizeValue converts driver values without a useful JSON form.
func normalizeValue(v any) any {
	if b, ok := v.([16]byte); ok {
		return uuid.UUID(b).String()
	}
	return v
}

// ListTopProducts reads the curated listing view, optionally filtered by category.
func (d *DB) ListTopProducts(ctx context.Context, limit int, category string) ([]models.Record, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var (
		rows pgx.Rows
		err  error
	)
	if category != "" {
		rows, err = d.Pool.Query(ctx, `SELECT * FROM `+ViewTop+` WHERE category = $1 LIMIT $2`, category, limit)
	} else {
		rows, err = d.Pool.Query(ctx, `SELECT * FROM `+ViewTop+` LIMIT $1`, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", ViewTop, err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", ViewTop, err)
	}
	return records, nil
}

// ListProductsByCategory reads the raw products table filtered by exact category.
// An empty category matches only rows whose category is the empty string.
func (d *DB) ListProductsByCategory(ctx context.Context, limit int, category string) ([]models.Record, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.Pool.Query(ctx, `SELECT * FROM products WHERE category = $1 LIMIT $2`, category, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	return records, nil
}
