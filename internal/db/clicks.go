package db

import (
	"context"

	"trenddrop/internal/models"
)

// RecordClick logs an outbound product click.
func (d *DB) RecordClick(ctx context.Context, productURL string) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	_, err := d.Pool.Exec(ctx, `INSERT INTO clicks (product_url) VALUES ($1)`, productURL)
	return err
}

// ClickStats returns click counts grouped by merchant host for metrics export,
// limited to the limit busiest hosts.
func (d *DB) ClickStats(ctx context.Context, limit int) ([]models.ClickStat, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	rows, err := d.Pool.Query(ctx, `
		SELECT COALESCE(lower(substring(product_url from '^[a-zA-Z]+://([^/:?#]+)')), '') AS host,
		       COUNT(*), MAX(created_at)
		FROM clicks
		GROUP BY 1
		ORDER BY 2 DESC, 1
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.ClickStat
	for rows.Next() {
		var s models.ClickStat
		if err := rows.Scan(&s.Host, &s.Count, &s.LastSeenAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
