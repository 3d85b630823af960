// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"trenddrop/internal/db"
)

// TestDB connects to TEST_DATABASE_URL, applies the embedded schema and
// empties every table. The test is skipped when the variable is unset.
func TestDB(t *testing.T) *db.DB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database.Pool)
	t.Cleanup(func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	})

	return database
}

func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM clicks")
	pool.Exec(ctx, "DELETE FROM subscribers")
	pool.Exec(ctx, "DELETE FROM entitlements")
	pool.Exec(ctx, "DELETE FROM products")
}

// Product describes a seeded products row.
type Product struct {
	Title          string
	Keyword        string
	Category       string
	SellerFeedback float64
	TopRated       bool
	CreatedAt      time.Time
}

// CreateTestProduct inserts a product and returns its ID.
func CreateTestProduct(t *testing.T, database *db.DB, p Product) string {
	t.Helper()

	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	var id string
	err := database.Pool.QueryRow(context.Background(), `
		INSERT INTO products (title, price, currency, url, keyword, category, seller_feedback, top_rated, provider, source, created_at)
		VALUES ($1, 19.99, 'USD', 'https://shop.example.com/' || $2::text, $2, $3, $4, $5, 'ebay', 'test', $6)
		RETURNING id::text
	`, p.Title, p.Keyword, p.Category, p.SellerFeedback, p.TopRated, p.CreatedAt).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return id
}

// CreateTestEntitlement inserts an entitlement row.
func CreateTestEntitlement(t *testing.T, database *db.DB, email, productKey, status string) {
	t.Helper()

	_, err := database.Pool.Exec(context.Background(), `
		INSERT INTO entitlements (email, product_key, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (email, product_key) DO UPDATE SET status = EXCLUDED.status
	`, email, productKey, status)
	if err != nil {
		t.Fatalf("failed to create test entitlement: %v", err)
	}
}

// CreateTestSubscriber inserts a subscriber and returns its ID.
func CreateTestSubscriber(t *testing.T, database *db.DB, email, purchaseID, status string) string {
	t.Helper()

	var id string
	err := database.Pool.QueryRow(context.Background(), `
		INSERT INTO subscribers (email, purchase_id, status)
		VALUES ($1, NULLIF($2::text, ''), $3)
		RETURNING id::text
	`, email, purchaseID, status).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test subscriber: %v", err)
	}
	return id
}
