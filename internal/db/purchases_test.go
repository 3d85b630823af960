package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"trenddrop/internal/db"
	"trenddrop/internal/models"
	"trenddrop/internal/testutil"
)

func TestGetEntitlement(t *testing.T) {
	database := testutil.TestDB(t)
	ctx := context.Background()

	testutil.CreateTestEntitlement(t, database, "buyer@example.com", "weekly-report", models.StatusPaid)

	ent, err := database.GetEntitlement(ctx, "buyer@example.com", "weekly-report")
	if err != nil {
		t.Fatalf("GetEntitlement() error = %v", err)
	}
	if !ent.IsPaid() {
		t.Errorf("status = %q", ent.Status)
	}

	_, err = database.GetEntitlement(ctx, "buyer@example.com", "monthly-report")
	if !errors.Is(err, db.ErrEntitlementNotFound) {
		t.Errorf("GetEntitlement(other product) error = %v, want ErrEntitlementNotFound", err)
	}
}

func TestFindSubscriber(t *testing.T) {
	database := testutil.TestDB(t)
	ctx := context.Background()

	testutil.CreateTestSubscriber(t, database, "fan@example.com", "p-1", models.StatusPaid)

	tests := []struct {
		name       string
		purchaseID string
		wantErr    error
	}{
		{"email only", "", nil},
		{"matching purchase", "p-1", nil},
		{"other purchase", "p-2", db.ErrSubscriberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := database.FindSubscriber(ctx, "fan@example.com", tt.purchaseID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("FindSubscriber() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && (sub.PurchaseID == nil || *sub.PurchaseID != "p-1") {
				t.Errorf("purchase_id = %v", sub.PurchaseID)
			}
		})
	}
}

func TestMarkSubscriberClaimed(t *testing.T) {
	database := testutil.TestDB(t)
	ctx := context.Background()

	id := uuid.MustParse(testutil.CreateTestSubscriber(t, database, "fan@example.com", "", models.StatusPaid))

	if err := database.MarkSubscriberClaimed(ctx, id); err != nil {
		t.Fatalf("first claim error = %v", err)
	}
	if err := database.MarkSubscriberClaimed(ctx, id); !errors.Is(err, db.ErrAlreadyClaimed) {
		t.Errorf("second claim error = %v, want ErrAlreadyClaimed", err)
	}

	sub, err := database.FindSubscriber(ctx, "fan@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	if !sub.IsClaimed() {
		t.Error("subscriber not marked claimed")
	}
}

func TestClicks(t *testing.T) {
	database := testutil.TestDB(t)
	ctx := context.Background()

	for _, u := range []string{"https://Shop.Example.com/a", "https://shop.example.com/b?x=1", "http://other.example.org:8080/"} {
		if err := database.RecordClick(ctx, u); err != nil {
			t.Fatalf("RecordClick(%q) error = %v", u, err)
		}
	}

	stats, err := database.ClickStats(ctx, 10)
	if err != nil {
		t.Fatalf("ClickStats() error = %v", err)
	}

	counts := map[string]int64{}
	for _, s := range stats {
		counts[s.Host] = s.Count
	}
	if counts["shop.example.com"] != 2 || counts["other.example.org"] != 1 {
		t.Errorf("ClickStats() = %v", counts)
	}
}

func TestClickStats_Limit(t *testing.T) {
	database := testutil.TestDB(t)
	ctx := context.Background()

	for _, u := range []string{"https://a.example.com/", "https://a.example.com/x", "https://b.example.com/", "https://c.example.com/"} {
		if err := database.RecordClick(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := database.ClickStats(ctx, 2)
	if err != nil {
		t.Fatalf("ClickStats() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("ClickStats(limit 2) = %d hosts, want 2", len(stats))
	}
	if stats[0].Host != "a.example.com" || stats[0].Count != 2 {
		t.Errorf("busiest host = %+v, want a.example.com with 2", stats[0])
	}
}
