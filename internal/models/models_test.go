package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEntitlement_IsPaid(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{StatusPaid, true},
		{StatusPending, false},
		{"refunded", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			e := &Entitlement{Status: tt.status}
			if got := e.IsPaid(); got != tt.want {
				t.Errorf("IsPaid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubscriber_IsClaimed(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		claimedAt *time.Time
		want      bool
	}{
		{"unclaimed", nil, false},
		{"claimed", &now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Subscriber{Status: StatusPaid, ClaimedAt: tt.claimedAt}
			if got := s.IsClaimed(); got != tt.want {
				t.Errorf("IsClaimed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecord_MarshalJSON(t *testing.T) {
	rec := Record{{"zeta", 1}, {"alpha", "x"}, {"mid", nil}}

	got, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if want := `{"zeta":1,"alpha":"x","mid":null}`; string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}

	empty, err := json.Marshal(Record{})
	if err != nil {
		t.Fatal(err)
	}
	if string(empty) != "{}" {
		t.Errorf("Marshal(empty) = %s", empty)
	}
}

func TestProductRow_Record(t *testing.T) {
	title := "Lamp"
	p := ProductRow{ID: "abc", Title: &title}

	rec := p.Record()
	if rec.Keys()[0] != "id" || rec.Keys()[len(rec)-1] != "created_at" {
		t.Errorf("Keys() = %v", rec.Keys())
	}
	if v, _ := rec.Get("title"); v != "Lamp" {
		t.Errorf("title = %v", v)
	}
	if v, ok := rec.Get("price"); !ok || v != nil {
		t.Errorf("price = %v, %v; want untyped nil", v, ok)
	}
	if _, ok := rec.Get("missing"); ok {
		t.Error("Get(missing) reported a column")
	}
}
