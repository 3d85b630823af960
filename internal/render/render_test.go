package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"trenddrop/internal/models"
)

func TestCSV(t *testing.T) {
	tests := []struct {
		name    string
		records []models.Record
		want    string
	}{
		{
			name:    "empty input",
			records: nil,
			want:    "",
		},
		{
			name:    "comma is quoted",
			records: []models.Record{{{Key: "a", Value: 1}, {Key: "b", Value: "x,y"}}},
			want:    "a,b\n1,\"x,y\"",
		},
		{
			name:    "quotes are doubled",
			records: []models.Record{{{Key: "title", Value: `say "hi"`}}},
			want:    "title\n\"say \"\"hi\"\"\"",
		},
		{
			name:    "newline is quoted",
			records: []models.Record{{{Key: "title", Value: "line1\nline2"}}},
			want:    "title\n\"line1\nline2\"",
		},
		{
			name:    "nil renders empty",
			records: []models.Record{{{Key: "a", Value: nil}, {Key: "b", Value: "x"}}},
			want:    "a,b\n,x",
		},
		{
			name: "header fixed by first row",
			records: []models.Record{
				{{Key: "a", Value: 1}, {Key: "b", Value: 2}},
				{{Key: "b", Value: 3}, {Key: "c", Value: 4}},
			},
			want: "a,b\n1,2\n,3",
		},
		{
			name:    "plain text untouched",
			records: []models.Record{{{Key: "a", Value: "plain text"}, {Key: "b", Value: true}, {Key: "c", Value: 19.5}}},
			want:    "a,b,c\nplain text,true,19.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CSV(tt.records); got != tt.want {
				t.Errorf("CSV() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCSV_ProductRows(t *testing.T) {
	title := "Desk lamp, brass"
	price := 24.99
	topRated := true
	created := time.Date(2026, 10, 12, 8, 30, 0, 0, time.UTC)

	rows := []models.ProductRow{{
		ID:        "p-1",
		Title:     &title,
		Price:     &price,
		TopRated:  &topRated,
		CreatedAt: created,
	}}

	got := CSV(ProductRecords(rows))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("CSV() produced %d lines, want 2: %q", len(lines), got)
	}

	wantHeader := "id,title,price,currency,image_url,url,keyword,seller_feedback,top_rated,provider,source,created_at"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}

	wantRow := `p-1,"Desk lamp, brass",24.99,,,,,,true,,,2026-10-12T08:30:00Z`
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
}

func TestJSON(t *testing.T) {
	t.Run("envelope with rows", func(t *testing.T) {
		rows := []models.ProductRow{{ID: "a"}, {ID: "b"}}
		body, err := JSON(rows)
		if err != nil {
			t.Fatalf("JSON() error = %v", err)
		}
		if !strings.Contains(string(body), "\n  \"count\": 2") {
			t.Errorf("JSON() not pretty printed: %s", body)
		}

		var env struct {
			OK    bool                `json:"ok"`
			Count int                 `json:"count"`
			Rows  []models.ProductRow `json:"rows"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if !env.OK || env.Count != 2 || env.Rows[1].ID != "b" {
			t.Errorf("envelope = %+v", env)
		}
	})

	t.Run("nil rows encode as empty array", func(t *testing.T) {
		body, err := JSON[models.ProductRow](nil)
		if err != nil {
			t.Fatalf("JSON() error = %v", err)
		}
		if !strings.Contains(string(body), `"rows": []`) {
			t.Errorf("JSON() = %s, want empty rows array", body)
		}
	})
}

func TestRecordMarshalJSONKeepsOrder(t *testing.T) {
	rec := models.Record{{Key: "z", Value: 1}, {Key: "a", Value: "x"}, {Key: "m", Value: nil}}
	body, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(body) != `{"z":1,"a":"x","m":null}` {
		t.Errorf("Marshal() = %s", body)
	}
}
