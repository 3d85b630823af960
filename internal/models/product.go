package models

import "time"

// ProductRow is a curated product as exposed by the product views and the
// products_by_keyword search function. Nullable columns are pointers.
type ProductRow struct {
	ID             string    `json:"id"`
	Title          *string   `json:"title"`
	Price          *float64  `json:"price"`
	Currency       *string   `json:"currency"`
	ImageURL       *string   `json:"image_url"`
	URL            *string   `json:"url"`
	Keyword        *string   `json:"keyword"`
	SellerFeedback *float64  `json:"seller_feedback"`
	TopRated       *bool     `json:"top_rated"`
	Provider       *string   `json:"provider"`
	Source         *string   `json:"source"`
	CreatedAt      time.Time `json:"created_at"`
}

// Record returns the row as ordered column/value pairs, in view column order.
// Nil pointers are returned as untyped nil.
func (p *ProductRow) Record() Record {
	return Record{
		{"id", p.ID},
		{"title", deref(p.Title)},
		{"price", deref(p.Price)},
		{"currency", deref(p.Currency)},
		{"image_url", deref(p.ImageURL)},
		{"url", deref(p.URL)},
		{"keyword", deref(p.Keyword)},
		{"seller_feedback", deref(p.SellerFeedback)},
		{"top_rated", deref(p.TopRated)},
		{"provider", deref(p.Provider)},
		{"source", deref(p.Source)},
		{"created_at", p.CreatedAt},
	}
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
