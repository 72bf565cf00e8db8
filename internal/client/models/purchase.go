package models

import (
	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/shopspring/decimal"
)

// PurchasedSummary aggregates a user's collection.
type PurchasedSummary struct {
	Count   int
	Total   decimal.Decimal
	Average decimal.Decimal
}

// Summarize computes totals over artworks. Average is rounded to cents and
// is zero for an empty list.
func Summarize(artworks []api.Artwork) PurchasedSummary {
	s := PurchasedSummary{Total: decimal.Zero, Average: decimal.Zero}
	for _, a := range artworks {
		s.Total = s.Total.Add(a.Price)
	}
	s.Count = len(artworks)
	if s.Count > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.Count))).Round(2)
	}
	return s
}

// PurchaseResult is the server-confirmed outcome of a purchase.
type PurchaseResult struct {
	ArtworkID  int64
	Message    string
	NewBalance decimal.Decimal
}
