package models

import (
	"time"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/shopspring/decimal"
)

type Artwork struct {
	ID       int64
	Title    string
	Author   string
	Year     int
	Price    decimal.Decimal
	ImageKey string
	// OwnerID is zero while the artwork is for sale.
	OwnerID int64
	SoldAt  time.Time
}

func (a *Artwork) Available() bool {
	return a.OwnerID == 0
}

func (a *Artwork) ToAPI() api.Artwork {
	return api.Artwork{
		ID:        a.ID,
		Title:     a.Title,
		Author:    a.Author,
		Year:      a.Year,
		Price:     a.Price,
		Image:     a.ImageKey,
		Available: a.Available(),
	}
}
