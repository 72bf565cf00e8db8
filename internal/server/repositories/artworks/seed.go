package artworks

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/artstore/internal/server/models"
	"github.com/shopspring/decimal"
)

// DemoCatalog is the catalog the development server starts with.
func DemoCatalog() []models.Artwork {
	price := decimal.RequireFromString
	return []models.Artwork{
		{Title: "Amanecer en el puerto", Author: "Lucía Ferrer", Year: 2018, Price: price("1200.00"), ImageKey: "obras/amanecer.jpg"},
		{Title: "Ciudad dormida", Author: "Tomás Rivas", Year: 2020, Price: price("850.50"), ImageKey: "obras/ciudad.jpg"},
		{Title: "Raíces", Author: "Elena Duarte", Year: 2015, Price: price("4300.00"), ImageKey: "obras/raices.jpg"},
		{Title: "Azul profundo", Author: "Marco Salas", Year: 2022, Price: price("299.99"), ImageKey: "obras/azul.jpg"},
		{Title: "Geometría del silencio", Author: "Ana Beltrán", Year: 2019, Price: price("15000.00"), ImageKey: "obras/geometria.jpg"},
		{Title: "Mercado de flores", Author: "Lucía Ferrer", Year: 2021, Price: price("640.00")},
	}
}

// Seed adds every artwork in items to repo.
func Seed(ctx context.Context, repo Repository, items []models.Artwork) error {
	for i := range items {
		if _, err := repo.Add(ctx, &items[i]); err != nil {
			return fmt.Errorf("seed %q: %w", items[i].Title, err)
		}
	}
	return nil
}
