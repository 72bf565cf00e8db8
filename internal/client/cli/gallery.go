package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/services"
)

// Gallery (re)loads the catalog and prints it. It doubles as the retry
// action after a failed load.
func (a *App) Gallery(ctx context.Context) error {
	g, err := a.galleryService.Load(ctx)
	if err != nil {
		return err
	}
	a.gallery = g

	artworks := g.Artworks()
	if len(artworks) == 0 {
		fmt.Fprintln(a.out, "The gallery is empty.")
		return nil
	}
	for _, art := range artworks {
		a.printArtwork(art)
	}
	fmt.Fprintf(a.out, "%d artworks, %d available.\n", len(artworks), len(g.Available()))
	return nil
}

// Buy purchases the artwork with the given id after a confirmation.
func (a *App) Buy(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: buy <id>")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return &client.ValidationError{Field: "id", Reason: "must be a number"}
	}
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	return a.guard(func() error {
		if a.gallery == nil {
			g, err := a.galleryService.Load(ctx)
			if err != nil {
				return err
			}
			a.gallery = g
		}

		art, ok := a.gallery.Find(id)
		if !ok {
			return services.ErrArtworkNotFound
		}
		if !art.Available {
			return services.ErrArtworkUnavailable
		}

		yes, err := Confirm(a.reader, fmt.Sprintf("Buy %q by %s for %s?", art.Title, art.Author, formatMoney(art.Price)), a.out)
		if err != nil {
			return err
		}
		if !yes {
			fmt.Fprintln(a.out, "Cancelled.")
			return nil
		}

		res, err := a.galleryService.Purchase(ctx, a.gallery, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "You bought %q. New balance: %s\n", art.Title, formatMoney(res.NewBalance))
		return nil
	})
}

// Purchased lists the user's collection with totals.
func (a *App) Purchased(ctx context.Context) error {
	list, sum, err := a.galleryService.Purchased(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "You have not bought anything yet. Type 'gallery' to browse.")
		return nil
	}
	for _, art := range list {
		a.printArtwork(art)
	}
	fmt.Fprintf(a.out, "Artworks: %d  Total spent: %s  Average price: %s\n",
		sum.Count, formatMoney(sum.Total), formatMoney(sum.Average))
	return nil
}

func (a *App) printArtwork(art api.Artwork) {
	status := "available"
	if !art.Available {
		status = "sold"
	}
	fmt.Fprintf(a.out, "#%d  %s by %s (%d)  %s  [%s]\n",
		art.ID, art.Title, art.Author, art.Year, formatMoney(art.Price), status)
	if u := services.ImageURL(a.config.ImageBaseURL, art.Image); u != "" {
		fmt.Fprintf(a.out, "     %s\n", u)
	}
}
