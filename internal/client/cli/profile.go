package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/services"
	"github.com/dmitrijs2005/artstore/internal/common"
	"github.com/shopspring/decimal"
)

// Profile refreshes the user from the server and prints it.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.profileService.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Username: %s\nName:     %s\nBalance:  %s\nPhoto:    %s\n",
		u.Username, u.DisplayName, formatMoney(u.Balance),
		services.ProfileImageURL(a.config.ImageBaseURL, u.Photo, u.Username))
	return nil
}

// Topup adds funds. Without an argument it offers the preset amounts and
// the answer may pick one by position.
func (a *App) Topup(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	return a.guard(func() error {
		var input string
		if len(args) > 0 {
			input = args[0]
		} else {
			fmt.Fprintln(a.out, "Quick amounts:")
			for i, q := range services.QuickAmounts {
				fmt.Fprintf(a.out, "  %d) %s\n", i+1, formatMoney(decimal.NewFromInt(q)))
			}
			choice, err := getSimpleText(a.reader, "Choose 1-"+strconv.Itoa(len(services.QuickAmounts))+" or type an amount", a.out)
			if err != nil {
				return err
			}
			input = quickAmount(choice)
		}

		amount, err := services.ParseAmount(input)
		if err != nil {
			return err
		}
		balance, err := a.profileService.Topup(ctx, amount)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Added %s. New balance: %s\n", formatMoney(amount), formatMoney(balance))
		return nil
	})
}

// quickAmount maps a menu position ("3" or "#3") to its amount; other
// input is returned unchanged.
func quickAmount(choice string) string {
	choice = strings.TrimPrefix(choice, "#")
	if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(services.QuickAmounts) {
		return strconv.FormatInt(services.QuickAmounts[n-1], 10)
	}
	return choice
}

// Edit prompts for profile changes. Blank answers keep the current value.
func (a *App) Edit(ctx context.Context) error {
	current := a.session.Current()
	if current == nil {
		return client.ErrNotLoggedIn
	}

	return a.guard(func() error {
		var req services.EditRequest

		username, err := getSimpleText(a.reader, fmt.Sprintf("New username [%s]", current.Username), a.out)
		if err != nil {
			return err
		}
		if username != "" {
			req.NewUsername = &username
		}

		name, err := getSimpleText(a.reader, fmt.Sprintf("New full name [%s]", current.DisplayName), a.out)
		if err != nil {
			return err
		}
		if name != "" {
			req.NewDisplayName = &name
		}

		if req.PhotoPath, err = getSimpleText(a.reader, "New profile photo path (Enter to keep)", a.out); err != nil {
			return err
		}

		password, err := getPassword("Current password to confirm", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
		req.PasswordConfirm = string(password)

		res, err := a.profileService.Edit(ctx, req)
		if err != nil {
			return err
		}
		if res.PhotoWarning != nil {
			fmt.Fprintln(a.out, photoWarning(res.PhotoWarning))
		}
		fmt.Fprintln(a.out, "Profile updated.")
		return nil
	})
}
