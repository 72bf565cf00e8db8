package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/artstore/internal/client/services"
	"github.com/dmitrijs2005/artstore/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the sign-up form and creates an account. It does not
// log in; the user is pointed to the login command instead.
func (a *App) Register(ctx context.Context) error {
	return a.guard(func() error {
		var req services.RegisterRequest
		var err error

		if req.Username, err = getSimpleText(a.reader, "Choose a username", a.out); err != nil {
			return err
		}
		if req.DisplayName, err = getSimpleText(a.reader, "Your full name", a.out); err != nil {
			return err
		}

		password, err := getPassword("Password (min 6 characters)", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
		confirm, err := getPassword("Repeat password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(confirm)
		req.Password, req.Confirm = string(password), string(confirm)

		if req.PhotoPath, err = getSimpleText(a.reader, "Profile photo path (optional, Enter to skip)", a.out); err != nil {
			return err
		}

		res, err := a.authService.Register(ctx, req)
		if err != nil {
			return err
		}
		if res.PhotoWarning != nil {
			fmt.Fprintln(a.out, photoWarning(res.PhotoWarning))
		}
		fmt.Fprintln(a.out, "Registration successful! You can now log in.")
		return nil
	})
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	return a.guard(func() error {
		username, err := getSimpleText(a.reader, "Username", a.out)
		if err != nil {
			return err
		}

		password, err := getPassword("Password", a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)

		u, err := a.authService.Login(ctx, username, string(password))
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Welcome, %s! Balance: %s\n", u.DisplayName, formatMoney(u.Balance))
		return nil
	})
}

// Logout clears the session, both in memory and on disk.
func (a *App) Logout(ctx context.Context) error {
	return a.guard(func() error {
		if err := a.authService.Logout(ctx); err != nil {
			// memory is already cleared; only the saved copy may linger
			a.logger.Warn(ctx, "logout not persisted", "error", err)
		}
		fmt.Fprintln(a.out, "Logged out.")
		return nil
	})
}
