package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Gallery(ctx context.Context) error
	Buy(ctx context.Context, args []string) error
	Purchased(ctx context.Context) error
	Profile(ctx context.Context) error
	Topup(ctx context.Context, args []string) error
	Edit(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the storefront CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. A handler error is turned into one line for
// the user with UserMessage; nothing ends the loop except "exit"/"quit" or
// the end of input.
//
//	Always:
//	  - help              show available commands
//	  - gallery | g       list artworks (also retries a failed load)
//	  - exit | quit       leave the program
//
//	Not logged in:
//	  - register          create an account
//	  - login             authenticate
//
//	Logged in:
//	  - buy <id>          purchase an artwork
//	  - purchased         list your collection
//	  - profile           refresh and show your profile
//	  - topup [amount]    add funds
//	  - edit              change username, name or photo
//	  - logout            log out
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("art> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (g)allery, buy <id>, purchased, profile, topup [amount], edit, logout, exit")
			} else {
				printlnFn("Available commands: (g)allery, register, login, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "g", "gallery":
			cmdErr = a.Gallery(ctx)

		case "buy":
			cmdErr = a.Buy(ctx, args)

		case "purchased":
			cmdErr = a.Purchased(ctx)

		case "profile":
			cmdErr = a.Profile(ctx)

		case "topup":
			cmdErr = a.Topup(ctx, args)

		case "edit":
			cmdErr = a.Edit(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(UserMessage(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

// getStatus renders the prompt status: "(user $balance)" or "".
func (a *App) getStatus() string {
	u := a.session.Current()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Username, formatMoney(u.Balance))
}
