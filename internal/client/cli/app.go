package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/client"
	"github.com/dmitrijs2005/artstore/internal/client/config"
	"github.com/dmitrijs2005/artstore/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/artstore/internal/client/services"
	"github.com/dmitrijs2005/artstore/internal/client/session"
	"github.com/dmitrijs2005/artstore/internal/filex"
	"github.com/dmitrijs2005/artstore/internal/logging"
)

// sessionDBName is the sqlite file inside the data directory.
const sessionDBName = "session.db"

type App struct {
	config         *config.Config
	logger         logging.Logger
	session        *session.Store
	authService    services.AuthService
	galleryService services.GalleryService
	profileService services.ProfileService

	// gallery is the last loaded catalog; nil until the first load.
	gallery *services.Gallery

	reader *bufio.Reader
	out    io.Writer

	// busy is held while a user action runs.
	busy sync.Mutex

	db *sql.DB
}

// NewApp wires local storage, the API client and the services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(c.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dir, sessionDBName))
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithLogger(logger),
	)

	store := session.NewStore(metadata.NewSQLiteRepository(db), logger)
	uploads := services.NewUploadService(apiClient, logger)

	a := newApp(c, logger, store,
		services.NewAuthService(apiClient, store, uploads, logger),
		services.NewGalleryService(apiClient, store, logger),
		services.NewProfileService(apiClient, store, uploads, logger),
		os.Stdin, os.Stdout,
	)
	a.db = db
	return a, nil
}

func newApp(
	c *config.Config,
	logger logging.Logger,
	store *session.Store,
	auth services.AuthService,
	gallery services.GalleryService,
	profile services.ProfileService,
	in io.Reader,
	out io.Writer,
) *App {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &App{
		config:         c,
		logger:         logger,
		session:        store,
		authService:    auth,
		galleryService: gallery,
		profileService: profile,
		reader:         bufio.NewReader(in),
		out:            out,
	}
}

// Run restores any saved session and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	unsubscribe := a.session.Subscribe(a.onSessionChange(ctx))
	defer unsubscribe()

	if u, err := a.session.Restore(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	} else if u != nil {
		printlnFn("Welcome back,", u.DisplayName+"!")
	}

	printlnFn("Welcome to the Artstore CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.LoggedIn()
}

// guard runs fn unless another action is still in flight.
func (a *App) guard(fn func() error) error {
	if !a.busy.TryLock() {
		return client.ErrActionPending
	}
	defer a.busy.Unlock()
	return fn()
}

// onSessionChange logs identity and balance transitions.
func (a *App) onSessionChange(ctx context.Context) session.Listener {
	var last *api.User
	return func(u *api.User) {
		switch {
		case u == nil && last != nil:
			a.logger.Info(ctx, "session ended", "username", last.Username)
		case u != nil && (last == nil || last.Username != u.Username):
			a.logger.Info(ctx, "session started", "username", u.Username)
		case u != nil && !last.Balance.Equal(u.Balance):
			a.logger.Info(ctx, "balance changed", "from", last.Balance.String(), "to", u.Balance.String())
		}
		last = u
	}
}

func (a *App) close() {
	if err := a.authService.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing api client", "error", err)
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}
