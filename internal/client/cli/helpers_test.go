package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/artstore/internal/api"
	"github.com/dmitrijs2005/artstore/internal/client/config"
	"github.com/dmitrijs2005/artstore/internal/client/models"
	"github.com/dmitrijs2005/artstore/internal/client/services"
	"github.com/dmitrijs2005/artstore/internal/client/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}
	return bufio.NewReader(strings.NewReader(sb.String()))
}

// stubPasswords makes getPassword return the given values in order.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	t.Cleanup(func() { getPassword = orig })
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(pws) == 0 {
			return nil, io.EOF
		}
		pw := pws[0]
		pws = pws[1:]
		return []byte(pw), nil
	}
}

type memRepo struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memRepo) Get(_ context.Context, k string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[k], nil
}
func (m *memRepo) Set(_ context.Context, k string, v []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[k] = v
	return nil
}
func (m *memRepo) Delete(_ context.Context, k string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, k)
	return nil
}

type testApp struct {
	*App
	out     *bytes.Buffer
	auth    *fakeAuth
	gallery *fakeGallery
	profile *fakeProfile
}

func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	store := session.NewStore(&memRepo{data: map[string][]byte{}}, nil)
	out := &bytes.Buffer{}
	fa := &fakeAuth{store: store}
	fg := &fakeGallery{store: store}
	fp := &fakeProfile{store: store}

	cfg := &config.Config{}
	cfg.LoadDefaults()

	a := newApp(cfg, nil, store, fa, fg, fp, strings.NewReader(""), out)
	a.reader = readerFromLines(lines...)
	return &testApp{App: a, out: out, auth: fa, gallery: fg, profile: fp}
}

func (ta *testApp) login(t *testing.T, balance int64) {
	t.Helper()
	require.NoError(t, ta.session.Set(context.Background(), &api.User{
		Username: "ana", DisplayName: "Ana", Balance: decimal.NewFromInt(balance),
	}))
}

// ------------ fakes ------------

type fakeAuth struct {
	store *session.Store

	loginUser string
	loginPass string
	loginErr  error

	reg    services.RegisterRequest
	regRes *services.RegisterResult
	regErr error

	logoutCalled bool
	closed       bool
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (*api.User, error) {
	f.loginUser, f.loginPass = username, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u := &api.User{Username: username, DisplayName: "Ana", Balance: decimal.NewFromInt(500)}
	_ = f.store.Set(ctx, u)
	return u, nil
}

func (f *fakeAuth) Register(_ context.Context, req services.RegisterRequest) (*services.RegisterResult, error) {
	f.reg = req
	if f.regErr != nil {
		return nil, f.regErr
	}
	if f.regRes != nil {
		return f.regRes, nil
	}
	return &services.RegisterResult{Message: "ok"}, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalled = true
	return f.store.Logout(ctx)
}

func (f *fakeAuth) Close() error { f.closed = true; return nil }

type fakeGallery struct {
	store *session.Store

	artworks []api.Artwork
	loadErr  error
	loads    int

	purchaseID   int64
	purchaseBal  decimal.Decimal
	purchaseErr  error
	purchaseCall int

	purchased    []api.Artwork
	purchasedErr error
}

func (f *fakeGallery) Load(context.Context) (*services.Gallery, error) {
	f.loads++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return services.NewGallery(f.artworks), nil
}

func (f *fakeGallery) Purchase(ctx context.Context, g *services.Gallery, id int64) (*models.PurchaseResult, error) {
	f.purchaseCall++
	f.purchaseID = id
	if f.purchaseErr != nil {
		return nil, f.purchaseErr
	}
	_ = f.store.Update(ctx, func(u *api.User) { u.Balance = f.purchaseBal })
	g.MarkSold(id)
	return &models.PurchaseResult{ArtworkID: id, NewBalance: f.purchaseBal}, nil
}

func (f *fakeGallery) Purchased(context.Context) ([]api.Artwork, models.PurchasedSummary, error) {
	if f.purchasedErr != nil {
		return nil, models.PurchasedSummary{}, f.purchasedErr
	}
	return f.purchased, models.Summarize(f.purchased), nil
}

type fakeProfile struct {
	store *session.Store

	getRet *api.User
	getErr error

	topupAmount decimal.Decimal
	topupRet    decimal.Decimal
	topupErr    error
	topupCalls  int

	editReq services.EditRequest
	editRes *services.EditResult
	editErr error
}

func (f *fakeProfile) Get(context.Context) (*api.User, error) {
	return f.getRet, f.getErr
}

func (f *fakeProfile) Topup(_ context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	f.topupCalls++
	f.topupAmount = amount
	return f.topupRet, f.topupErr
}

func (f *fakeProfile) Edit(_ context.Context, req services.EditRequest) (*services.EditResult, error) {
	f.editReq = req
	if f.editErr != nil {
		return nil, f.editErr
	}
	if f.editRes != nil {
		return f.editRes, nil
	}
	return &services.EditResult{Message: "ok"}, nil
}
