package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zoowayss/cursorpool/internal/client/api"
	"github.com/zoowayss/cursorpool/internal/client/cache"
	"github.com/zoowayss/cursorpool/internal/client/config"
	"github.com/zoowayss/cursorpool/internal/client/models"
	"github.com/zoowayss/cursorpool/internal/client/repositories/metadata"
	"github.com/zoowayss/cursorpool/internal/client/session"
	"github.com/zoowayss/cursorpool/internal/client/store"
	"github.com/zoowayss/cursorpool/internal/client/token"
	"github.com/zoowayss/cursorpool/internal/common"
	"github.com/zoowayss/cursorpool/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestApp builds a fully wired App against an httptest backend and an
// in-memory sqlite store. Input and output run over buffers.
func newTestApp(t *testing.T, handler http.HandlerFunc) (*App, *bytes.Buffer, *token.Store) {
	t.Helper()
	ctx := context.Background()

	db, err := store.Open(ctx, "file:cli_tests_"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := testLogger()
	meta := metadata.NewSQLiteRepository(db)
	tokens := token.NewStore(meta, filepath.Join(t.TempDir(), "cookies.txt"), "127.0.0.1")
	client := api.New(srv.URL, time.Second, tokens, log)
	sess := session.New(client, tokens, log)

	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := &App{
		config:  cfg,
		log:     log,
		api:     client,
		session: sess,
		tokens:  tokens,
		cache:   cache.New(db),
		db:      db,
		reader:  bufio.NewReader(strings.NewReader("")),
		out:     &out,
		width:   func() int { return 120 },
		now:     func() time.Time { return time.Unix(1_700_000_000, 0) },
	}
	client.SetUnauthorizedHook(a.handleUnauthorized)
	return a, &out, tokens
}

func signIn(a *App, u *models.User) {
	a.session.UpdateUser(u)
}

func TestList_PaginationEchoIsAuthoritative(t *testing.T) {
	a, out, tokens := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/accounts", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		_, _ = w.Write([]byte(`{"status":"success","accounts":[
			{"id":11,"email":"a@x.com","password":"p1","expire_time":1700003600,"is_used":1},
			{"id":12,"email":"b@x.com","password":"p2","expire_time":1700003600,"is_used":0}
		],"page":2,"per_page":10,"total":23}`))
	})
	require.NoError(t, tokens.Save(context.Background(), "tok"))
	signIn(a, &models.User{ID: 7, Username: "bob"})

	require.NoError(t, a.List(context.Background(), []string{"2"}))

	require.Equal(t, models.Page{Current: 2, PageSize: 10, Total: 23}, a.accounts.page)
	require.Equal(t, listStats{Total: 23, Used: 1, Available: 1}, a.accounts.stats)
	require.Contains(t, out.String(), "page 2/3 (23 total)")
}

func TestList_WritesCache(t *testing.T) {
	a, _, tokens := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","accounts":[
			{"id":11,"email":"a@x.com","password":"p1","expire_time":1700003600}
		],"page":1,"per_page":10,"total":1}`))
	})
	require.NoError(t, tokens.Save(context.Background(), "tok"))
	signIn(a, &models.User{ID: 7, Username: "bob"})

	require.NoError(t, a.List(context.Background(), nil))

	cached, err := a.cache.Load(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, cached, 1)
	require.Equal(t, "p1", cached[0].Password)
}

func TestUse_ExpiredAccountRefusedLocally(t *testing.T) {
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("expired toggle must not reach the backend")
	})
	signIn(a, &models.User{ID: 7, Username: "bob"})
	a.accounts.setPage(&api.AccountPage{
		Accounts: []*models.Account{{ID: 5, Email: "e@x.com", ExpireTime: 1}},
		Page:     1, PerPage: 10, Total: 1,
	})

	require.NoError(t, a.Use(context.Background(), []string{"5", "on"}))
	require.Contains(t, out.String(), "expired")
}

func TestUse_TogglesAfterAck(t *testing.T) {
	a, _, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/account/5/status", r.URL.Path)
		require.Equal(t, http.MethodPut, r.Method)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})
	signIn(a, &models.User{ID: 7, Username: "bob"})
	a.accounts.setPage(&api.AccountPage{
		Accounts: []*models.Account{{ID: 5, Email: "e@x.com", ExpireTime: 1_700_003_600}},
		Page:     1, PerPage: 10, Total: 1,
	})

	require.NoError(t, a.Use(context.Background(), []string{"5", "on"}))
	require.Equal(t, models.AccountUsed, a.accounts.find(5).IsUsed)
	require.Equal(t, listStats{Total: 1, Used: 1, Available: 0}, a.accounts.stats)
}

func TestDelete_ConfirmedRemovesRow(t *testing.T) {
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/account/5/delete", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"success"}`))
	})
	signIn(a, &models.User{ID: 7, Username: "bob"})
	a.reader = bufio.NewReader(strings.NewReader("y\n"))
	a.accounts.setPage(&api.AccountPage{
		Accounts: []*models.Account{
			{ID: 5, Email: "e@x.com", ExpireTime: 1_700_003_600, IsUsed: 1},
			{ID: 6, Email: "f@x.com", ExpireTime: 1_700_003_600},
		},
		Page: 1, PerPage: 10, Total: 2,
	})

	require.NoError(t, a.Delete(context.Background(), []string{"5"}))

	require.Nil(t, a.accounts.find(5))
	require.Equal(t, listStats{Total: 1, Used: 0, Available: 1}, a.accounts.stats)
	require.Contains(t, out.String(), "account 5 deleted")
}

func TestDelete_DeclinedDoesNothing(t *testing.T) {
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("declined delete must not reach the backend")
	})
	signIn(a, &models.User{ID: 7, Username: "bob"})
	a.reader = bufio.NewReader(strings.NewReader("n\n"))
	a.accounts.setPage(&api.AccountPage{
		Accounts: []*models.Account{{ID: 5, Email: "e@x.com", ExpireTime: 1_700_003_600}},
		Page:     1, PerPage: 10, Total: 1,
	})

	require.NoError(t, a.Delete(context.Background(), []string{"5"}))
	require.NotNil(t, a.accounts.find(5))
	require.Contains(t, out.String(), "cancelled")
}

func TestGuard_AdminBouncesRegularUserHome(t *testing.T) {
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded admin command must not reach the backend")
	})
	signIn(a, &models.User{ID: 7, Username: "bob"})

	require.NoError(t, a.Admin(context.Background(), []string{"users"}))
	require.Contains(t, out.String(), "admin role")
	require.Contains(t, out.String(), "Signed in as bob")
}

func TestGuard_UnauthenticatedSentToLogin(t *testing.T) {
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("guarded command must not reach the backend")
	})

	require.NoError(t, a.List(context.Background(), nil))
	require.Contains(t, out.String(), "please sign in first")
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	a, out, tokens := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	require.NoError(t, tokens.Save(context.Background(), "stale"))
	signIn(a, &models.User{ID: 7, Username: "bob"})

	err := a.List(context.Background(), nil)
	require.Error(t, err)

	require.False(t, a.session.Snapshot().Authenticated)
	tok, _ := tokens.Load(context.Background())
	require.Empty(t, tok)
	require.Contains(t, out.String(), "session expired")
}

func TestAdminDeleted_TogglesAndRefetches(t *testing.T) {
	var gotShowDeleted []string
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/admin/accounts", r.URL.Path)
		gotShowDeleted = append(gotShowDeleted, r.URL.Query().Get("show_deleted"))
		_, _ = w.Write([]byte(`{"status":"success","accounts":[
			{"id":1,"email":"live@x.com","expire_time":1700003600},
			{"id":2,"email":"gone@x.com","expire_time":1700003600,"is_deleted":1}
		],"page":1,"per_page":10,"total":2}`))
	})
	signIn(a, &models.User{ID: 1, Username: "root", Role: models.RoleAdmin})

	require.NoError(t, a.Admin(context.Background(), []string{"deleted", "on"}))
	require.Equal(t, []string{"true"}, gotShowDeleted)
	require.Contains(t, out.String(), "deleted included")
	require.Contains(t, out.String(), "gone@x.com")

	require.NoError(t, a.Admin(context.Background(), []string{"deleted", "off"}))
	require.Equal(t, []string{"true", "false"}, gotShowDeleted)
}

func TestEditProfile_BlankPasswordKept(t *testing.T) {
	var gotBody string
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{"status":"success","user":{"id":7,"username":"bob","email":"new@x.com"}}`))
	})
	signIn(a, &models.User{ID: 7, Username: "bob", Email: "old@x.com"})
	a.reader = bufio.NewReader(strings.NewReader("new@x.com\n\n\n"))

	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return nil, nil }

	require.NoError(t, a.EditProfile(context.Background()))
	require.NotContains(t, gotBody, "password")
	require.Contains(t, gotBody, "new@x.com")
	require.Contains(t, out.String(), "profile saved")
	require.Equal(t, "new@x.com", a.session.Snapshot().User.Email)
}

func TestCached_NoTokenReportsErrNoToken(t *testing.T) {
	a, out, _ := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("cached view must not reach the backend")
	})
	signIn(a, &models.User{ID: 7, Username: "bob"})

	err := a.Cached(context.Background())
	require.ErrorIs(t, err, common.ErrNoToken)
	require.Contains(t, out.String(), "no token available")
}

func TestCached_ReportsEmptyCache(t *testing.T) {
	a, out, tokens := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("cached view must not reach the backend")
	})
	require.NoError(t, tokens.Save(context.Background(), "tok"))
	signIn(a, &models.User{ID: 7, Username: "bob"})

	require.NoError(t, a.Cached(context.Background()))
	require.Contains(t, out.String(), "nothing cached yet")
}
