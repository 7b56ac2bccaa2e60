package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zoowayss/cursorpool/internal/client/api"
	"github.com/zoowayss/cursorpool/internal/client/cache"
	"github.com/zoowayss/cursorpool/internal/client/config"
	"github.com/zoowayss/cursorpool/internal/client/models"
	"github.com/zoowayss/cursorpool/internal/client/repositories/metadata"
	"github.com/zoowayss/cursorpool/internal/client/session"
	"github.com/zoowayss/cursorpool/internal/client/store"
	"github.com/zoowayss/cursorpool/internal/client/token"
	"github.com/zoowayss/cursorpool/internal/logging"
)

// App wires the terminal front end together: the API client, the session,
// the token store and the local account cache. One App per process.
type App struct {
	config  *config.Config
	log     logging.Logger
	api     *api.Client
	session *session.Session
	tokens  *token.Store
	cache   *cache.Cache
	db      *sql.DB

	accounts accountList
	admin    adminPanel

	reader *bufio.Reader
	out    io.Writer
	width  func() int
	now    func() time.Time
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := store.Open(ctx, filepath.Join(cfg.DataDir, "cursorpool.db"))
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("parsing base url: %w", err)
	}

	meta := metadata.NewSQLiteRepository(db)
	tokens := token.NewStore(meta, cfg.CookiePath(), base.Hostname())
	client := api.New(cfg.BaseURL, cfg.RequestTimeout, tokens, log)
	sess := session.New(client, tokens, log)

	a := &App{
		config:  cfg,
		log:     log,
		api:     client,
		session: sess,
		tokens:  tokens,
		cache:   cache.New(db),
		db:      db,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		width:   termWidth,
		now:     time.Now,
	}
	client.SetUnauthorizedHook(a.handleUnauthorized)
	return a, nil
}

// handleUnauthorized runs whenever the backend answers 401. The API client
// has already purged the token; here we drop the in-memory session so the
// guard routes the next command to the login screen.
func (a *App) handleUnauthorized() {
	a.session.Clear()
	fmt.Fprintln(a.out, "session expired, please sign in again")
}

func (a *App) Close() error {
	return a.db.Close()
}

// Run validates any stored token, shows the appropriate entry screen and
// hands control to the REPL. It returns when the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "cursorpool CLI (type 'help' for commands)")

	if err := a.session.AutoLogin(ctx); err != nil {
		a.log.Debug(ctx, "auto-login", "error", err)
	}
	if st := a.session.Snapshot(); st.Authenticated {
		if err := a.Home(ctx); err != nil {
			a.log.Error(ctx, "home screen", "error", err)
		}
	} else {
		fmt.Fprintln(a.out, "sign in with 'login' or create an account with 'register'")
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin), a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().Authenticated
}

func (a *App) status() string {
	st := a.session.Snapshot()
	if st.User == nil {
		return ""
	}
	s := st.User.Username
	if st.User.IsAdmin() {
		s += " " + models.RoleAdmin
	}
	return fmt.Sprintf("(%s)", s)
}
