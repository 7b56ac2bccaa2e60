// Package session holds the client's authentication state: the current
// user, the authenticated flag and the loading flag. The session is an
// explicitly constructed object injected into the screens that need it;
// there is no package-level instance.
//
// Auth resolution is funnelled through a single in-flight-deduplicated
// resolver keyed by the current token, so the mount-time auto-login and any
// screen-triggered refresh join the same backend call instead of racing.
package session

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/zoowayss/cursorpool/internal/client/models"
	"github.com/zoowayss/cursorpool/internal/common"
	"github.com/zoowayss/cursorpool/internal/logging"
)

// State is an immutable snapshot of the session. On every path the session
// drives itself, Authenticated implies User != nil; UpdateUser performs no
// validation and can break that if handed nil deliberately.
type State struct {
	User          *models.User
	Authenticated bool
	Loading       bool
}

type userAPI interface {
	UserInfo(ctx context.Context) (*models.User, error)
}

type tokenSource interface {
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

type Session struct {
	mu            sync.Mutex
	user          *models.User
	authenticated bool
	loading       bool

	api    userAPI
	tokens tokenSource
	log    logging.Logger

	group    singleflight.Group
	autoOnce sync.Once
}

func New(api userAPI, tokens tokenSource, log logging.Logger) *Session {
	return &Session{api: api, tokens: tokens, log: log.With("component", "session")}
}

// Snapshot returns the current state. Callers must not retain it across
// suspension points; the guard re-reads on every evaluation.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{User: s.user, Authenticated: s.authenticated, Loading: s.loading}
}

// resolve performs the "who am I" call, deduplicated per token: concurrent
// resolves for the same token share one backend request and one outcome.
func (s *Session) resolve(ctx context.Context, tok string) (*models.User, error) {
	v, err, _ := s.group.Do(tok, func() (any, error) {
		return s.api.UserInfo(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.User), nil
}

// FetchUserInfo refreshes the session from the backend. Without a stored
// token it resolves to unauthenticated immediately, with no network call,
// and reports common.ErrNoToken. On failure the session turns
// unauthenticated but the token is left alone; only AutoLogin reacts to a
// dead token by removing it. The loading flag is reset on every exit path.
func (s *Session) FetchUserInfo(ctx context.Context) (*models.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	tok, err := s.tokens.Load(ctx)
	if err != nil || tok == "" {
		s.mu.Lock()
		s.user = nil
		s.authenticated = false
		s.mu.Unlock()
		if err == nil {
			err = common.ErrNoToken
		}
		return nil, err
	}

	user, err := s.resolve(ctx, tok)
	if err != nil {
		s.log.Warn(ctx, "user info fetch failed", "error", err)
		s.mu.Lock()
		s.authenticated = false
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
	return user, nil
}

// UpdateUser overwrites the held user. A non-nil user also marks the
// session authenticated. No validation of shape is performed.
func (s *Session) UpdateUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	if user != nil {
		s.authenticated = true
	}
}

// Clear resets to unauthenticated. It does not touch the token store;
// logout must clear the token separately.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.authenticated = false
}

// AutoLogin validates a stored token once per process lifetime. Any failure
// (rejected token, network or server error) purges the token and leaves the
// session unauthenticated. Subsequent calls are no-ops.
func (s *Session) AutoLogin(ctx context.Context) error {
	var err error
	s.autoOnce.Do(func() { err = s.autoLogin(ctx) })
	return err
}

func (s *Session) autoLogin(ctx context.Context) error {
	tok, err := s.tokens.Load(ctx)
	if err != nil || tok == "" {
		s.mu.Lock()
		s.authenticated = false
		s.loading = false
		s.mu.Unlock()
		return err
	}

	s.setLoading(true)
	defer s.setLoading(false)

	user, err := s.resolve(ctx, tok)
	if err != nil {
		s.log.Warn(ctx, "auto-login failed, purging token", "error", err)
		_ = s.tokens.Clear(ctx)
		s.mu.Lock()
		s.user = nil
		s.authenticated = false
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
