// Package token owns the persisted bearer credential. The sqlite metadata
// table is the authoritative store for application reads; a Netscape-format
// cookie file is maintained as a write-only mirror so non-application
// consumers (curl scripts and the like) can present the same credential.
// Both copies are invalidated together on every clear.
package token

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/zoowayss/cursorpool/internal/client/repositories/metadata"
)

const metadataKey = "token"

// cookieMaxAge matches the 30-day expiry the backend expects on the
// mirrored cookie.
const cookieMaxAge = 30 * 24 * time.Hour

// Store persists the single bearer token. Tokens are opaque: no rotation or
// refresh semantics, a token is used until the backend rejects it or the
// user logs out.
type Store struct {
	meta         metadata.Repository
	cookiePath   string
	cookieDomain string

	now func() time.Time
}

func NewStore(meta metadata.Repository, cookiePath, cookieDomain string) *Store {
	return &Store{
		meta:         meta,
		cookiePath:   cookiePath,
		cookieDomain: cookieDomain,
		now:          time.Now,
	}
}

// Save writes the token to the metadata store and rewrites the cookie
// mirror with a fresh 30-day expiry.
func (s *Store) Save(ctx context.Context, tok string) error {
	if err := s.meta.Set(ctx, metadataKey, []byte(tok)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	expires := s.now().Add(cookieMaxAge)
	if err := writeCookieFile(s.cookiePath, s.cookieDomain, tok, expires); err != nil {
		return fmt.Errorf("mirror token cookie: %w", err)
	}
	return nil
}

// Load returns the stored token, or "" when none is present. Only the
// metadata store is consulted; the cookie mirror is never read back.
func (s *Store) Load(ctx context.Context) (string, error) {
	value, err := s.meta.Get(ctx, metadataKey)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return string(value), nil
}

// Clear removes both copies of the token immediately.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.meta.Delete(ctx, metadataKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	if err := os.Remove(s.cookiePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear token cookie: %w", err)
	}
	return nil
}
