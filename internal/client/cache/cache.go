// Package cache keeps the last successfully fetched account page in the
// local database so the list can still be shown when the backend is
// unreachable. Account passwords are sealed under a key derived from the
// current bearer token: whoever holds the token can read the cache, a
// rotated token simply fails to open it.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zoowayss/cursorpool/internal/client/models"
	"github.com/zoowayss/cursorpool/internal/client/repositories/accounts"
	"github.com/zoowayss/cursorpool/internal/client/repositories/metadata"
	"github.com/zoowayss/cursorpool/internal/common"
	"github.com/zoowayss/cursorpool/internal/cryptox"
	"github.com/zoowayss/cursorpool/internal/dbx"
)

const saltKey = "cache_salt"

type Cache struct {
	db *sql.DB
}

func New(db *sql.DB) *Cache {
	return &Cache{db: db}
}

// StorePage replaces the cached view with the given accounts, sealing each
// password with the token-derived key.
func (c *Cache) StorePage(ctx context.Context, tok string, accs []*models.Account) error {
	salt, err := c.ensureSalt(ctx)
	if err != nil {
		return err
	}
	key := cryptox.KeyFromToken(tok, salt)

	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := accounts.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		for _, a := range accs {
			cipher, nonce, err := cryptox.Seal([]byte(a.Password), key)
			if err != nil {
				return fmt.Errorf("seal password for account %d: %w", a.ID, err)
			}
			stripped := *a
			stripped.Password = ""
			row := &accounts.Row{Account: stripped, PasswordCipher: cipher, PasswordNonce: nonce}
			if err := repo.Upsert(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns the cached accounts with passwords opened using the current
// token. A token that no longer matches the sealed data yields
// common.ErrCacheKeyMismatch; an empty cache yields common.ErrNotFound.
func (c *Cache) Load(ctx context.Context, tok string) ([]*models.Account, error) {
	meta := metadata.NewSQLiteRepository(c.db)
	salt, err := meta.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		return nil, common.ErrNotFound
	}
	key := cryptox.KeyFromToken(tok, salt)

	rows, err := accounts.NewSQLiteRepository(c.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrNotFound
	}

	result := make([]*models.Account, 0, len(rows))
	for _, row := range rows {
		plaintext, err := cryptox.Open(row.PasswordCipher, row.PasswordNonce, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrCacheKeyMismatch, err)
		}
		a := row.Account
		a.Password = string(plaintext)
		result = append(result, &a)
	}
	return result, nil
}

// Remove drops one account from the cached view, e.g. after a soft-delete
// was acknowledged by the backend.
func (c *Cache) Remove(ctx context.Context, id int64) error {
	return accounts.NewSQLiteRepository(c.db).Delete(ctx, id)
}

// Clear empties the cached view and forgets the salt.
func (c *Cache) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := accounts.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).Delete(ctx, saltKey)
	})
}

func (c *Cache) ensureSalt(ctx context.Context) ([]byte, error) {
	meta := metadata.NewSQLiteRepository(c.db)
	salt, err := meta.Get(ctx, saltKey)
	if err != nil {
		return nil, err
	}
	if salt != nil {
		return salt, nil
	}
	salt = common.GenerateRandByteArray(32)
	if err := meta.Set(ctx, saltKey, salt); err != nil {
		return nil, err
	}
	return salt, nil
}
