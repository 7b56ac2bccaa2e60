// Package accounts persists the last fetched account page in sqlite so the
// list survives a backend outage. Passwords are stored sealed; the caller
// owns encryption and hands the repository opaque cipher/nonce pairs.
package accounts

import (
	"context"
	"fmt"

	"github.com/zoowayss/cursorpool/internal/client/models"
	"github.com/zoowayss/cursorpool/internal/dbx"
)

// Row is one cached account. Password holds ciphertext, never plaintext.
type Row struct {
	Account        models.Account
	PasswordCipher []byte
	PasswordNonce  []byte
}

type Repository interface {
	Upsert(ctx context.Context, row *Row) error
	List(ctx context.Context) ([]*Row, error)
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
}

// SQLiteRepository implements Repository over a DBTX (either *sql.DB or
// *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, row *Row) error {
	query := `INSERT INTO accounts
			(id, email, password_cipher, password_nonce, first_name, last_name,
			 create_time, expire_time, is_used, user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			password_cipher = excluded.password_cipher,
			password_nonce = excluded.password_nonce,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			create_time = excluded.create_time,
			expire_time = excluded.expire_time,
			is_used = excluded.is_used,
			user_id = excluded.user_id
	`
	a := row.Account
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Email, row.PasswordCipher, row.PasswordNonce, a.FirstName, a.LastName,
		a.CreateTime, a.ExpireTime, a.IsUsed, a.UserID)
	if err != nil {
		return fmt.Errorf("upsert account %d: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*Row, error) {
	query := `SELECT id, email, password_cipher, password_nonce, first_name, last_name,
			create_time, expire_time, is_used, user_id
		FROM accounts ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select accounts: %w", err)
	}
	defer rows.Close()

	var result []*Row
	for rows.Next() {
		var row Row
		a := &row.Account
		if err := rows.Scan(&a.ID, &a.Email, &row.PasswordCipher, &row.PasswordNonce,
			&a.FirstName, &a.LastName, &a.CreateTime, &a.ExpireTime, &a.IsUsed, &a.UserID); err != nil {
			return nil, fmt.Errorf("scan account row: %w", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate account rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete account %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM accounts`)
	if err != nil {
		return fmt.Errorf("clear accounts: %w", err)
	}
	return nil
}
