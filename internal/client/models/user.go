// Package models defines the data types exchanged with the account-pool
// backend: users, provisioned accounts, and pagination state.
package models

// Role values returned by the backend. Older backends omit the field
// entirely, in which case the seed-data convention (user id 1 is the
// administrator) still applies.
const RoleAdmin = "admin"

// adminUserID is the distinguished admin identity in the backend's seed
// data. Kept only as a migration shim until every backend reports a role.
const adminUserID = 1

type User struct {
	ID               int64  `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email,omitempty"`
	Domain           string `json:"domain,omitempty"`
	TempEmailAddress string `json:"temp_email_address,omitempty"`
	Role             string `json:"role,omitempty"`
	CreatedAt        int64  `json:"created_at,omitempty"`
	LastLogin        int64  `json:"last_login,omitempty"`
}

// IsAdmin reports whether u may access the admin screens. An explicit role
// wins; the id-based check covers backends that predate the role field.
// Nil-safe.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	if u.Role != "" {
		return u.Role == RoleAdmin
	}
	return u.ID == adminUserID
}
