package models

import (
	"strings"
	"time"
)

// Usage flag values, mirrored from the backend's 0/1 convention.
const (
	AccountAvailable = 0
	AccountUsed      = 1
)

// Display statuses returned by StatusText.
const (
	StatusAvailable = "available"
	StatusUsed      = "used"
	StatusExpired   = "expired"
)

// Account is one provisioned credential from the pool. Times are unix
// seconds; IsUsed and IsDeleted are 0/1 flags.
type Account struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	CreateTime int64  `json:"create_time"`
	ExpireTime int64  `json:"expire_time"`
	IsUsed     int    `json:"is_used"`
	IsDeleted  int    `json:"is_deleted"`
	UserID     int64  `json:"user_id"`
}

// Expired reports whether the account is past its expiry at the given
// instant. A missing expiry counts as expired.
func (a *Account) Expired(now time.Time) bool {
	if a.ExpireTime == 0 {
		return true
	}
	return now.Unix() > a.ExpireTime
}

// FullName joins the first and last name with a single space, trimming
// surrounding whitespace. Both parts empty yields "".
func FullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

// FullName returns the account holder's display name.
func (a *Account) FullName() string {
	return FullName(a.FirstName, a.LastName)
}

// StatusText returns the display status: expired accounts report "expired"
// regardless of the usage flag.
func (a *Account) StatusText(now time.Time) string {
	if a.Expired(now) {
		return StatusExpired
	}
	if a.IsUsed == AccountUsed {
		return StatusUsed
	}
	return StatusAvailable
}
