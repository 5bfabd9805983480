package models

import "time"

// Token is one row of the revocation/audit ledger for issued bearer tokens.
// The raw JWT string is the natural key; it stays unique across all users,
// including revoked and expired rows that have not been swept yet. Revoking
// flips Active; the row itself survives until the expiry sweep deletes it.
type Token struct {
	ID        string
	UserID    int64
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Active    bool
}

// Expired reports whether the token's expiry date has passed. An expired
// token can still be Active; the two states are independent.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
