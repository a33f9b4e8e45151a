package auth

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("invalid auth token")

// Claims is the identity carried by an access token. Roles and balances are
// never embedded; they are re-read from the store on every request.
type Claims struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (*Claims, error)
	Name() string
}

type Options struct {
	TTL    time.Duration
	Issuer string
}
