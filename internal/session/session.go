package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// CookieName is the browser cookie carrying the session token.
const CookieName = "sessionid"

var ErrInvalidToken = errors.New("invalid session token")

// Store maps opaque session tokens to user ids.
type Store interface {
	NewSession(ctx context.Context, userID string) (string, error)
	// UserIDByToken reports ok=false for unknown, expired or revoked tokens.
	UserIDByToken(ctx context.Context, token string) (userID string, ok bool, err error)
	DeleteSession(ctx context.Context, token string) error
}

func newToken() string {
	return uuid.NewString()
}
