package middleware

import (
	"context"

	"github.com/swiftride/backend/internal/entity"
)

// ContextKey is a private key type for request context values, avoiding
// collisions with other packages.
type ContextKey string

const (
	// UserCtxKey holds the authenticated *entity.User resolved by Authenticate.
	UserCtxKey = ContextKey("user")

	// RequestIDCtxKey holds the per-request id assigned by RequestLogger.
	RequestIDCtxKey = ContextKey("request_id")
)

// UserFromContext retrieves the authenticated user attached by Authenticate.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(*entity.User)
	return user, ok
}
