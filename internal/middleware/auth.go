package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/swiftride/backend/internal/auth"
	"github.com/swiftride/backend/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// UserLoader resolves the token subject to a full user record.
type UserLoader interface {
	GetByID(ctx context.Context, userID primitive.ObjectID) (*entity.User, error)
}

// Authenticator verifies bearer tokens and attaches the resolved user to
// the request context. Requests fail closed: no handler runs without a
// validated, active identity.
type Authenticator struct {
	tokens *auth.TokenManager
	users  UserLoader
	logger *zap.Logger
}

func NewAuthenticator(tokens *auth.TokenManager, users UserLoader, logger *zap.Logger) *Authenticator {
	return &Authenticator{
		tokens: tokens,
		users:  users,
		logger: logger.Named("Authenticator"),
	}
}

// Authenticate is the first-stage gate: missing or malformed header -> 401,
// invalid token -> 401, unknown user -> 401, inactive account -> 403.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := a.tokens.Verify(tokenString)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			a.logger.Warn("Token subject could not be resolved", zap.String("userID", claims.UserID), zap.Error(err))
			writeAuthError(w, http.StatusUnauthorized, "User not found. Invalid token.")
			return
		}

		if !user.IsActive {
			writeAuthError(w, http.StatusForbidden, "Your account is inactive. Please contact support.")
			return
		}

		ctx := context.WithValue(r.Context(), UserCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole is the second-stage gate: the identity must already be
// attached, and its role must be one of the allowed set.
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range allowedRoles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeAuthError(w, http.StatusForbidden, "Access denied. Only "+strings.Join(allowedRoles, ", ")+" can access this resource")
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}
