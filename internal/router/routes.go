package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swiftride/backend/internal/entity"
	"github.com/swiftride/backend/internal/handler"
	"github.com/swiftride/backend/internal/middleware"
)

// Setup wires all routes. Driver routes sit behind both the authentication
// and the DRIVER role gates; registration only needs authentication because
// the account is still a RIDER at that point.
func Setup(r *chi.Mux, authn *middleware.Authenticator, authHandler *handler.AuthHandler, profileHandler *handler.ProfileHandler, driverHandler *handler.DriverHandler) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Public auth routes
	r.Post("/api/auth/signup", authHandler.Signup)
	r.Post("/api/auth/login", authHandler.Login)

	// Protected routes (require JWT authentication)
	r.Group(func(authRouter chi.Router) {
		authRouter.Use(authn.Authenticate)

		authRouter.Get("/api/profile/{userId}/welcome", profileHandler.Welcome)
		authRouter.Post("/api/driver/register", driverHandler.Register)

		// Driver-only routes
		authRouter.Group(func(driverRouter chi.Router) {
			driverRouter.Use(middleware.RequireRole(entity.RoleDriver))

			driverRouter.Get("/api/driver/me", driverHandler.Me)
			driverRouter.Patch("/api/driver/me", driverHandler.Update)
			driverRouter.Patch("/api/driver/me/status", driverHandler.UpdateStatus)
			driverRouter.Get("/api/driver/me/completion", driverHandler.Completion)
		})
	})
}
