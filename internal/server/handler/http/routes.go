package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/parshpawar/ezoCodingTask/internal/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the API.
// It applies request logging and bearer token authentication, and
// mounts the account and roster endpoints under /api.
//
// Routes:
//
//	POST /api/signup    → authHandler.Register
//	POST /api/signin    → authHandler.Login
//	POST /api/signout   → authHandler.Logout  (protected)
//	GET  /api/session   → authHandler.Session (protected)
//	GET  /api/records   → recordsHandler.List (protected)
func NewRouter(
	authHandler *AuthHandler,
	recordsHandler *RecordsHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Group(func(r chi.Router) {
			// Only allow requests with Content-Type: application/json
			r.Use(chiMiddleware.AllowContentType("application/json"))
			r.Post("/signup", authHandler.Register)
			r.Post("/signin", authHandler.Login)
		})

		// Protected group: requires a live bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(verifier))
			r.Post("/signout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
			r.Get("/records", recordsHandler.List)
		})
	})

	return r
}
