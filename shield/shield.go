// Package shield provides the HTTP middleware shared by the dictionary API:
// CORS, security headers, body limits, request logging and HEAD handling.
//
// Usage:
//
//	r := chi.NewRouter()
//	for _, mw := range shield.DefaultAPIStack(logger) {
//	    r.Use(mw)
//	}
package shield

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// MaxJSONBody is the request body limit applied by DefaultAPIStack.
const MaxJSONBody = 2 << 20

// DefaultAPIStack returns the middleware stack for the JSON API.
// Order: RequestID → RealIP → RequestLogger → Recoverer → HeadToGet → CORS → SecurityHeaders → MaxJSONBody.
func DefaultAPIStack(logger *slog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(logger),
		middleware.Recoverer,
		HeadToGet,
		CORS(DefaultCORS()),
		SecurityHeaders(DefaultHeaders()),
		MaxBody(MaxJSONBody),
	}
}
