package shield

import "net/http"

// CORSConfig lists the Access-Control-* values sent on every response.
type CORSConfig struct {
	AllowOrigin  string
	AllowHeaders string
	AllowMethods string
}

// DefaultCORS allows any origin, as the browser frontend is served separately.
func DefaultCORS() CORSConfig {
	return CORSConfig{
		AllowOrigin:  "*",
		AllowHeaders: "Content-Type, Authorization",
		AllowMethods: "GET, PUT, POST, DELETE, OPTIONS",
	}
}

// CORS sets the configured headers and answers preflight requests with
// 204 without reaching the router.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", cfg.AllowOrigin)
			h.Set("Access-Control-Allow-Headers", cfg.AllowHeaders)
			h.Set("Access-Control-Allow-Methods", cfg.AllowMethods)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
