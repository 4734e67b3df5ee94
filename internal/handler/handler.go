package handler

import (
	"net/http"
	"time"

	"github.com/rolodex/rolodex/internal/repository"
)

// Handler serves the routes that are not tied to a resource: health and
// CORS for the browser front end.
type Handler struct {
	db          repository.DB
	frontendURL string
	started     time.Time
	now         func() time.Time
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL, started: time.Now(), now: time.Now}
}

// CORS allows the configured front end to call the API with its session
// cookie. Other origins get no CORS headers and the browser blocks them.
func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		origin := r.Header.Get("Origin")
		allowed := origin != "" && origin == h.frontendURL
		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Expose-Headers", "Retry-After")
		}

		if r.Method == http.MethodOptions {
			if allowed {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "600")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
