package main

import (
	"net/http"

	"github.com/rolodex/rolodex/internal/handler"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/pkg/auth"
)

type routeDeps struct {
	base      *handler.Handler
	metrics   *handler.Metrics
	sessions  auth.SessionValidator
	auth      service.AuthService
	contacts  service.ContactService
	companies service.CompanyService
	rateLimit int
	secure    bool
}

// newRouter registers every API route and wraps the mux with the shared
// middleware chain.
func newRouter(d routeDeps) http.Handler {
	authHandler := handler.NewAuthHandler(d.auth, d.secure)
	contactHandler := handler.NewContactHandler(d.contacts)
	companyHandler := handler.NewCompanyHandler(d.companies)

	requireAuth := auth.RequireAuth(d.sessions)
	limiter := handler.NewAuthLimiter(d.rateLimit, d.metrics.Throttled)

	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, d.metrics.Instrument(pattern, h))
	}

	handle("GET /api/health", http.HandlerFunc(d.base.Health))
	mux.Handle("GET /metrics", d.metrics.Handler())

	// Auth API (credential attempts throttled per IP and action)
	handle("POST /api/auth/signup", limiter.Guard("sign-up", http.HandlerFunc(authHandler.SignUp)))
	handle("POST /api/auth/signin", limiter.Guard("sign-in", http.HandlerFunc(authHandler.SignIn)))
	handle("POST /api/auth/signout", requireAuth(http.HandlerFunc(authHandler.SignOut)))
	handle("GET /api/auth/session", requireAuth(http.HandlerFunc(authHandler.Session)))

	// Contacts API
	handle("GET /api/contacts", requireAuth(http.HandlerFunc(contactHandler.List)))
	handle("POST /api/contacts", requireAuth(http.HandlerFunc(contactHandler.Create)))
	handle("PUT /api/contacts/{id}", requireAuth(http.HandlerFunc(contactHandler.Update)))
	handle("DELETE /api/contacts/{id}", requireAuth(http.HandlerFunc(contactHandler.Delete)))

	// Companies API (no update)
	handle("GET /api/companies", requireAuth(http.HandlerFunc(companyHandler.List)))
	handle("POST /api/companies", requireAuth(http.HandlerFunc(companyHandler.Create)))
	handle("DELETE /api/companies/{id}", requireAuth(http.HandlerFunc(companyHandler.Delete)))

	return handler.RequestLogger(handler.SecurityHeaders(d.base.CORS(mux)))
}
