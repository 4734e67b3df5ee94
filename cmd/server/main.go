package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rolodex/rolodex/internal/handler"
	"github.com/rolodex/rolodex/internal/logging"
	"github.com/rolodex/rolodex/internal/repository"
	"github.com/rolodex/rolodex/internal/service"
	"github.com/rolodex/rolodex/pkg/auth"
)

const sessionPurgeInterval = time.Hour

func main() {
	_ = godotenv.Load()
	logging.Setup()

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		logging.Fatal("invalid configuration", "error", err)
	}
	if cfg.SessionSecret == devSessionSecret {
		slog.Warn("SESSION_SECRET not set, using development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	contactRepo := repository.NewPgContactRepository(pool)
	companyRepo := repository.NewPgCompanyRepository(pool)

	sessionService := service.NewSessionService(sessionRepo, auth.SessionSecretBytes(cfg.SessionSecret), cfg.SessionTTL)
	authService := service.NewAuthService(userRepo, sessionService)
	contactService := service.NewContactService(contactRepo, companyRepo)
	companyService := service.NewCompanyService(companyRepo)

	router := newRouter(routeDeps{
		base:      handler.New(userRepo, cfg.FrontendURL),
		metrics:   handler.NewMetrics(),
		sessions:  sessionService,
		auth:      authService,
		contacts:  contactService,
		companies: companyService,
		rateLimit: cfg.AuthRateLimit,
		secure:    cfg.SecureCookie,
	})

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go purgeSessions(ctx, sessionService, sessionPurgeInterval)

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// purgeSessions deletes expired session rows every interval until ctx is done.
func purgeSessions(ctx context.Context, s *service.SessionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				slog.Error("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions purged", "count", n)
			}
		}
	}
}
