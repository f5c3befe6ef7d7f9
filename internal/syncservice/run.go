// Package syncservice wires configuration, storage, auth and HTTP serving
// into the studylist sync server.
package syncservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/studylist/studylist-sync/internal/api"
	"github.com/studylist/studylist-sync/internal/auth"
	"github.com/studylist/studylist-sync/internal/config"
	"github.com/studylist/studylist-sync/internal/factory"
	"github.com/studylist/studylist-sync/internal/platform/logger"
)

// Run starts the sync service HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("studylist-sync")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Str("auth_mode", cfg.AuthMode).
		Int("http_port", cfg.HTTPPort).
		Msg("Sync service starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, db, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store unavailable")
		return err
	}
	defer func() { _ = db.Close() }()

	verifier, err := newVerifier(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Cannot build token verifier")
		return err
	}
	if cfg.AuthMode == "static" {
		log.Warn().Msg("Static auth mode accepts only the local development token")
	}

	server := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           api.NewRouter(st, verifier),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

func newVerifier(cfg *config.Config) (auth.Verifier, error) {
	switch cfg.AuthMode {
	case "static":
		return auth.NewStaticVerifier(), nil
	case "identitytoolkit":
		return auth.NewIdentityToolkitVerifier(cfg.FirebaseAPIKey, ""), nil
	default:
		return nil, fmt.Errorf("unsupported AUTH_MODE: %s", cfg.AuthMode)
	}
}
