package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nekogravitycat/smartpark-backend/internal/app"
	"github.com/nekogravitycat/smartpark-backend/internal/auth"
	"github.com/nekogravitycat/smartpark-backend/internal/config"
	"github.com/nekogravitycat/smartpark-backend/internal/kv"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	if cfg.AdminPasswordBcrypt != "" {
		if err := auth.ValidateHash(cfg.AdminPasswordBcrypt); err != nil {
			return fmt.Errorf("ADMIN_PASSWORD_BCRYPT: %w", err)
		}
	} else {
		log.Warn(ctx, "ADMIN_PASSWORD_BCRYPT is not set, anyone may log in as admin")
	}

	store, closeStore, err := kv.Open(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
	}
	defer closeStore()

	container := app.NewContainer(ctx, app.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		Store:             store,
		JWTSecret:         cfg.JWTSecret,
		JWTTTL:            cfg.JWTAccessTokenTTL,
		AdminPasswordHash: cfg.AdminPasswordBcrypt,
		Rand:              app.SeededRand(cfg.Seed),
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           container.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server running",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("store", cfg.Store.Driver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server forced to shutdown", log.Err(err))
	}

	log.Info(shutdownCtx, "server exited gracefully")
	return nil
}
