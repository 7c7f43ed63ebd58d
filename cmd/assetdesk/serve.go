package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/erazemk/assetdesk/internal/api"
	"github.com/erazemk/assetdesk/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the JSON API.

On first start the earliest admin gets a generated password, printed once.
If there is no admin at all, one named "Admin" is created with --admin-email.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().StringP("addr", "a", ":8080", "listen address")
	cmd.Flags().String("admin-email", "admin@assetdesk.local", "email of the admin created when there is none")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	d, database, err := a.openDesk(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open database")
		return err
	}
	defer database.Close()

	creds, err := ensureAdmin(ctx, d, a.cfg.Admin.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to prepare admin account")
		return err
	}
	if creds != nil {
		printInitResult(os.Stdout, a.cfg.Database.Path, creds)
	}

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(ctx, database)
	if err != nil {
		log.Error().Err(err).Msg("failed to get JWT secret")
		return err
	}

	if n, err := store.PurgeExpiredTokens(ctx, database, time.Now()); err != nil {
		log.Warn().Err(err).Msg("failed to purge revoked tokens")
	} else if n > 0 {
		log.Info().Int64("purged", n).Msg("expired token revocations removed")
	}

	handler := api.NewRouter(d, jwtSecret, api.Options{
		AllowedOrigins: a.cfg.CORS.AllowedOrigins,
		TokenTTL:       a.cfg.Auth.TokenTTL,
	})

	server := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: a.cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       a.cfg.HTTP.ReadTimeout,
		WriteTimeout:      a.cfg.HTTP.WriteTimeout,
		IdleTimeout:       a.cfg.HTTP.IdleTimeout,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	go func() {
		sig := <-quit
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server forced to shutdown")
		}
	}()

	log.Info().Str("addr", server.Addr).Str("environment", a.cfg.Environment).Msg("server started")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
		return err
	}

	log.Info().Msg("server stopped, closing database")
	return nil
}
