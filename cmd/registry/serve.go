package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/tpp-registry/internal/migrations"
	"github.com/Simplici0/tpp-registry/internal/seed"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.IsDev() {
				if err := migrations.Up(ctx, a.db, a.cfg.DBDriver); err != nil {
					return err
				}
			}

			stats, err := seed.Run(ctx, a.users, a.service, a.seedConfig(""), a.logger)
			if err != nil {
				return err
			}
			if stats.Inserts > 0 {
				a.logger.Info("startup seed applied", zap.Int("inserts", stats.Inserts))
			}

			srv := newServer(newAuthService(a.users, a.cfg.SessionSecret, a.cfg.SessionTTL), a.users, a.service, a.logger)
			httpServer := &http.Server{
				Addr:              ":" + a.cfg.Port,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", zap.String("addr", httpServer.Addr))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return err
			}
			a.logger.Info("server stopped")
			return nil
		},
	}
}
