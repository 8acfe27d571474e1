package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notely/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := ctx.openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := db.Migrate(runCtx); err != nil {
				return err
			}

			srv, err := server.New(cfg, db, ctx.logger)
			if err != nil {
				return err
			}
			srv.RegisterFiberRoutes()

			errCh := make(chan error, 1)
			go func() {
				addr := fmt.Sprintf(":%d", cfg.Server.Port)
				ctx.logger.Info("http server listening", slog.String("addr", addr), slog.String("driver", cfg.Database.Driver))
				errCh <- srv.Listen(addr)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("http server error: %w", err)
			case <-runCtx.Done():
			}

			ctx.logger.Info("shutting down gracefully, press Ctrl+C again to force")
			stop()
			if err := srv.ShutdownWithTimeout(5 * time.Second); err != nil {
				ctx.logger.Error("server forced to shutdown", slog.String("error", err.Error()))
			}
			ctx.logger.Info("server exiting")
			return nil
		},
	}
}

