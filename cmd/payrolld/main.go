// Package main starts the payroll HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/payroll-system/internal/config"
	"github.com/mmeshcher/payroll-system/internal/directory"
	"github.com/mmeshcher/payroll-system/internal/handler"
	"github.com/mmeshcher/payroll-system/internal/repository"
	"github.com/mmeshcher/payroll-system/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}

	var dir service.Directory
	if cfg.DirectoryAddress != "" {
		dir = directory.NewClient(cfg.DirectoryAddress)
	}

	svc := service.NewService(repo, dir, logger.Named("service"), cfg.PayrollWorkers)
	defer svc.Close()

	h := handler.NewHandler(svc, logger.Named("http"), cfg.CORSOrigins)

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		svc.StartDirectorySync(ctx, cfg.DirectorySyncInterval)
		return nil
	})

	g.Go(func() error {
		sugar.Infow("starting payroll server",
			"addr", cfg.RunAddress,
			"workers", cfg.PayrollWorkers,
			"directory", cfg.DirectoryAddress,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Shut down on a signal or when another goroutine fails.
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
