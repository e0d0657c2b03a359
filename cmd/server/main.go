package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/guesswho-backend/internal/catalog"
	"github.com/DoyleJ11/guesswho-backend/internal/config"
	"github.com/DoyleJ11/guesswho-backend/internal/httpapi"
	"github.com/DoyleJ11/guesswho-backend/internal/hub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog is loaded once; no session exists until it is.
	items, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", zap.String("source", cfg.CatalogSource), zap.Int("items", len(items)))

	h := hub.NewHub(ctx, logger)

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(httpapi.Deps{
		Hub:            h,
		Catalog:        items,
		SelectionSize:  cfg.SelectionSize,
		Logger:         logger,
		WSReadTimeout:  cfg.WSReadTimeout,
		WSWriteTimeout: cfg.WSWriteTimeout,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		h.Inbox() <- hub.ShutdownHub{}
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func loadCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.CatalogTimeout)
	defer cancel()

	embedded := catalog.NewEmbeddedProvider()
	if cfg.CatalogSource == config.CatalogEmbedded {
		return catalog.Load(ctx, embedded)
	}

	pg, err := catalog.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	defer pg.Close()

	if cfg.CatalogImport {
		names, err := catalog.Load(ctx, embedded)
		if err != nil {
			return nil, err
		}
		if err := pg.Import(ctx, names); err != nil {
			return nil, fmt.Errorf("import catalog: %w", err)
		}
		logger.Info("imported embedded catalog into postgres", zap.Int("items", len(names)))
	}
	return catalog.Load(ctx, pg)
}
