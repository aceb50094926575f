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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/labelcritic/internal/catalog"
	"github.com/dshills/labelcritic/internal/config"
	"github.com/dshills/labelcritic/internal/logging"
	"github.com/dshills/labelcritic/internal/nutrition"
	"github.com/dshills/labelcritic/internal/server"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve product analyses over HTTP",
		Long: `Serve the catalog and product analyses as JSON. Settings come from
--config, LABELCRITIC_* environment variables, and flags, in increasing priority.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				return exitError(3, "%v", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "YAML config file")
	flags.String("listen-addr", config.DefaultListenAddr, "HTTP listen address")
	flags.String("catalog", "", "Product catalog file (YAML or JSON)")
	flags.String("builtin", config.DefaultBuiltin, "Built-in catalog name, used when --catalog is empty")
	flags.Bool("watch", false, "Reload --catalog when the file changes")
	flags.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	flags.Duration("read-timeout", config.DefaultReadTimeout, "HTTP read timeout")
	flags.Duration("write-timeout", config.DefaultWriteTimeout, "HTTP write timeout")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log, err := logging.New(cfg.LogLevel, "json")
	if err != nil {
		return exitError(3, "%v", err)
	}
	defer func() { _ = log.Sync() }()

	cat, err := catalog.Open(cfg.Catalog, cfg.Builtin)
	if err != nil {
		return exitError(3, "failed to load catalog: %v", err)
	}
	log.Info("catalog loaded",
		zap.String("name", cat.Name),
		zap.Int("products", cat.Len()),
		zap.String("hash", cat.Hash))
	for _, id := range cat.Dangling() {
		log.Warn("alternative not in catalog", zap.String("product", id))
	}

	engine, err := nutrition.NewEngine(nutrition.DefaultThresholds())
	if err != nil {
		return err
	}
	store := catalog.NewStore(cat)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Watch {
		go func() {
			err := catalog.Watch(ctx, cfg.Catalog, log, func(c *catalog.Catalog) {
				prev := store.Swap(c)
				log.Info("catalog reloaded",
					zap.String("name", c.Name),
					zap.Int("products", c.Len()),
					zap.String("hash", c.Hash),
					zap.String("previous_hash", prev.Hash))
			})
			if err != nil {
				log.Error("catalog watch stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      server.New(engine, store, log, version).Routes(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("listening", zap.String("addr", cfg.ListenAddr))

	select {
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}
