package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"misleadviz/internal/config"
	"misleadviz/internal/game"
	"misleadviz/internal/handlers"
	"misleadviz/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd, map[string]string{
				"addr":         "addr",
				"base_url":     "base-url",
				"log.level":    "log-level",
				"log.encoding": "log-encoding",
			})
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().String("base-url", "", "public base URL used for share links")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	cmd.Flags().String("log-encoding", "json", "log encoding (json, console)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := handlers.NewMetrics(reg)

	store := game.NewStore(game.StoreConfig{
		TTL:          cfg.Session.TTL,
		Cleanup:      cfg.Session.Cleanup,
		TickInterval: cfg.Countdown.Interval,
		ActionRate:   rate.Limit(cfg.Actions.Rate),
		ActionBurst:  cfg.Actions.Burst,
		Logger:       logger,
		Observer:     metrics,
	})
	metrics.TrackSessions(store)

	router, err := handlers.NewRouter(handlers.Deps{
		Store:    store,
		Logger:   logger,
		Metrics:  metrics,
		Gatherer: reg,
		BaseURL:  cfg.BaseURL,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// No WriteTimeout: event streams stay open. They end when ctx does.
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
