// Command server exposes the poem checker as a JSON REST API.
//
// Endpoints:
//
//	POST /api/analyze    body: {"poem":"...","form":"68"}
//	POST /api/score      body: {"poem":"...","form":"78"}
//	POST /api/mask       body: {"poem":"...","form":"68"[,"defects":[...]]}
//	POST /api/annotate   body: {"poem":"...","form":"68"}
//	GET  /api/tone?word=<syllable>
//	GET  /api/rhymes?a=<syllable>&b=<syllable>
//	GET  /api/suggest?word=<word>[&n=5]
//	GET  /healthz
//	GET  /metrics
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/vnpoem/poetic"
	"github.com/vnpoem/poetic/internal/config"
	"github.com/vnpoem/poetic/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := flag.String("data", "", "path to a tables directory (default: embedded tables)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *dataDir != "" {
		cfg.Engine.TablesDir = *dataDir
	}
	listen := cfg.Server.Addr()
	if *addr != "" {
		listen = *addr
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	eng, err := newEngine(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to load tables: %w", err)
	}
	log.Info("tables loaded", zap.String("dir", cfg.Engine.TablesDir), zap.Any("stats", eng.Tables().Stats()))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	srv := &http.Server{
		Addr:         listen,
		Handler:      newHandler(eng, cfg, log, reg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", listen))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}

func newEngine(cfg *config.Config, log *zap.Logger) (*poetic.Engine, error) {
	opts := []poetic.Option{
		poetic.WithLogger(log.Named("engine")),
		poetic.WithPassThreshold(cfg.Engine.PassThreshold),
	}
	if cfg.Engine.TablesDir == "" {
		return poetic.Default(opts...)
	}
	return poetic.New(cfg.Engine.TablesDir, opts...)
}
