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

	"netdiagram/internal/codec"
	"netdiagram/internal/config"
	"netdiagram/internal/handler"
	"netdiagram/internal/hub"
	"netdiagram/internal/logging"
	"netdiagram/internal/metrics"
	"netdiagram/internal/repository"
	"netdiagram/internal/repository/bolt"
	"netdiagram/internal/repository/sqlite"
	"netdiagram/internal/service"
	"netdiagram/internal/watcher"
)

func (a *app) serveCmd() *cobra.Command {
	var addr, watch string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(cmd.Context(), addr, watch)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.host and server.port")
	cmd.Flags().StringVar(&watch, "watch", "", "load a JSON or YAML diagram and reload it whenever the file changes")
	return cmd
}

func (a *app) runServe(ctx context.Context, addr, watch string) error {
	cfg := a.cfg
	log := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
	if addr == "" {
		addr = cfg.Server.Addr()
	}

	if a.cfgPath != "" {
		log.Info().Str("path", a.cfgPath).Msg("configuration loaded")
	} else {
		log.Info().Msg("no configuration file found, using defaults")
	}

	repo, err := openRepository(cfg.Storage)
	if err != nil {
		return err
	}
	if repo != nil {
		defer repo.Close()
		log.Info().Str("driver", cfg.Storage.Driver).Str("path", cfg.Storage.Path).Msg("snapshot store opened")
	} else {
		log.Warn().Msg("snapshot storage disabled")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	bus := service.NewEventBus()
	svc := service.NewDiagramService(repo, bus, m, log, serviceOptions(cfg.Canvas))

	if watch != "" {
		meta, err := loadDocument(svc, watch)
		if err != nil {
			return err
		}
		log.Info().Str("path", watch).Str("site", meta.SiteName).Msg("diagram loaded")

		reload := func(path string) {
			if _, err := loadDocument(svc, path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("reload failed, keeping current diagram")
				return
			}
			log.Info().Str("path", path).Msg("diagram reloaded")
		}
		go func() {
			if err := watcher.New(watch, reload, log).Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("watcher stopped")
			}
		}()
	}

	events := hub.New(log)
	go events.Run(ctx)
	go events.Forward(ctx, bus)

	h := handler.New(svc, events, m, log, cfg.Server.RequestTimeout)
	server := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// loadDocument replaces the diagram with the JSON or YAML document at path
func loadDocument(svc *service.DiagramService, path string) (codec.Meta, error) {
	format := formatFromPath(path)
	if format != "json" && format != "yaml" {
		return codec.Meta{}, fmt.Errorf("cannot load %s: want a .json, .yaml or .yml file", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return codec.Meta{}, fmt.Errorf("failed to open diagram: %w", err)
	}
	defer f.Close()
	return svc.Import(format, f)
}

// openRepository opens the configured snapshot store. Driver none returns a
// nil repository.
func openRepository(s config.StorageConfig) (repository.Repository, error) {
	switch s.Driver {
	case "sqlite":
		repo, err := sqlite.New(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repo, nil
	case "bolt":
		repo, err := bolt.New(s.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		return repo, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.Driver)
	}
}
