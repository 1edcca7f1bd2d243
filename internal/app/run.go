// Package app assembles the long-lived services and starts the TUI.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/devnullvoid/pixgrid/internal/cache"
	"github.com/devnullvoid/pixgrid/internal/config"
	"github.com/devnullvoid/pixgrid/internal/logger"
	"github.com/devnullvoid/pixgrid/internal/store"
	"github.com/devnullvoid/pixgrid/internal/thumbnail"
	"github.com/devnullvoid/pixgrid/internal/ui"
	"github.com/devnullvoid/pixgrid/internal/ui/models"
	"github.com/devnullvoid/pixgrid/pkg/api"
	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

// Options configures the Run function.
type Options struct {
	NoCache bool
}

// Services are shared by the TUI and the headless commands.
type Services struct {
	Config *config.Config
	Logger interfaces.Logger
	Cache  cache.Cache
	Client *api.Client
	Thumbs *thumbnail.Loader
	Store  *store.Store
}

// NewServices initializes logging, the session cache, the API client, the
// thumbnail loader and an empty store for cfg. Callers must Close it.
func NewServices(cfg *config.Config, opts Options) (*Services, error) {
	level := logger.LevelFor(cfg.Debug)

	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o750); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	if err := logger.InitGlobalLogger(level, cfg.CacheDir); err != nil {
		logger.GetGlobalLogger().Error("failed to open log file: %v", err)
	}

	mainLogger := logger.GetPackageLogger("app")
	models.SetUILogger(logger.GetPackageLogger("ui"))

	sessionCache, err := cache.Open(cache.Options{Disabled: opts.NoCache || cfg.NoCache})
	if err != nil {
		mainLogger.Error("session cache: %v", err)
	}

	client, err := api.NewClient(cfg, api.WithLogger(logger.GetPackageLogger("api")))
	if err != nil {
		_ = sessionCache.Close()
		return nil, err
	}

	thumbs := thumbnail.NewLoader(
		thumbnail.WithCache(sessionCache),
		thumbnail.WithLogger(logger.GetPackageLogger("thumbnail")),
	)

	mainLogger.Info("Starting %s with %d photos per batch", client.BaseURL(), cfg.Count)

	return &Services{
		Config: cfg,
		Logger: mainLogger,
		Cache:  sessionCache,
		Client: client,
		Thumbs: thumbs,
		Store:  store.New(store.WithLogger(logger.GetPackageLogger("store"))),
	}, nil
}

// Close releases the cache and flushes the log file.
func (s *Services) Close() error {
	return errors.Join(s.Cache.Close(), logger.CloseGlobalLogger())
}

// Run constructs the services and starts the TUI using the provided config.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	svc, err := NewServices(cfg, opts)
	if err != nil {
		return err
	}
	defer svc.Close()

	return ui.RunApp(ctx, svc.Store, svc.Client, cfg, svc.Thumbs)
}

// List performs one load through the store and returns the visible set for
// term and key, the same photos the grid would show.
func List(ctx context.Context, svc *Services, term string, key models.SortKey) ([]api.Image, error) {
	if err := svc.Store.Load(ctx, svc.Client); err != nil {
		return nil, err
	}

	view := models.NewViewModel(key)
	view.SetSearchTerm(term)

	return view.Visible(svc.Store.Snapshot().Images), nil
}
