// Package ui hosts the terminal interface.
package ui

import (
	"context"

	"github.com/devnullvoid/pixgrid/internal/config"
	"github.com/devnullvoid/pixgrid/internal/logger"
	"github.com/devnullvoid/pixgrid/internal/store"
	"github.com/devnullvoid/pixgrid/internal/ui/components"
)

// RunApp creates and starts the application using the component-based
// architecture. thumbs may be nil to draw placeholders only.
func RunApp(ctx context.Context, st *store.Store, fetcher store.Fetcher, cfg *config.Config, thumbs components.Thumbnailer) error {
	opts := []components.Option{components.WithLogger(logger.GetPackageLogger("ui"))}
	if thumbs != nil {
		opts = append(opts, components.WithThumbnailer(thumbs))
	}

	app, err := components.NewApp(ctx, st, fetcher, cfg, opts...)
	if err != nil {
		return err
	}

	return app.Run()
}
