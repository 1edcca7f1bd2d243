package components

import (
	"context"

	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/store"
	"github.com/devnullvoid/pixgrid/internal/thumbnail"
	"github.com/devnullvoid/pixgrid/pkg/api"
)

// Thumbnailer loads a scaled thumbnail for a photo. *thumbnail.Loader
// satisfies it.
type Thumbnailer interface {
	Load(ctx context.Context, img api.Image, boxW, boxH int) (*thumbnail.Thumbnail, error)
}

type HeaderComponent interface {
	tview.Primitive
	SetApp(*tview.Application)
	SetTitle(string)
	SetStatus(store.State, int)
	ShowLoading(string)
	StopLoading()
	IsLoading() bool
	ShowSuccess(string)
	ShowError(string)
}

type FooterComponent interface {
	tview.Primitive
	UpdateKeybindings(string)
	SetSelectedCount(int)
}
