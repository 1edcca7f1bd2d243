package components

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/config"
	"github.com/devnullvoid/pixgrid/internal/store"
	"github.com/devnullvoid/pixgrid/internal/thumbnail"
	"github.com/devnullvoid/pixgrid/internal/ui/models"
	"github.com/devnullvoid/pixgrid/internal/ui/theme"
	"github.com/devnullvoid/pixgrid/pkg/api"
	"github.com/devnullvoid/pixgrid/pkg/api/interfaces"
)

const (
	pageMain = "main"
	pageHelp = "help"
)

// App is the main application component
type App struct {
	*tview.Application

	ctx    context.Context
	cancel context.CancelFunc

	config  *config.Config
	store   *store.Store
	fetcher store.Fetcher
	thumbs  Thumbnailer
	view    *models.ViewModel
	keys    KeyBindings
	logger  interfaces.Logger

	// state is the last store snapshot rendered. Only the event loop
	// touches it.
	state       store.State
	relay       *stateRelay
	unsubscribe func()
	loadOnce    sync.Once
	loading     atomic.Bool

	pages       *tview.Pages
	mainLayout  *tview.Flex
	header      *Header
	toolbar     *Toolbar
	searchInput *tview.InputField
	grid        *Grid
	details     *Details
	footer      *Footer
	helpModal   *HelpModal
	focusables  []tview.Primitive

	copyToClipboard func(string) error
}

// Option configures an App.
type Option func(*App)

// WithThumbnailer enables thumbnail rendering in the grid.
func WithThumbnailer(t Thumbnailer) Option {
	return func(a *App) {
		a.thumbs = t
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) {
		if write != nil {
			a.copyToClipboard = write
		}
	}
}

// WithLogger sets the logger for user actions.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewApp creates a new application instance with all UI components. The
// first batch of photos is requested when Run starts.
func NewApp(ctx context.Context, st *store.Store, fetcher store.Fetcher, cfg *config.Config, opts ...Option) (*App, error) {
	if st == nil || fetcher == nil || cfg == nil {
		return nil, errors.New("store, fetcher and config are required")
	}

	kb, err := NewKeyBindings(cfg.KeyBindings)
	if err != nil {
		return nil, err
	}

	sortKey, err := models.ParseSortKey(cfg.DefaultSort)
	if err != nil {
		return nil, err
	}

	theme.ApplyCustomTheme(&cfg.Theme)
	theme.ApplyToTview()

	ctx, cancel := context.WithCancel(ctx)
	a := &App{
		Application:     tview.NewApplication(),
		ctx:             ctx,
		cancel:          cancel,
		config:          cfg,
		store:           st,
		fetcher:         fetcher,
		view:            models.NewViewModel(sortKey),
		keys:            kb,
		logger:          models.GetUILogger(),
		relay:           newStateRelay(),
		copyToClipboard: clipboard.WriteAll,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.header = NewHeader()
	a.header.SetApp(a.Application)
	a.toolbar = NewToolbar(sortKey)
	a.searchInput = newSearchInput()
	a.grid = NewGrid()
	a.details = NewDetails()
	a.footer = NewFooter()
	a.footer.UpdateKeybindings(kb.FooterText())
	a.helpModal = NewHelpModal(kb)
	a.pages = tview.NewPages()

	a.mainLayout = a.createMainLayout()
	a.setupComponentConnections()
	a.setupSearch()
	a.setupKeyboardHandlers()

	a.focusables = append([]tview.Primitive{a.grid, a.searchInput}, a.toolbar.Focusables()...)

	a.unsubscribe = st.Subscribe(a.relay.push)
	a.render(st.Snapshot())

	a.SetRoot(a.pages, true).EnableMouse(true)
	a.SetFocus(a.grid)

	return a, nil
}

// Run starts the first load and the event loop. It returns when the user
// quits.
func (a *App) Run() error {
	defer a.unsubscribe()
	defer a.cancel()

	go a.relay.run(a.ctx, func(st store.State) {
		if a.ctx.Err() != nil {
			return
		}
		a.QueueUpdateDraw(func() {
			a.render(st)
		})
	})

	a.StartLoad()

	return a.Application.Run()
}

// StartLoad requests the first batch. Later calls do nothing.
func (a *App) StartLoad() {
	a.loadOnce.Do(a.Reload)
}

// Reload fetches a fresh batch unless one is already in flight.
func (a *App) Reload() {
	if !a.loading.CompareAndSwap(false, true) {
		a.logger.Debug("Reload ignored: a load is already running")
		return
	}

	go func() {
		defer a.loading.Store(false)

		if err := a.store.Load(a.ctx, a.fetcher); err != nil {
			a.logger.Error("Reload failed: %v", err)
		}
	}()
}

// render applies a store snapshot to every component.
func (a *App) render(st store.State) {
	if st.Status == store.StatusIdle && a.state.Status != store.StatusIdle {
		// A new batch; cached thumbnails of removed photos are useless.
		a.grid.ResetThumbnails()
	}
	a.state = st

	visible := a.refresh()
	a.header.SetStatus(st, len(visible))
}

// refresh recomputes the visible photos from the last snapshot and the
// view state, and returns them.
func (a *App) refresh() []api.Image {
	term, key := a.view.Current()
	visible := a.view.Visible(a.state.Images)

	a.grid.SetEmptyText(a.emptyText(term))
	a.grid.SetImages(visible)
	a.toolbar.SetSortKey(key)
	a.toolbar.SetSelectedCount(a.view.SelectedCount())
	a.footer.SetSelectedCount(a.view.SelectedCount())

	if a.state.Status == store.StatusIdle && !a.header.IsLoading() {
		a.header.SetTitle(CountTitle(len(visible), len(a.state.Images)))
	}

	return visible
}

func (a *App) emptyText(term string) string {
	switch {
	case a.state.Status == store.StatusLoading && len(a.state.Images) == 0:
		return "Loading photos..."
	case a.state.Status == store.StatusFailed && len(a.state.Images) == 0:
		return fmt.Sprintf("Could not load photos. Press %s to retry.", a.keys.Reload.Label())
	case term != "" && len(a.state.Images) > 0:
		return fmt.Sprintf("No photos match %q", term)
	default:
		return "No photos"
	}
}

// toggleFocused flips the selection of the focused tile.
func (a *App) toggleFocused() {
	img, ok := a.grid.Focused()
	if !ok {
		return
	}

	a.view.Toggle(img.ID)
	a.refresh()
}

// selectAllVisible selects every visible photo, or clears them when all
// are already selected.
func (a *App) selectAllVisible() {
	a.view.ToggleSelectAll(a.view.Visible(a.state.Images))
	a.refresh()
}

// deleteSelected removes the selected photos from the session.
func (a *App) deleteSelected() {
	ids := a.view.DeleteSelected(a.store)
	if len(ids) == 0 {
		return
	}

	a.render(a.store.Snapshot())
	a.header.ShowSuccess(fmt.Sprintf("Deleted %d photos", len(ids)))
}

// cycleSort advances the sort key.
func (a *App) cycleSort() {
	a.view.CycleSort()
	a.refresh()
}

// setSort applies key chosen in the toolbar.
func (a *App) setSort(key models.SortKey) {
	a.view.SetSortKey(key)
	a.refresh()
}

// copyFocusedURL copies the focused photo's small rendition URL.
func (a *App) copyFocusedURL() {
	img, ok := a.grid.Focused()
	if !ok || img.URLs.Small == "" {
		return
	}

	if err := a.copyToClipboard(img.URLs.Small); err != nil {
		a.logger.Error("Copy to clipboard failed: %v", err)
		a.header.ShowError("Clipboard unavailable")
		return
	}

	a.header.ShowSuccess("Copied photo URL")
}

func (a *App) showHelp() {
	a.pages.ShowPage(pageHelp)
	a.SetFocus(a.helpModal)
}

func (a *App) hideHelp() {
	a.pages.HidePage(pageHelp)
	a.SetFocus(a.grid)
}

func (a *App) helpVisible() bool {
	name, _ := a.pages.GetFrontPage()
	return name == pageHelp
}

// requestThumbnail loads img's thumbnail in the background and hands it
// to the grid on the event loop.
func (a *App) requestThumbnail(img api.Image, cols, rows int) {
	if a.thumbs == nil {
		return
	}

	go func() {
		w, h := thumbnail.PixelBox(cols, rows)

		ctx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
		defer cancel()

		thumb, err := a.thumbs.Load(ctx, img, w, h)
		if err != nil {
			a.logger.Debug("Thumbnail for %s failed: %v", img.ID, err)
		}

		if a.ctx.Err() != nil {
			return
		}
		a.QueueUpdateDraw(func() {
			a.grid.SetThumbnail(img.ID, thumb, err)
		})
	}()
}
