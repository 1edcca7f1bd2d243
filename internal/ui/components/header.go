package components

import (
	"fmt"
	"sync"
	"time"

	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/store"
	"github.com/devnullvoid/pixgrid/internal/ui/theme"
)

const (
	appTitle       = "pixgrid"
	messageTimeout = 3 * time.Second
)

// Header encapsulates the application header
type Header struct {
	*tview.TextView
	app *tview.Application

	mu          sync.Mutex
	isLoading   bool
	loadingText string
	loadingGen  int
	stopLoading chan struct{}
	baseText    string
	messageGen  int
}

var _ HeaderComponent = (*Header)(nil)

// NewHeader creates a new application header
func NewHeader() *Header {
	header := tview.NewTextView()
	header.SetTextAlign(tview.AlignCenter)
	header.SetText(appTitle)
	header.SetDynamicColors(true)
	header.SetBackgroundColor(theme.Colors.Header)
	header.SetTextColor(theme.Colors.HeaderText)

	return &Header{
		TextView: header,
		baseText: appTitle,
	}
}

// SetApp sets the application reference for UI updates
func (h *Header) SetApp(app *tview.Application) {
	h.app = app
}

// SetTitle replaces the resting header text.
func (h *Header) SetTitle(title string) {
	h.mu.Lock()
	h.baseText = title
	h.mu.Unlock()

	h.SetText(title)
}

// SetStatus shows the store's load status: a spinner while loading, the
// stored error while failed, the photo count otherwise.
func (h *Header) SetStatus(st store.State, visible int) {
	switch st.Status {
	case store.StatusLoading:
		h.ShowLoading("Loading photos...")
	case store.StatusFailed:
		h.StopLoading()
		h.SetTitle(fmt.Sprintf("[%s]✗ Failed to load photos: %s[-]", theme.ColorToTag(theme.Colors.Error), tview.Escape(st.Err)))
	default:
		h.StopLoading()
		h.SetTitle(CountTitle(visible, len(st.Images)))
	}
}

// CountTitle is the resting header text for visible of total photos.
func CountTitle(visible, total int) string {
	if visible == total {
		return fmt.Sprintf("%s • %d photos", appTitle, total)
	}

	return fmt.Sprintf("%s • %d of %d photos", appTitle, visible, total)
}

// ShowLoading displays an animated loading indicator
func (h *Header) ShowLoading(message string) {
	h.StopLoading()

	h.mu.Lock()
	h.isLoading = true
	h.loadingText = message
	h.loadingGen++
	gen := h.loadingGen
	stop := make(chan struct{})
	h.stopLoading = stop
	h.mu.Unlock()

	h.SetText(fmt.Sprintf("[%s]%s %s[-]", theme.ColorToTag(theme.Colors.Warning), spinnerFrames[0], message))

	if h.app != nil {
		go h.animateLoading(gen, stop)
	}
}

// StopLoading stops the loading animation
func (h *Header) StopLoading() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.isLoading {
		h.isLoading = false
		close(h.stopLoading)
	}
}

// IsLoading reports whether the header is currently showing a loading state.
func (h *Header) IsLoading() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.isLoading
}

// ShowSuccess displays a success message temporarily
func (h *Header) ShowSuccess(message string) {
	h.showTemporary(fmt.Sprintf("[%s]✓ %s[-]", theme.ColorToTag(theme.Colors.Success), tview.Escape(message)))
}

// ShowError displays an error message temporarily
func (h *Header) ShowError(message string) {
	h.showTemporary(fmt.Sprintf("[%s]✗ %s[-]", theme.ColorToTag(theme.Colors.Error), tview.Escape(message)))
}

func (h *Header) showTemporary(text string) {
	h.StopLoading()
	h.SetText(text)

	h.mu.Lock()
	h.messageGen++
	gen := h.messageGen
	h.mu.Unlock()

	if h.app == nil {
		return
	}

	go func() {
		time.Sleep(messageTimeout)
		h.app.QueueUpdateDraw(func() {
			h.mu.Lock()
			current, loading, base := h.messageGen, h.isLoading, h.baseText
			h.mu.Unlock()

			// A newer message or a load owns the header now.
			if current == gen && !loading {
				h.SetText(base)
			}
		})
	}()
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// animateLoading displays an animated loading indicator
func (h *Header) animateLoading(gen int, stop <-chan struct{}) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	index := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			index = (index + 1) % len(spinnerFrames)
			frame := spinnerFrames[index]
			h.app.QueueUpdateDraw(func() {
				h.mu.Lock()
				current, loading, text := h.loadingGen, h.isLoading, h.loadingText
				h.mu.Unlock()

				if current == gen && loading {
					h.SetText(fmt.Sprintf("[%s]%s %s[-]", theme.ColorToTag(theme.Colors.Warning), frame, text))
				}
			})
		}
	}
}
