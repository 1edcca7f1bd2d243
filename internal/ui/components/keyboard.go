package components

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/devnullvoid/pixgrid/internal/config"
	"github.com/devnullvoid/pixgrid/internal/keys"
)

// KeyBindings are the parsed, configurable global shortcuts.
type KeyBindings struct {
	Search    keys.Binding
	Sort      keys.Binding
	Toggle    keys.Binding
	SelectAll keys.Binding
	Delete    keys.Binding
	Reload    keys.Binding
	CopyURL   keys.Binding
	Help      keys.Binding
	Quit      keys.Binding
}

// NewKeyBindings parses kb. Empty entries fall back to their defaults.
func NewKeyBindings(kb config.KeyBindings) (KeyBindings, error) {
	defaults := config.DefaultKeyBindings()

	var out KeyBindings
	for _, b := range []struct {
		name string
		spec string
		def  string
		dst  *keys.Binding
	}{
		{"search", kb.Search, defaults.Search, &out.Search},
		{"sort", kb.Sort, defaults.Sort, &out.Sort},
		{"toggle", kb.Toggle, defaults.Toggle, &out.Toggle},
		{"select_all", kb.SelectAll, defaults.SelectAll, &out.SelectAll},
		{"delete", kb.Delete, defaults.Delete, &out.Delete},
		{"reload", kb.Reload, defaults.Reload, &out.Reload},
		{"copy_url", kb.CopyURL, defaults.CopyURL, &out.CopyURL},
		{"help", kb.Help, defaults.Help, &out.Help},
		{"quit", kb.Quit, defaults.Quit, &out.Quit},
	} {
		spec := b.spec
		if spec == "" {
			spec = b.def
		}

		parsed, err := keys.NewBinding(spec)
		if err != nil {
			return KeyBindings{}, fmt.Errorf("key binding %s: %w", b.name, err)
		}
		*b.dst = parsed
	}

	return out, nil
}

// FooterText renders the key hints shown in the footer.
func (kb KeyBindings) FooterText() string {
	hint := func(b, label string) string {
		return fmt.Sprintf("[tertiary]%s:[-]%s", b, label)
	}

	return hint(kb.Search.Label(), "Search") + "  " +
		hint(kb.Sort.Label(), "Sort") + "  " +
		hint(kb.Toggle.Label(), "Select") + "  " +
		hint(kb.SelectAll.Label(), "All") + "  " +
		hint(kb.Delete.Label(), "Delete") + "  " +
		hint(kb.Reload.Label(), "Reload") + "  " +
		hint(kb.Help.Label(), "Help") + "  " +
		hint(kb.Quit.Label(), "Quit")
}

// setupKeyboardHandlers configures global keyboard shortcuts
func (a *App) setupKeyboardHandlers() {
	a.SetInputCapture(a.handleKey)
}

// handleKey dispatches global shortcuts. Events it does not consume are
// passed on to the focused primitive.
func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if a.helpVisible() {
		if event.Key() == tcell.KeyEsc || a.keys.Help.Matches(event) || a.keys.Quit.Matches(event) {
			a.hideHelp()
			return nil
		}

		return event
	}

	// The search field and an open drop-down list handle their own keys.
	if a.GetFocus() == a.searchInput || a.toolbar.SortDropDown().IsOpen() {
		return event
	}

	switch event.Key() {
	case tcell.KeyTab:
		a.cycleFocus(1)
		return nil
	case tcell.KeyBacktab:
		a.cycleFocus(-1)
		return nil
	case tcell.KeyEsc:
		if a.GetFocus() != a.grid {
			a.SetFocus(a.grid)
			return nil
		}
	}

	switch {
	case a.keys.Quit.Matches(event):
		a.Stop()
	case a.keys.Help.Matches(event):
		a.showHelp()
	case a.keys.Search.Matches(event):
		a.activateSearch()
	case a.keys.Sort.Matches(event):
		a.cycleSort()
	case a.keys.Toggle.Matches(event) && a.GetFocus() == a.grid:
		a.toggleFocused()
	case a.keys.SelectAll.Matches(event):
		a.selectAllVisible()
	case a.keys.Delete.Matches(event):
		a.deleteSelected()
	case a.keys.Reload.Matches(event):
		a.Reload()
	case a.keys.CopyURL.Matches(event):
		a.copyFocusedURL()
	default:
		return event
	}

	return nil
}

// cycleFocus moves focus through the grid, search field and toolbar.
func (a *App) cycleFocus(step int) {
	current := a.GetFocus()

	index := 0
	for i, p := range a.focusables {
		if p == current {
			index = i
			break
		}
	}

	n := len(a.focusables)
	a.SetFocus(a.focusables[((index+step)%n+n)%n])
}
