package components

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/ui/theme"
)

// newSearchInput creates the always-visible search field.
func newSearchInput() *tview.InputField {
	return tview.NewInputField().
		SetLabel("Search: ").
		SetLabelColor(theme.Colors.Primary).
		SetFieldBackgroundColor(theme.Colors.Background).
		SetFieldTextColor(theme.Colors.Primary).
		SetFieldWidth(0).
		SetPlaceholder("description, alt text, tag or author").
		SetPlaceholderTextColor(theme.Colors.Secondary)
}

// setupSearch wires live filtering to the search field.
func (a *App) setupSearch() {
	a.searchInput.SetChangedFunc(func(text string) {
		a.view.SetSearchTerm(strings.TrimSpace(text))
		a.refresh()
	})

	a.searchInput.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEsc:
			// SetText fires the changed func, which clears the filter.
			a.searchInput.SetText("")
			a.SetFocus(a.grid)
		case tcell.KeyEnter, tcell.KeyTab:
			a.SetFocus(a.grid)
		case tcell.KeyBacktab:
			a.cycleFocus(-1)
		}
	})
}

// activateSearch focuses the search field.
func (a *App) activateSearch() {
	a.SetFocus(a.searchInput)
}
