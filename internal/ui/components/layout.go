package components

import (
	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/pkg/api"
)

// createMainLayout builds the main application layout
func (a *App) createMainLayout() *tview.Flex {
	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.toolbar, 1, 0, false).
		AddItem(a.searchInput, 1, 0, false).
		AddItem(a.grid, 0, 1, true).
		AddItem(a.details, 1, 0, false).
		AddItem(a.footer, 1, 0, false)

	a.pages.AddPage(pageMain, layout, true, true)
	a.pages.AddPage(pageHelp, a.helpModal, true, false)

	return layout
}

// setupComponentConnections wires up the interactions between components
func (a *App) setupComponentConnections() {
	a.grid.SetIsSelectedFunc(a.view.IsSelected)
	a.grid.SetFocusChangedFunc(a.details.Update)
	a.grid.SetActivatedFunc(func(api.Image) {
		a.toggleFocused()
	})
	a.grid.SetThumbnailRequestFunc(a.requestThumbnail)

	a.toolbar.SetSortChangedFunc(a.setSort)
	a.toolbar.SetSelectAllFunc(a.selectAllVisible)
	a.toolbar.SetDeleteFunc(a.deleteSelected)
}
