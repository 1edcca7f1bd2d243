package components

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/ui/models"
	"github.com/devnullvoid/pixgrid/internal/ui/theme"
)

// Toolbar holds the sort selector and the bulk selection buttons.
type Toolbar struct {
	*tview.Flex
	sort      *tview.DropDown
	selectAll *tview.Button
	deleteBtn *tview.Button

	onSort   func(models.SortKey)
	updating bool
}

// NewToolbar creates the toolbar with the sort set to key.
func NewToolbar(key models.SortKey) *Toolbar {
	t := &Toolbar{
		sort:      tview.NewDropDown(),
		selectAll: tview.NewButton("Select All"),
		deleteBtn: tview.NewButton(DeleteLabel(0)),
	}

	labels := make([]string, 0, len(models.SortKeys))
	for _, k := range models.SortKeys {
		labels = append(labels, k.Label())
	}

	t.sort.SetLabel("Sort by: ").
		SetLabelColor(theme.Colors.Primary).
		SetFieldBackgroundColor(theme.Colors.Contrast).
		SetFieldTextColor(theme.Colors.Primary)
	t.sort.SetOptions(labels, func(_ string, index int) {
		if t.updating || index < 0 || index >= len(models.SortKeys) {
			return
		}
		if t.onSort != nil {
			t.onSort(models.SortKeys[index])
		}
	})

	t.deleteBtn.SetDisabledStyle(tcell.StyleDefault.
		Foreground(theme.Colors.Secondary).
		Background(theme.Colors.Background))
	t.deleteBtn.SetDisabled(true)

	t.Flex = tview.NewFlex().
		AddItem(t.sort, 22, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(t.selectAll, 14, 0, false).
		AddItem(nil, 2, 0, false).
		AddItem(t.deleteBtn, 24, 0, false).
		AddItem(nil, 0, 1, false)

	t.SetSortKey(key)

	return t
}

// DeleteLabel is the delete button caption for n selected photos.
func DeleteLabel(n int) string {
	return fmt.Sprintf("Delete Selected (%d)", n)
}

// SetSortKey shows key in the selector without firing the change callback.
func (t *Toolbar) SetSortKey(key models.SortKey) {
	t.updating = true
	defer func() { t.updating = false }()

	t.sort.SetCurrentOption(int(key))
}

// SortKey returns the key shown in the selector.
func (t *Toolbar) SortKey() models.SortKey {
	index, _ := t.sort.GetCurrentOption()
	if index < 0 || index >= len(models.SortKeys) {
		return models.SortDate
	}

	return models.SortKeys[index]
}

// SetSelectedCount updates the delete button, disabling it at zero.
func (t *Toolbar) SetSelectedCount(n int) {
	t.deleteBtn.SetLabel(DeleteLabel(n))
	t.deleteBtn.SetDisabled(n == 0)
}

// DeleteDisabled reports whether the delete button is disabled.
func (t *Toolbar) DeleteDisabled() bool {
	return t.deleteBtn.IsDisabled()
}

// SetSortChangedFunc is called when the user picks a sort key.
func (t *Toolbar) SetSortChangedFunc(fn func(models.SortKey)) {
	t.onSort = fn
}

// SetSelectAllFunc is called when Select All is pressed.
func (t *Toolbar) SetSelectAllFunc(fn func()) {
	t.selectAll.SetSelectedFunc(fn)
}

// SetDeleteFunc is called when the enabled delete button is pressed.
func (t *Toolbar) SetDeleteFunc(fn func()) {
	t.deleteBtn.SetSelectedFunc(fn)
}

// Focusables lists the toolbar widgets in tab order.
func (t *Toolbar) Focusables() []tview.Primitive {
	return []tview.Primitive{t.sort, t.selectAll, t.deleteBtn}
}

// SortDropDown exposes the sort selector.
func (t *Toolbar) SortDropDown() *tview.DropDown {
	return t.sort
}
