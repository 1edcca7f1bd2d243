package components

import (
	"time"

	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/ui/theme"
	"github.com/devnullvoid/pixgrid/internal/ui/utils"
	"github.com/devnullvoid/pixgrid/pkg/api"
)

// Details shows a one-line summary of the focused photo.
type Details struct {
	*tview.TextView
	now func() time.Time
}

// NewDetails creates an empty details line.
func NewDetails() *Details {
	tv := tview.NewTextView()
	tv.SetDynamicColors(false)
	tv.SetTextColor(theme.Colors.Info)
	tv.SetWrap(false)

	return &Details{TextView: tv, now: time.Now}
}

// Update shows img, or clears the line when ok is false.
func (d *Details) Update(img api.Image, ok bool) {
	if !ok {
		d.SetText("")
		return
	}

	d.SetText(utils.FormatDetails(img, d.now()))
}
