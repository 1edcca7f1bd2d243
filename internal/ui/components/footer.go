package components

import (
	"fmt"

	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/ui/theme"
)

// Footer encapsulates the application footer
type Footer struct {
	*tview.TextView
	selectedCount int
	baseText      string
}

var _ FooterComponent = (*Footer)(nil)

// NewFooter creates a new application footer with key bindings
func NewFooter() *Footer {
	footer := tview.NewTextView()
	footer.SetTextAlign(tview.AlignCenter)
	footer.SetDynamicColors(true)
	footer.SetBackgroundColor(theme.Colors.Footer)
	footer.SetTextColor(theme.Colors.FooterText)

	return &Footer{TextView: footer}
}

// UpdateKeybindings updates the footer text with custom key bindings
func (f *Footer) UpdateKeybindings(text string) {
	f.baseText = text
	f.updateDisplay()
}

// SetSelectedCount updates the selection count display
func (f *Footer) SetSelectedCount(count int) {
	f.selectedCount = count
	f.updateDisplay()
}

// updateDisplay refreshes the footer text with current information
func (f *Footer) updateDisplay() {
	text := f.baseText
	if f.selectedCount > 0 {
		text = fmt.Sprintf("%s  [%s]Selected:[-]%d", text, theme.ColorToTag(theme.Colors.Success), f.selectedCount)
	}
	f.SetText(theme.ReplaceSemanticTags(text))
}
