package components

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/ui/theme"
)

// HelpModal represents a modal dialog showing keybindings and usage information
type HelpModal struct {
	*tview.Flex
	textView *tview.TextView
}

// NewHelpModal creates a new help modal for the given bindings.
func NewHelpModal(kb KeyBindings) *HelpModal {
	textView := tview.NewTextView()
	textView.SetDynamicColors(true)
	textView.SetScrollable(true)
	textView.SetWrap(false)
	textView.SetBorder(true)
	textView.SetTitle(" pixgrid - Help & Keybindings ")
	textView.SetTitleColor(theme.Colors.HeaderText)
	textView.SetBorderColor(theme.Colors.HeaderText)
	textView.SetText(theme.ReplaceSemanticTags(HelpText(kb)))

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(textView, 30, 0, true).
			AddItem(nil, 0, 1, false), 72, 0, true).
		AddItem(nil, 0, 1, false)

	return &HelpModal{Flex: flex, textView: textView}
}

// HelpText renders the help page for kb.
func HelpText(kb KeyBindings) string {
	row := func(key, desc string) string {
		return fmt.Sprintf("  [primary]%-24s[-] %s\n", tview.Escape(key), desc)
	}

	var sb strings.Builder

	sb.WriteString("[header]Navigation:[-]\n")
	sb.WriteString(row("Arrow Keys / hjkl", "Move between tiles"))
	sb.WriteString(row("PgUp / PgDn", "Scroll a page of tiles"))
	sb.WriteString(row("Home / End, g / G", "First / last tile"))
	sb.WriteString(row("Tab / Shift+Tab", "Cycle grid, search and toolbar"))
	sb.WriteString("\n[header]Actions:[-]\n")
	sb.WriteString(row(kb.Search.Label(), "Search description, alt text, tags, author"))
	sb.WriteString(row(kb.Sort.Label(), "Cycle sort: Date, Title, Size"))
	sb.WriteString(row(kb.Toggle.Label()+" / Enter", "Select or deselect the focused photo"))
	sb.WriteString(row(kb.SelectAll.Label(), "Select all visible (again to deselect)"))
	sb.WriteString(row(kb.Delete.Label(), "Delete selected photos from the view"))
	sb.WriteString(row(kb.Reload.Label(), "Fetch a new batch of photos"))
	sb.WriteString(row(kb.CopyURL.Label(), "Copy the focused photo URL"))
	sb.WriteString(row(kb.Help.Label(), "Toggle this help"))
	sb.WriteString(row(kb.Quit.Label(), "Quit"))
	sb.WriteString("\n[header]Search:[-]\n")
	sb.WriteString(row("Type to filter", "Case-insensitive, filters as you type"))
	sb.WriteString(row("Enter", "Keep the filter and return to the grid"))
	sb.WriteString(row("Esc", "Clear the filter and return to the grid"))
	sb.WriteString("\n[header]Tips:[-]\n")
	sb.WriteString("  • Deleting also removes selected photos hidden by the filter\n")
	sb.WriteString("  • Deleted photos are only removed from this session\n")
	sb.WriteString("\n[secondary]Press Esc, " + tview.Escape(kb.Help.Label()) + " or " + tview.Escape(kb.Quit.Label()) + " to close this help[-]")

	return sb.String()
}
