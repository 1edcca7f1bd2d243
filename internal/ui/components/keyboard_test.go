package components

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnullvoid/pixgrid/internal/config"
)

func TestNewKeyBindings_Defaults(t *testing.T) {
	kb, err := NewKeyBindings(config.KeyBindings{})
	require.NoError(t, err)

	assert.Equal(t, "/", kb.Search.Label())
	assert.Equal(t, "Space", kb.Toggle.Label())
	assert.True(t, kb.Quit.Matches(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
}

func TestNewKeyBindings_Overrides(t *testing.T) {
	kb, err := NewKeyBindings(config.KeyBindings{Reload: "Ctrl+R", Help: "F1"})
	require.NoError(t, err)

	assert.Equal(t, "Ctrl+R", kb.Reload.Label())
	assert.Equal(t, "F1", kb.Help.Label())
	assert.Equal(t, "s", kb.Sort.Label())
}

func TestNewKeyBindings_Invalid(t *testing.T) {
	_, err := NewKeyBindings(config.KeyBindings{Delete: "Hyper+X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete")
}

func TestFooterText(t *testing.T) {
	kb, err := NewKeyBindings(config.KeyBindings{})
	require.NoError(t, err)

	text := kb.FooterText()
	for _, want := range []string{"/:[-]Search", "s:[-]Sort", "Space:[-]Select", "?:[-]Help", "q:[-]Quit"} {
		assert.Contains(t, text, want)
	}
}

func TestHelpText(t *testing.T) {
	kb, err := NewKeyBindings(config.KeyBindings{CopyURL: "c"})
	require.NoError(t, err)

	text := HelpText(kb)
	assert.Contains(t, text, "Copy the focused photo URL")
	assert.Contains(t, text, "Press Esc, ? or q to close")
	assert.Contains(t, text, "  [primary]c ")
}

func TestFooter_SelectedCount(t *testing.T) {
	f := NewFooter()
	f.UpdateKeybindings("[tertiary]q:[-]Quit")
	assert.Equal(t, "q:Quit", f.GetText(true))

	f.SetSelectedCount(4)
	assert.Equal(t, "q:Quit  Selected:4", f.GetText(true))

	f.SetSelectedCount(0)
	assert.NotContains(t, f.GetText(true), "Selected")
}
