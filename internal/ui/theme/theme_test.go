package theme

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/devnullvoid/pixgrid/internal/config"
)

func restoreColors(t *testing.T) {
	t.Helper()

	saved := Colors
	t.Cleanup(func() { Colors = saved })
}

func TestResolveTheme(t *testing.T) {
	resolved := ResolveTheme(nil)
	assert.Equal(t, "blue", resolved["selection"])

	resolved = ResolveTheme(&config.ThemeConfig{Colors: map[string]string{"Selection": "#ff0000"}})
	assert.Equal(t, "#ff0000", resolved["selection"])
	assert.Equal(t, "red", defaultTheme["error"], "defaults are not mutated")
}

func TestApplyCustomTheme(t *testing.T) {
	restoreColors(t)

	ApplyCustomTheme(&config.ThemeConfig{Colors: map[string]string{
		"selection": "green",
		"error":     "#112233",
	}})

	assert.Equal(t, tcell.ColorGreen, Colors.Selection)
	assert.Equal(t, tcell.NewHexColor(0x112233), Colors.Error)
	assert.Equal(t, tcell.ColorWhite, Colors.Primary)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		colors  map[string]string
		wantErr bool
	}{
		{name: "nil", colors: nil},
		{name: "known", colors: map[string]string{"focus": "lime", "background": "default"}},
		{name: "hex", colors: map[string]string{"border": "#abcdef"}},
		{name: "unknown name", colors: map[string]string{"sparkle": "red"}, wantErr: true},
		{name: "bad value", colors: map[string]string{"border": "notacolor"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&config.ThemeConfig{Colors: tt.colors})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReplaceSemanticTags(t *testing.T) {
	restoreColors(t)
	Colors.Error = tcell.ColorRed

	assert.Equal(t, "[red]failed[-]", ReplaceSemanticTags("[error]failed[-]"))
	assert.Equal(t, "[unknown]x", ReplaceSemanticTags("[unknown]x"))
}

func TestColorToTag(t *testing.T) {
	assert.Equal(t, "default", ColorToTag(tcell.ColorDefault))
	assert.Equal(t, "aqua", ColorToTag(tcell.ColorAqua))
	assert.Equal(t, "#102030", ColorToTag(tcell.NewHexColor(0x102030)))
}
