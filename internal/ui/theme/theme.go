// Package theme provides color theming support for pixgrid.
//
// This package defines semantic color constants that map to standard ANSI colors,
// allowing users to customize the application appearance through their terminal
// emulator's color scheme while maintaining consistent semantic meaning.
//
// Color Semantics:
//   - Primary: Main text and UI elements
//   - Secondary: Supporting text and labels
//   - Accent: Highlighted elements and important information
//   - Success: Positive states (loaded, copied)
//   - Warning: Caution states (empty results)
//   - Error: Failed loads and errors
//   - Info: Informational elements (descriptions, metadata)
//
// Usage:
//
//	import "github.com/devnullvoid/pixgrid/internal/ui/theme"
//
//	// Use semantic colors instead of hardcoded tcell.Color values
//	view.SetTextColor(theme.Colors.Primary)
//	tile.SetBorderColor(theme.Colors.Selection)
//
// Individual colors can be overridden with the theme.colors map in the
// configuration file.
package theme

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/config"
)

// Colors defines the semantic color palette for the application.
// These colors map to standard ANSI colors that can be customized
// through terminal emulator themes.
var Colors = struct {
	// Primary colors
	Primary   tcell.Color // Main text and UI elements
	Secondary tcell.Color // Supporting text and labels
	Tertiary  tcell.Color // Key hints

	// Semantic colors
	Success tcell.Color
	Warning tcell.Color
	Error   tcell.Color
	Info    tcell.Color

	// UI element colors
	Background  tcell.Color // Main background
	Border      tcell.Color // Unselected tile border
	Selection   tcell.Color // Selected tile border
	Focus       tcell.Color // Focused tile border
	Placeholder tcell.Color // Thumbnail placeholder shade
	Header      tcell.Color // Header background
	HeaderText  tcell.Color // Header text color
	Footer      tcell.Color // Footer background
	FooterText  tcell.Color // Footer text color

	// Additional tview theme colors
	Title        tcell.Color // For tview TitleColor
	Contrast     tcell.Color // For tview ContrastBackgroundColor
	MoreContrast tcell.Color // For tview MoreContrastBackgroundColor
	Inverse      tcell.Color // For tview InverseTextColor
}{
	Primary:   tcell.ColorWhite,
	Secondary: tcell.ColorGray,
	Tertiary:  tcell.ColorAqua,

	Success: tcell.ColorGreen,
	Warning: tcell.ColorYellow,
	Error:   tcell.ColorRed,
	Info:    tcell.ColorBlue,

	Background:  tcell.ColorDefault,
	Border:      tcell.ColorGray,
	Selection:   tcell.ColorBlue,
	Focus:       tcell.ColorYellow,
	Placeholder: tcell.ColorGray,
	Header:      tcell.ColorDefault,
	HeaderText:  tcell.ColorYellow,
	Footer:      tcell.ColorDefault,
	FooterText:  tcell.ColorWhite,

	Title:        tcell.ColorWhite,
	Contrast:     tcell.ColorBlue,
	MoreContrast: tcell.ColorFuchsia,
	Inverse:      tcell.ColorBlack,
}

// Only expose semantic tags that map directly to user-themeable colors
var semanticTagMap = map[string]func() tcell.Color{
	"primary":   func() tcell.Color { return Colors.Primary },
	"secondary": func() tcell.Color { return Colors.Secondary },
	"tertiary":  func() tcell.Color { return Colors.Tertiary },
	"success":   func() tcell.Color { return Colors.Success },
	"warning":   func() tcell.Color { return Colors.Warning },
	"error":     func() tcell.Color { return Colors.Error },
	"info":      func() tcell.Color { return Colors.Info },
	"selection": func() tcell.Color { return Colors.Selection },
	"header":    func() tcell.Color { return Colors.HeaderText },
	"footer":    func() tcell.Color { return Colors.FooterText },
	"title":     func() tcell.Color { return Colors.Title },
}

// ReplaceSemanticTags replaces semantic tags like [primary] with the current theme color tag.
func ReplaceSemanticTags(s string) string {
	for tag, colorFunc := range semanticTagMap {
		s = strings.ReplaceAll(s, "["+tag+"]", "["+ColorToTag(colorFunc())+"]")
	}

	return s
}

// ColorToTag returns a tview color tag string for a tcell.Color
func ColorToTag(c tcell.Color) string {
	switch c {
	case tcell.ColorDefault:
		return "default"
	case tcell.ColorBlack:
		return "black"
	case tcell.ColorMaroon:
		return "maroon"
	case tcell.ColorGreen:
		return "green"
	case tcell.ColorOlive:
		return "olive"
	case tcell.ColorNavy:
		return "navy"
	case tcell.ColorPurple:
		return "purple"
	case tcell.ColorTeal:
		return "teal"
	case tcell.ColorSilver:
		return "silver"
	case tcell.ColorGray:
		return "gray"
	case tcell.ColorRed:
		return "red"
	case tcell.ColorLime:
		return "lime"
	case tcell.ColorYellow:
		return "yellow"
	case tcell.ColorBlue:
		return "blue"
	case tcell.ColorFuchsia:
		return "fuchsia"
	case tcell.ColorAqua:
		return "aqua"
	case tcell.ColorWhite:
		return "white"
	default:
		return fmt.Sprintf("#%06x", c.Hex())
	}
}

// ApplyToTview sets the global tview.Styles to match the semantic theme colors.
func ApplyToTview() {
	tview.Styles = tview.Theme{
		PrimitiveBackgroundColor:    Colors.Background,
		ContrastBackgroundColor:     Colors.Contrast,
		MoreContrastBackgroundColor: Colors.Selection,
		BorderColor:                 Colors.Border,
		TitleColor:                  Colors.Title,
		GraphicsColor:               Colors.Info,
		PrimaryTextColor:            Colors.Primary,
		SecondaryTextColor:          Colors.Secondary,
		TertiaryTextColor:           Colors.Tertiary,
		InverseTextColor:            Colors.Inverse,
		ContrastSecondaryTextColor:  Colors.Selection,
	}
}

// defaultTheme lists every themeable color name with its default value.
var defaultTheme = map[string]string{
	"primary":      "white",
	"secondary":    "gray",
	"tertiary":     "aqua",
	"success":      "green",
	"warning":      "yellow",
	"error":        "red",
	"info":         "blue",
	"background":   "default",
	"border":       "gray",
	"selection":    "blue",
	"focus":        "yellow",
	"placeholder":  "gray",
	"header":       "default",
	"headertext":   "yellow",
	"footer":       "default",
	"footertext":   "white",
	"title":        "white",
	"contrast":     "blue",
	"morecontrast": "fuchsia",
	"inverse":      "black",
}

// ResolveTheme merges the default palette with user overrides. Keys are
// matched case-insensitively.
func ResolveTheme(cfg *config.ThemeConfig) map[string]string {
	resolved := make(map[string]string, len(defaultTheme))
	for k, v := range defaultTheme {
		resolved[k] = v
	}

	if cfg != nil {
		for k, v := range cfg.Colors {
			resolved[strings.ToLower(k)] = v
		}
	}

	return resolved
}

// Validate reports unknown color names and values tcell cannot parse.
func Validate(cfg *config.ThemeConfig) error {
	if cfg == nil {
		return nil
	}

	for k, v := range cfg.Colors {
		if _, ok := defaultTheme[strings.ToLower(k)]; !ok {
			return fmt.Errorf("unknown theme color %q", k)
		}
		if parseColor(v) == tcell.ColorDefault && !strings.EqualFold(v, "default") {
			return fmt.Errorf("invalid value %q for theme color %s", v, k)
		}
	}

	return nil
}

// ApplyCustomTheme applies the resolved theme to the Colors struct.
func ApplyCustomTheme(cfg *config.ThemeConfig) {
	for key, val := range ResolveTheme(cfg) {
		c := parseColor(val)
		switch key {
		case "primary":
			Colors.Primary = c
		case "secondary":
			Colors.Secondary = c
		case "tertiary":
			Colors.Tertiary = c
		case "success":
			Colors.Success = c
		case "warning":
			Colors.Warning = c
		case "error":
			Colors.Error = c
		case "info":
			Colors.Info = c
		case "background":
			Colors.Background = c
		case "border":
			Colors.Border = c
		case "selection":
			Colors.Selection = c
		case "focus":
			Colors.Focus = c
		case "placeholder":
			Colors.Placeholder = c
		case "header":
			Colors.Header = c
		case "headertext":
			Colors.HeaderText = c
		case "footer":
			Colors.Footer = c
		case "footertext":
			Colors.FooterText = c
		case "title":
			Colors.Title = c
		case "contrast":
			Colors.Contrast = c
		case "morecontrast":
			Colors.MoreContrast = c
		case "inverse":
			Colors.Inverse = c
		}
	}
}

// parseColor parses a color string (ANSI name, W3C name, or hex code) to tcell.Color.
func parseColor(s string) tcell.Color {
	if strings.EqualFold(s, "default") {
		return tcell.ColorDefault
	}

	return tcell.GetColor(s)
}
