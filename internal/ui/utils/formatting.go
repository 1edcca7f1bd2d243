package utils

import (
	"fmt"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/mattn/go-runewidth"

	"github.com/devnullvoid/pixgrid/pkg/api"
)

var pixelAbbrs = []string{"px", "Kpx", "MP", "GP"}

// FormatMegapixels renders the pixel count of a w x h image, e.g. "12.5MP".
func FormatMegapixels(w, h int) string {
	if w <= 0 || h <= 0 {
		return "N/A"
	}

	return units.CustomSize("%.3g%s", float64(w)*float64(h), 1000.0, pixelAbbrs)
}

// FormatDimensions renders "4000x3000 (12MP)".
func FormatDimensions(w, h int) string {
	return fmt.Sprintf("%dx%d (%s)", w, h, FormatMegapixels(w, h))
}

// FormatAge renders how long before now t was, e.g. "3 weeks ago". The zero
// time is "unknown date".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "unknown date"
	}

	d := now.Sub(t)
	if d < 0 {
		return "just now"
	}

	return strings.ToLower(units.HumanDuration(d)) + " ago"
}

// Truncate shortens s to at most width terminal cells, ending with "…"
// when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	return runewidth.Truncate(s, width, "…")
}

// Caption is the short label under a tile: the title word, or "untitled".
func Caption(img api.Image) string {
	if w := img.TitleWord(); w != "" {
		return w
	}

	return "untitled"
}

// FormatDetails builds the one-line summary of img shown under the grid.
func FormatDetails(img api.Image, now time.Time) string {
	text := img.DescriptionText()
	if text == "" {
		text = img.AltText()
	}
	if text == "" {
		text = "No description"
	}

	parts := []string{
		text,
		"by " + img.User.Name,
		FormatDimensions(img.Width, img.Height),
		FormatAge(img.CreatedTime(), now),
	}

	if tags := img.TagTitles(); len(tags) > 0 {
		parts = append(parts, "#"+strings.Join(tags, " #"))
	}

	return strings.Join(parts, "  •  ")
}
