package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/devnullvoid/pixgrid/internal/ui/utils"
	"github.com/devnullvoid/pixgrid/pkg/api"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// writeImages prints images in format. Ages in the table are relative to now.
func writeImages(w io.Writer, images []api.Image, format outputFormat, now time.Time) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(images)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(images); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(images) == 0 {
		_, err := fmt.Fprintln(w, "No photos")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("ID", "TITLE", "AUTHOR", "SIZE", "CREATED", "TAGS").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, img := range images {
		t.Row(
			img.ID,
			utils.Truncate(utils.Caption(img), 24),
			utils.Truncate(img.User.Name, 20),
			utils.FormatDimensions(img.Width, img.Height),
			utils.FormatAge(img.CreatedTime(), now),
			utils.Truncate(strings.Join(img.TagTitles(), ", "), 30),
		)
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}
