package thumbnail

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// upperHalf paints the top pixel in the foreground and the bottom pixel in
// the background, giving two pixel rows per terminal row.
const upperHalf = '▀'

// PixelBox converts a cell box to the pixel box a thumbnail is scaled into.
func PixelBox(cols, rows int) (int, int) {
	return cols, rows * 2
}

// Cell returns the rune and style for terminal cell (col, row) of t.
func Cell(t *Thumbnail, col, row int) (rune, tcell.Style) {
	top := t.At(col, row*2)
	bottom := t.At(col, row*2+1)

	return upperHalf, tcell.StyleDefault.
		Foreground(toColor(top)).
		Background(toColor(bottom))
}

// Draw paints t centered in the cols x rows box at (x, y). A nil t draws
// the placeholder.
func Draw(screen tcell.Screen, x, y, cols, rows int, t *Thumbnail, placeholder tcell.Style) {
	if t == nil {
		DrawPlaceholder(screen, x, y, cols, rows, placeholder)
		return
	}

	tc := t.Width
	tr := (t.Height + 1) / 2
	offX := x + max(0, (cols-tc)/2)
	offY := y + max(0, (rows-tr)/2)

	for row := 0; row < min(tr, rows); row++ {
		for col := 0; col < min(tc, cols); col++ {
			r, style := Cell(t, col, row)
			if row*2+1 >= t.Height {
				// Odd heights leave the last bottom half unpainted.
				style = style.Background(tcell.ColorDefault)
			}
			screen.SetContent(offX+col, offY+row, r, nil, style)
		}
	}
}

// DrawPlaceholder fills the box with a light shade.
func DrawPlaceholder(screen tcell.Screen, x, y, cols, rows int, style tcell.Style) {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			screen.SetContent(x+col, y+row, '░', nil, style)
		}
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
