package thumbnail

import (
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelBox(t *testing.T) {
	w, h := PixelBox(12, 5)
	assert.Equal(t, 12, w)
	assert.Equal(t, 10, h)
}

func TestCell(t *testing.T) {
	// A 1x2 bitmap: red on top, blue below.
	thumb := &Thumbnail{Width: 1, Height: 2, Pix: []byte{255, 0, 0, 255, 0, 0, 255, 255}}

	r, style := Cell(thumb, 0, 0)
	fg, bg, _ := style.Decompose()

	assert.Equal(t, upperHalf, r)
	assert.Equal(t, tcell.NewRGBColor(255, 0, 0), fg)
	assert.Equal(t, tcell.NewRGBColor(0, 0, 255), bg)
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(10, 5)

	thumb := Scale(solid(4, 4, color.RGBA{R: 200, A: 255}), 4, 4)
	Draw(screen, 0, 0, 8, 4, thumb, tcell.StyleDefault)

	// 4x4 pixels are 4x2 cells, centered in 8x4.
	r, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, upperHalf, r)
	r, _, _, _ = screen.GetContent(0, 0)
	assert.NotEqual(t, upperHalf, r)

	Draw(screen, 0, 0, 3, 2, nil, tcell.StyleDefault)
	r, _, _, _ = screen.GetContent(2, 1)
	assert.Equal(t, '░', r)
}
