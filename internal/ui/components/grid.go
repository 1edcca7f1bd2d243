package components

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/devnullvoid/pixgrid/internal/thumbnail"
	"github.com/devnullvoid/pixgrid/internal/ui/theme"
	"github.com/devnullvoid/pixgrid/internal/ui/utils"
	"github.com/devnullvoid/pixgrid/pkg/api"
)

const (
	// TileWidth and TileHeight are the outer size of a tile in cells.
	TileWidth  = 24
	TileHeight = 12

	// Caption and author lines sit below the thumbnail.
	tileTextRows = 2
)

// ThumbBox is the cell box a thumbnail is drawn into inside a tile.
func ThumbBox() (cols, rows int) {
	return TileWidth - 2, TileHeight - 2 - tileTextRows
}

// Columns is the number of tiles that fit in width cells, never less
// than one.
func Columns(width, tileWidth int) int {
	if tileWidth <= 0 {
		return 1
	}

	return max(1, width/tileWidth)
}

// Checkbox renders a tile's selection marker.
func Checkbox(selected bool) string {
	if selected {
		return "[x]"
	}

	return "[ ]"
}

// scrollOffset returns the first tile row to draw so that focusRow stays
// within a window of visibleRows rows.
func scrollOffset(offset, focusRow, visibleRows int) int {
	if visibleRows < 1 {
		visibleRows = 1
	}

	switch {
	case focusRow < offset:
		return focusRow
	case focusRow >= offset+visibleRows:
		return focusRow - visibleRows + 1
	default:
		return offset
	}
}

// Grid draws the visible photos as a responsive grid of tiles.
type Grid struct {
	*tview.Box

	images  []api.Image
	thumbs  map[string]*thumbnail.Thumbnail
	pending map[string]bool
	failed  map[string]bool

	focus       int
	offset      int
	columns     int
	visibleRows int
	emptyText   string

	isSelected   func(id string) bool
	focusChanged func(img api.Image, ok bool)
	activated    func(img api.Image)
	requestThumb func(img api.Image, cols, rows int)
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	g := &Grid{
		Box:         tview.NewBox(),
		thumbs:      make(map[string]*thumbnail.Thumbnail),
		pending:     make(map[string]bool),
		failed:      make(map[string]bool),
		columns:     1,
		visibleRows: 1,
		emptyText:   "No photos",
	}

	g.SetBorder(true)
	g.SetTitle(" Photos ")
	g.SetBorderColor(theme.Colors.Border)
	g.SetTitleColor(theme.Colors.Title)

	return g
}

// SetImages replaces the displayed photos. Focus stays on the same photo
// when it is still present.
func (g *Grid) SetImages(images []api.Image) {
	var focusedID string
	if img, ok := g.Focused(); ok {
		focusedID = img.ID
	}

	g.images = images

	g.focus = clampIndex(g.focus, len(images))
	for i, img := range images {
		if img.ID == focusedID {
			g.focus = i
			break
		}
	}

	g.notifyFocus()
}

// Images returns the displayed photos in order.
func (g *Grid) Images() []api.Image {
	return g.images
}

// Focused returns the photo under the cursor.
func (g *Grid) Focused() (api.Image, bool) {
	if g.focus < 0 || g.focus >= len(g.images) {
		return api.Image{}, false
	}

	return g.images[g.focus], true
}

// FocusIndex returns the cursor position.
func (g *Grid) FocusIndex() int {
	return g.focus
}

// SetFocusIndex moves the cursor, clamped to the photos shown.
func (g *Grid) SetFocusIndex(i int) {
	g.focus = clampIndex(i, len(g.images))
	g.notifyFocus()
}

// Move shifts the cursor by dx tiles and dy rows.
func (g *Grid) Move(dx, dy int) {
	if len(g.images) == 0 {
		return
	}

	g.SetFocusIndex(g.focus + dx + dy*max(1, g.columns))
}

// SetEmptyText sets the message drawn when there are no photos.
func (g *Grid) SetEmptyText(text string) {
	g.emptyText = text
}

// SetIsSelectedFunc provides the selection lookup used when drawing.
func (g *Grid) SetIsSelectedFunc(fn func(id string) bool) {
	g.isSelected = fn
}

// SetFocusChangedFunc is called whenever the cursor lands on a photo, or
// with ok false when the grid becomes empty.
func (g *Grid) SetFocusChangedFunc(fn func(img api.Image, ok bool)) {
	g.focusChanged = fn
}

// SetActivatedFunc is called on Enter or a double click.
func (g *Grid) SetActivatedFunc(fn func(img api.Image)) {
	g.activated = fn
}

// SetThumbnailRequestFunc is called once per photo the first time its
// tile is drawn without a thumbnail.
func (g *Grid) SetThumbnailRequestFunc(fn func(img api.Image, cols, rows int)) {
	g.requestThumb = fn
}

// SetThumbnail stores the result of a thumbnail request. A failed request
// keeps the placeholder and is not retried.
func (g *Grid) SetThumbnail(id string, thumb *thumbnail.Thumbnail, err error) {
	delete(g.pending, id)

	if err != nil || thumb == nil {
		g.failed[id] = true
		return
	}

	g.thumbs[id] = thumb
}

// HasThumbnail reports whether a thumbnail is stored for id.
func (g *Grid) HasThumbnail(id string) bool {
	_, ok := g.thumbs[id]
	return ok
}

// ResetThumbnails forgets every thumbnail and failure.
func (g *Grid) ResetThumbnails() {
	g.thumbs = make(map[string]*thumbnail.Thumbnail)
	g.pending = make(map[string]bool)
	g.failed = make(map[string]bool)
}

func (g *Grid) selected(id string) bool {
	return g.isSelected != nil && g.isSelected(id)
}

func (g *Grid) notifyFocus() {
	if g.focusChanged == nil {
		return
	}

	img, ok := g.Focused()
	g.focusChanged(img, ok)
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}

	return i
}

// Draw draws this primitive onto the screen.
func (g *Grid) Draw(screen tcell.Screen) {
	g.DrawForSubclass(screen, g)

	x, y, width, height := g.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}

	g.columns = Columns(width, TileWidth)
	g.visibleRows = max(1, height/TileHeight)

	if len(g.images) == 0 {
		tview.Print(screen, tview.Escape(g.emptyText), x, y+height/2, width, tview.AlignCenter, theme.Colors.Secondary)
		return
	}

	g.offset = scrollOffset(g.offset, g.focus/g.columns, g.visibleRows)
	pad := max(0, (width-g.columns*TileWidth)/2)

	first := g.offset * g.columns
	last := min(len(g.images), first+g.visibleRows*g.columns)
	for i := first; i < last; i++ {
		row := i/g.columns - g.offset
		col := i % g.columns
		g.drawTile(screen, x+pad+col*TileWidth, y+row*TileHeight, i)
	}
}

func (g *Grid) drawTile(screen tcell.Screen, x, y, index int) {
	img := g.images[index]
	selected := g.selected(img.ID)
	focused := index == g.focus && g.HasFocus()

	color := theme.Colors.Border
	if selected {
		color = theme.Colors.Selection
	}
	if focused {
		color = theme.Colors.Focus
	}
	drawFrame(screen, x, y, TileWidth, TileHeight, tcell.StyleDefault.Foreground(color).Background(theme.Colors.Background), selected)

	cols, rows := ThumbBox()
	placeholder := tcell.StyleDefault.Foreground(theme.Colors.Placeholder).Background(theme.Colors.Background)

	if thumb, ok := g.thumbs[img.ID]; ok {
		thumbnail.Draw(screen, x+1, y+1, cols, rows, thumb, placeholder)
	} else {
		thumbnail.DrawPlaceholder(screen, x+1, y+1, cols, rows, placeholder)
		if g.requestThumb != nil && !g.pending[img.ID] && !g.failed[img.ID] {
			g.pending[img.ID] = true
			g.requestThumb(img, cols, rows)
		}
	}

	captionColor := theme.Colors.Primary
	if selected {
		captionColor = theme.Colors.Selection
	}

	caption := Checkbox(selected) + " " + utils.Truncate(utils.Caption(img), cols-4)
	tview.Print(screen, tview.Escape(caption), x+1, y+TileHeight-3, cols, tview.AlignLeft, captionColor)
	tview.Print(screen, tview.Escape(utils.Truncate(img.User.Name, cols)), x+1, y+TileHeight-2, cols, tview.AlignLeft, theme.Colors.Secondary)
}

// drawFrame draws a w x h border at (x, y), doubled when thick is set.
func drawFrame(screen tcell.Screen, x, y, w, h int, style tcell.Style, thick bool) {
	hz, vt := tview.Borders.Horizontal, tview.Borders.Vertical
	tl, tr := tview.Borders.TopLeft, tview.Borders.TopRight
	bl, br := tview.Borders.BottomLeft, tview.Borders.BottomRight
	if thick {
		hz, vt = tview.Borders.HorizontalFocus, tview.Borders.VerticalFocus
		tl, tr = tview.Borders.TopLeftFocus, tview.Borders.TopRightFocus
		bl, br = tview.Borders.BottomLeftFocus, tview.Borders.BottomRightFocus
	}

	for cx := x + 1; cx < x+w-1; cx++ {
		screen.SetContent(cx, y, hz, nil, style)
		screen.SetContent(cx, y+h-1, hz, nil, style)
	}
	for cy := y + 1; cy < y+h-1; cy++ {
		screen.SetContent(x, cy, vt, nil, style)
		screen.SetContent(x+w-1, cy, vt, nil, style)
	}

	screen.SetContent(x, y, tl, nil, style)
	screen.SetContent(x+w-1, y, tr, nil, style)
	screen.SetContent(x, y+h-1, bl, nil, style)
	screen.SetContent(x+w-1, y+h-1, br, nil, style)
}

// tileAt maps a screen position to a photo index.
func (g *Grid) tileAt(px, py int) (int, bool) {
	x, y, width, _ := g.GetInnerRect()
	pad := max(0, (width-g.columns*TileWidth)/2)

	col := (px - x - pad) / TileWidth
	row := (py - y) / TileHeight
	if px < x+pad || py < y || col >= g.columns || row >= g.visibleRows {
		return 0, false
	}

	index := (g.offset+row)*g.columns + col
	if index >= len(g.images) {
		return 0, false
	}

	return index, true
}

// InputHandler returns the handler for this primitive.
func (g *Grid) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return g.WrapInputHandler(func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
		switch event.Key() {
		case tcell.KeyLeft:
			g.Move(-1, 0)
		case tcell.KeyRight:
			g.Move(1, 0)
		case tcell.KeyUp:
			g.Move(0, -1)
		case tcell.KeyDown:
			g.Move(0, 1)
		case tcell.KeyPgUp:
			g.Move(0, -g.visibleRows)
		case tcell.KeyPgDn:
			g.Move(0, g.visibleRows)
		case tcell.KeyHome:
			g.SetFocusIndex(0)
		case tcell.KeyEnd:
			g.SetFocusIndex(len(g.images) - 1)
		case tcell.KeyEnter:
			if img, ok := g.Focused(); ok && g.activated != nil {
				g.activated(img)
			}
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				g.Move(-1, 0)
			case 'l':
				g.Move(1, 0)
			case 'k':
				g.Move(0, -1)
			case 'j':
				g.Move(0, 1)
			case 'g':
				g.SetFocusIndex(0)
			case 'G':
				g.SetFocusIndex(len(g.images) - 1)
			}
		}
	})
}

// MouseHandler returns the mouse handler for this primitive.
func (g *Grid) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
	return g.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		px, py := event.Position()
		if !g.InRect(px, py) {
			return false, nil
		}

		switch action {
		case tview.MouseLeftClick:
			setFocus(g)
			if index, ok := g.tileAt(px, py); ok {
				g.SetFocusIndex(index)
			}
			return true, nil
		case tview.MouseLeftDoubleClick:
			if index, ok := g.tileAt(px, py); ok {
				g.SetFocusIndex(index)
				if g.activated != nil {
					g.activated(g.images[index])
				}
			}
			return true, nil
		case tview.MouseScrollUp:
			g.Move(0, -1)
			return true, nil
		case tview.MouseScrollDown:
			g.Move(0, 1)
			return true, nil
		}

		return false, nil
	})
}
