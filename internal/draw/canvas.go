package draw

import (
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// pixelSet marks a drawn pixel. The low 24 bits hold its RGB color.
const pixelSet = 1 << 24

// cellDirty never matches a rendered cell, forcing a repaint.
const cellDirty = math.MaxUint64

// Canvas is a color drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels. Render only
// writes cells that changed since the previous frame.
type Canvas struct {
	termWidth      int      // Actual terminal columns
	termHeight     int      // Actual terminal rows
	subPixelHeight int      // termHeight * 2
	pixels         []uint32 // Flat slice: [y * termWidth + x], pixelSet|RGB when drawn
	prev           []uint64 // Last rendered top/bottom pair per cell
	pen            uint32   // Color used by drawing calls

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height (in sub-pixels)
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	profile termenv.Profile

	// Reusable buffers to reduce allocations
	renderBuf       strings.Builder // Buffer for batching render output
	numBuf          [20]byte        // Scratch buffer for integer formatting
	seqCache        map[uint32]string
	scaledBuf       []Point   // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64 // Reusable buffer for scanline intersections
	polygonBuf      []Point   // Reusable buffer for polygon point generation
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		pen:           pixelSet | 0xFFFFFF,
		profile:       termenv.TrueColor,
		seqCache:      make(map[uint32]string),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]uint32, subPixelHeight*termWidth)
		c.prev = make([]uint64, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.ForceRedraw()
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetProfile sets the color profile used to encode pixel colors.
func (c *Canvas) SetProfile(p termenv.Profile) {
	if p != c.profile {
		c.profile = p
		clear(c.seqCache)
		c.ForceRedraw()
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render repaint every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i] = cellDirty
	}
}

// MarkTextDirty flags cells overwritten by a text overlay so the next Render
// repaints them. col and row are 1-based canvas coordinates.
func (c *Canvas) MarkTextDirty(col, row, width int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+width; x++ {
		if x >= 0 && x < c.termWidth {
			c.prev[r*c.termWidth+x] = cellDirty
		}
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// SetColor sets the pen used by subsequent drawing calls.
func (c *Canvas) SetColor(col colorful.Color) {
	r, g, b := col.Clamped().RGB255()
	c.pen = pixelSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// SetHex sets the pen from a "#rrggbb" string. Invalid input leaves the pen unchanged.
func (c *Canvas) SetHex(hex string) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return
	}
	c.SetColor(col)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = c.pen
	}
}

// Pixel returns the color at terminal pixel (x, y) and whether it is drawn.
func (c *Canvas) Pixel(x, y int) (colorful.Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return colorful.Color{}, false
	}
	v := c.pixels[y*c.termWidth+x]
	if v&pixelSet == 0 {
		return colorful.Color{}, false
	}
	return rgbColor(v), true
}

// toPixel maps logical coordinates to terminal sub-pixels.
func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(x, y int) {
	c.setPixel(c.toPixel(float64(x), float64(y)))
}

// FillRect fills the logical rectangle [x0, x1] x [y0, y1].
func (c *Canvas) FillRect(x0, y0, x1, y1 float64) {
	px0, py0 := c.toPixel(x0, y0)
	px1, py1 := c.toPixel(x1, y1)
	px0, px1 = max(px0, 0), min(px1, c.termWidth-1)
	py0, py1 = max(py0, 0), min(py1, c.subPixelHeight-1)
	for y := py0; y <= py1; y++ {
		row := c.pixels[y*c.termWidth : (y+1)*c.termWidth]
		for x := px0; x <= px1; x++ {
			row[x] = c.pen
		}
	}
}

// DrawLine draws a segment between two logical points, stepping along the
// longer axis.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x0, y0 := c.toPixel(p1.X, p1.Y)
	x1, y1 := c.toPixel(p2.X, p2.Y)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		c.setPixel(x0, y0)
		return
	}
	fx := float64(x1-x0) / float64(steps)
	fy := float64(y1-y0) / float64(steps)
	for i := 0; i <= steps; i++ {
		c.setPixel(x0+int(math.Round(fx*float64(i))), y0+int(math.Round(fy*float64(i))))
	}
}

// DrawPolygon outlines a polygon given in logical coordinates. When filled
// is set the interior is painted first with an even-odd scanline fill.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	n := len(points)
	if n < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	prev := points[n-1]
	for _, p := range points {
		c.DrawLine(prev, p)
		prev = p
	}
}

func (c *Canvas) fillPolygon(points []Point) {
	pts := c.scaledBuf[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		q := Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		top, bottom = math.Min(top, q.Y), math.Max(bottom, q.Y)
		pts = append(pts, q)
	}
	c.scaledBuf = pts

	last := min(int(math.Ceil(bottom)), c.subPixelHeight-1)
	for y := max(int(math.Floor(top)), 0); y <= last; y++ {
		scan := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		a := pts[len(pts)-1]
		for _, b := range pts {
			if (a.Y <= scan) != (b.Y <= scan) {
				xs = append(xs, a.X+(scan-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
			a = b
		}
		c.intersectionBuf = xs
		slices.Sort(xs)

		for i := 1; i < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i-1])); x <= int(math.Floor(xs[i])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs changed cells to the writer using colored half-block characters.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	lastCol, lastRow := -1, -1
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			var bottom uint32
			if row*2+1 < c.subPixelHeight {
				bottom = c.pixels[bottomOffset+col]
			}

			key := uint64(top)<<32 | uint64(bottom)
			idx := row*c.termWidth + col
			if c.prev[idx] == key {
				continue
			}
			c.prev[idx] = key

			if row != lastRow || col != lastCol+1 {
				c.moveTo(col, row)
			}
			lastCol, lastRow = col, row
			c.writeCell(top, bottom)
		}
	}
	if c.renderBuf.Len() > 0 {
		c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveTo(col, row int) {
	c.renderBuf.WriteString(termenv.CSI)
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteByte('H')
}

// writeCell emits one half-block cell: the upper pixel as foreground, the
// lower one as background.
func (c *Canvas) writeCell(top, bottom uint32) {
	topSet := top&pixelSet != 0
	bottomSet := bottom&pixelSet != 0

	c.renderBuf.WriteString(termenv.CSI + termenv.ResetSeq)
	switch {
	case topSet && bottomSet:
		if top == bottom {
			c.style(top, false)
			c.renderBuf.WriteString("m")
			c.renderBuf.WriteRune(BlockFull)
			return
		}
		c.style(top, false)
		c.style(bottom, true)
		c.renderBuf.WriteString("m")
		c.renderBuf.WriteRune(BlockUpperHalf)
	case topSet:
		c.style(top, false)
		c.renderBuf.WriteString("m")
		c.renderBuf.WriteRune(BlockUpperHalf)
	case bottomSet:
		c.style(bottom, false)
		c.renderBuf.WriteString("m")
		c.renderBuf.WriteRune(BlockLowerHalf)
	default:
		c.renderBuf.WriteString("m ")
	}
}

// style appends ";<color sequence>" for a pixel, cached per profile.
func (c *Canvas) style(px uint32, bg bool) {
	key := px &^ pixelSet
	if bg {
		key |= pixelSet
	}
	seq, ok := c.seqCache[key]
	if !ok {
		seq = c.profile.FromColor(rgbColor(px)).Sequence(bg)
		if seq != "" {
			seq = ";" + seq
		}
		c.seqCache[key] = seq
	}
	c.renderBuf.WriteString(seq)
}

func rgbColor(px uint32) colorful.Color {
	return colorful.Color{
		R: float64(px>>16&0xFF) / 255,
		G: float64(px>>8&0xFF) / 255,
		B: float64(px&0xFF) / 255,
	}
}

// RenderBorder frames the canvas when the terminal is larger than the render
// area. Each side is drawn only where the offsets leave room for it.
func (c *Canvas) RenderBorder(w io.Writer) {
	b := lipgloss.RoundedBorder()
	sides, ends := c.offsetCol >= 1, c.offsetRow >= 1
	left, right := c.offsetCol, c.offsetCol+c.termWidth+1
	top, bottom := c.offsetRow, c.offsetRow+c.termHeight+1

	var buf strings.Builder
	at := func(col, row int, s string) {
		buf.WriteString(termenv.CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H" + s)
	}
	if ends {
		topBar := strings.Repeat(b.Top, c.termWidth)
		bottomBar := strings.Repeat(b.Bottom, c.termWidth)
		if sides {
			at(left, top, b.TopLeft+topBar+b.TopRight)
			at(left, bottom, b.BottomLeft+bottomBar+b.BottomRight)
		} else {
			at(left+1, top, topBar)
			at(left+1, bottom, bottomBar)
		}
	}
	if sides {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			at(left, row, b.Left)
			at(right, row, b.Right)
		}
	}
	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal returns the 1-based cell (without offset) covering a
// logical point, for placing text next to drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// TerminalToLogical converts a 1-based screen position (as reported by the
// terminal, offset included) to the logical coordinates of the cell center.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.scaleX, py / c.scaleY
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
