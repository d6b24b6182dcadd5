package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ChunkWriter collects one frame of text overlays and escape sequences and
// flushes it in network-sized pieces. Positions given to WriteAt are 1-based
// canvas cells; the centering offset is added here.
type ChunkWriter struct {
	buf    strings.Builder
	out    *bufio.Writer
	numBuf [20]byte
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter on top of w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the centering offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol, cw.offRow = offsetCol, offsetRow
}

func (cw *ChunkWriter) moveTo(col, row int) {
	cw.buf.WriteString(termenv.CSI)
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write lets Canvas.Render append into the frame.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends raw text or escape sequences.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteAt places s at a canvas cell.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveTo(col, row)
	cw.buf.WriteString(s)
}

// Clear queues a full screen erase at the start of the frame.
func (cw *ChunkWriter) Clear() {
	cw.buf.WriteString(clearSeq)
}

// Flush sends the frame in chunks of at most maxChunkSize bytes.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local stdout terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeRawWith returns the terminal size reported by sizeFunc.
func TerminalSizeRawWith(sizeFunc TermSizeFunc) (width, height int, err error) {
	return sizeFunc()
}

var (
	clearSeq    = termenv.CSI + fmt.Sprintf(termenv.EraseDisplaySeq, 2) + termenv.CSI + fmt.Sprintf(termenv.CursorPositionSeq, 1, 1)
	mouseOnSeq  = termenv.CSI + termenv.EnableMouseAllMotionSeq + termenv.CSI + termenv.EnableMouseExtendedModeSeq
	mouseOffSeq = termenv.CSI + termenv.DisableMouseExtendedModeSeq + termenv.CSI + termenv.DisableMouseAllMotionSeq
	resetStyle  = termenv.CSI + termenv.ResetSeq + "m"
	hideCursor  = termenv.CSI + termenv.HideCursorSeq
	showCursor  = termenv.CSI + termenv.ShowCursorSeq
)

// ClearScreen erases the terminal and homes the cursor.
func ClearScreen(w io.Writer) { io.WriteString(w, clearSeq) }

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) { io.WriteString(w, hideCursor) }

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) { io.WriteString(w, showCursor) }

// EnableMouse turns on any-motion tracking with SGR encoded reports.
func EnableMouse(w io.Writer) { io.WriteString(w, mouseOnSeq) }

// DisableMouse turns mouse tracking off.
func DisableMouse(w io.Writer) { io.WriteString(w, mouseOffSeq) }

// ResetStyle clears colors and attributes.
func ResetStyle(w io.Writer) { io.WriteString(w, resetStyle) }
