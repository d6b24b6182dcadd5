package client

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/coloroid/internal/draw"
	"github.com/tomz197/coloroid/internal/loop"
	"github.com/tomz197/coloroid/internal/loop/config"
	"github.com/tomz197/coloroid/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	screenChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if screenChanged || inactiveChanged {
		c.chunkWriter.Clear()
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	if snap := c.snapshot; snap != nil && c.state.Screen != ScreenStart {
		c.drawField(snap)
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawField paints the flash, orbs and paddle onto the canvas.
func (c *Client) drawField(snap *loop.Snapshot) {
	if snap.Flash > 0 {
		flash, _ := colorful.Hex(colorFlash)
		c.canvas.SetColor(colorful.Color{}.BlendRgb(flash, snap.Flash*0.35))
		c.canvas.FillRect(0, 0, snap.Field.Width, snap.Field.Height)
	}

	for i := range snap.Orbs {
		c.drawOrb(&snap.Orbs[i])
	}
	c.drawPaddle(snap)
}

// drawOrb draws one orb with its shape, spin and pulse.
func (c *Client) drawOrb(o *loop.OrbView) {
	cv := c.canvas
	x, y := o.X, o.Y-o.BounceOffset
	r := o.Radius * o.BeatScale
	cv.SetHex(o.Fill)

	switch o.Kind {
	case object.KindHeart:
		cv.DrawPolygon(draw.Heart(cv.BorrowPoints(24), x, y, r), true)
	case object.KindGolden:
		cv.DrawPolygon(draw.Star(cv.BorrowPoints(10), x, y, r, r*0.45, o.Angle), true)
	case object.KindPowerup:
		cv.DrawPolygon(draw.Circle(cv.BorrowPoints(16), x, y, r), true)
		cv.SetHex(object.FillNeutral)
		cv.DrawPolygon(draw.Circle(cv.BorrowPoints(12), x, y, r*0.55), false)
	default:
		cv.DrawPolygon(shapePoints(cv, o.Shape, x, y, r, o.Angle), true)
	}
}

// shapePoints builds the outline of a normal orb.
func shapePoints(cv *draw.Canvas, shape object.ShapeType, x, y, r, angle float64) []draw.Point {
	switch shape {
	case object.ShapeSemicircle:
		return draw.Semicircle(cv.BorrowPoints(12), x, y, r, angle)
	case object.ShapeTriangle:
		return draw.RegularPolygon(cv.BorrowPoints(3), x, y, r, angle)
	case object.ShapeSquare:
		return draw.RegularPolygon(cv.BorrowPoints(4), x, y, r, angle)
	case object.ShapePentagon:
		return draw.RegularPolygon(cv.BorrowPoints(5), x, y, r, angle)
	case object.ShapeHexagon:
		return draw.RegularPolygon(cv.BorrowPoints(6), x, y, r, angle)
	default:
		return draw.Star(cv.BorrowPoints(10), x, y, r, r*0.45, angle)
	}
}

// drawPaddle draws the paddle in the target color, or the upcoming one while
// the palette preview blinks.
func (c *Client) drawPaddle(snap *loop.Snapshot) {
	p := snap.Paddle
	fill := snap.Current.Fill
	if snap.Blink {
		fill = snap.Next.Fill
	}

	w := p.Width
	if p.ShrinkBounce > 0 {
		w *= 1 + 0.08*math.Sin(2*math.Pi*p.ShrinkBounce)
	}
	top := p.Y
	if p.Bounce > 0 {
		top += math.Sin(math.Pi*p.Bounce) * p.Height * 0.4
	}

	c.canvas.SetHex(fill)
	c.canvas.FillRect(p.X-w/2, top, p.X+w/2, top+p.Height)

	if p.Shielded {
		const pad = 8.0
		c.canvas.SetHex(object.FillShield)
		c.canvas.DrawPolygon([]draw.Point{
			{X: p.X - w/2 - pad, Y: top - pad},
			{X: p.X + w/2 + pad, Y: top - pad},
			{X: p.X + w/2 + pad, Y: top + p.Height + pad},
			{X: p.X - w/2 - pad, Y: top + p.Height + pad},
		}, false)
	}
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenStart:
		c.drawStartScreen(centerX, centerY)
	case ScreenPlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case ScreenPaused:
		c.drawPlayingHUD(termWidth, termHeight)
		c.drawPausedScreen(centerX, centerY)
	case ScreenGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// writeText writes styled text at a terminal cell and marks the cells so the
// canvas repaints them next frame.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	if col < 1 {
		col = 1
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.chunkWriter.WriteString(termReset)
	c.canvas.MarkTextDirty(col, row, lipgloss.Width(s))
}

// writeBlock writes a multi-line block centered on (centerX, centerY).
func (c *Client) writeBlock(centerX, centerY int, block string) {
	lines := strings.Split(block, "\n")
	width := lipgloss.Width(block)
	top := centerY - len(lines)/2
	for i, line := range lines {
		c.writeText(centerX-width/2, top+i, line)
	}
}

const termReset = "\033[0m"

// drawPlayingHUD draws score, lives, mana, palette and power-up timers.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	snap := c.snapshot
	if snap == nil {
		return
	}
	st := c.styles

	score := st.text.Render(fmt.Sprintf("Score %-6d", snap.Score))
	c.writeText(2, 1, score)

	lives := st.hearts(snap.Lives, snap.MaxLives)
	c.writeText(termWidth-lipgloss.Width(lives), 1, lives)

	palette := st.swatches(snap.Palette, snap.Current.Name, snap.PalettePulse)
	swap := st.dim.Render(fmt.Sprintf(" %2ds", int(math.Ceil(snap.TimeToSwap.Seconds()))))
	target := st.fg(snap.Current.Fill).Bold(true).Render(snap.Current.Name)
	center := palette + swap
	c.writeText(termWidth/2-lipgloss.Width(center)/2, 1, center)
	c.writeText(termWidth/2-lipgloss.Width(target)/2, 2, target)

	mana := st.dim.Render("Mana ") + st.manaBar(snap.ManaFraction, 20) +
		st.dim.Render(fmt.Sprintf(" %3.0f", snap.Mana))
	c.writeText(2, termHeight, mana)

	var timers []string
	for _, p := range snap.Powerups {
		label := fmt.Sprintf("%s %2ds", powerupLabel(p.Kind), int(math.Ceil(p.Remaining.Seconds())))
		timers = append(timers, st.fg(p.Kind.Fill()).Render(label))
	}
	if len(timers) > 0 {
		line := strings.Join(timers, "  ")
		c.writeText(termWidth-lipgloss.Width(line), termHeight, line)
	}

	c.drawPopups(snap)

	if snap.State == loop.StatePreroll && snap.PrerollLeft > 0 {
		count := st.accent.Render(fmt.Sprintf("Get ready %d", int(math.Ceil(snap.PrerollLeft.Seconds()))))
		c.writeText(termWidth/2-lipgloss.Width(count)/2, termHeight/2, count)
	}
}

func powerupLabel(k object.PowerupKind) string {
	switch k {
	case object.PowerupShield:
		return "Shield"
	case object.PowerupSlowTime:
		return "Slow"
	case object.PowerupMagnet:
		return "Magnet"
	default:
		return k.String()
	}
}

// drawPopups draws floating score text at its field position.
func (c *Client) drawPopups(snap *loop.Snapshot) {
	for _, p := range snap.Popups {
		col, row := c.canvas.LogicalToTerminal(p.X, p.Y)
		text := c.styles.fg(faded(p.Fill, p.Fade)).Bold(true).Render(p.Text)
		col -= lipgloss.Width(text) / 2
		if col < 1 || col+lipgloss.Width(text) > c.canvas.TerminalWidth() {
			continue
		}
		c.writeText(col, row, text)
	}
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	st := c.styles
	lines := []string{
		st.title(),
		"",
		st.dim.Render("~ catch the orbs that match your paddle ~"),
		"",
		st.text.Render("Mouse / A D / < >   Move"),
		st.text.Render("Hold click / SPACE  Shrink"),
		st.text.Render("P / ESC             Pause"),
		st.text.Render("Q                   Quit"),
		"",
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		lines = append(lines, st.accent.Render(">>  Press SPACE to Start  <<"))
	} else {
		lines = append(lines, "")
	}
	if board := c.leaderboard(); board != "" {
		lines = append(lines, "", board)
	}
	c.writeBlock(centerX, centerY, st.box.Render(lipgloss.JoinVertical(lipgloss.Center, lines...)))
}

// drawPausedScreen draws the pause overlay.
func (c *Client) drawPausedScreen(centerX, centerY int) {
	st := c.styles
	body := lipgloss.JoinVertical(lipgloss.Center,
		st.accent.Render("PAUSED"),
		"",
		st.text.Render("Press P to resume"),
	)
	c.writeBlock(centerX, centerY, st.box.Render(body))
}

// drawGameOverScreen draws the final score and restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	st := c.styles
	score := 0
	if c.snapshot != nil {
		score = c.snapshot.Score
	}
	lines := []string{
		st.warn.Render("GAME OVER"),
		"",
		st.text.Render(fmt.Sprintf("Score: %d", score)),
		"",
	}
	if time.Now().UnixMilli()/600%2 == 0 {
		lines = append(lines, st.accent.Render(">>  Press R to Restart  <<"))
	} else {
		lines = append(lines, "")
	}
	if board := c.leaderboard(); board != "" {
		lines = append(lines, "", board)
	}
	c.writeBlock(centerX, centerY, st.box.Render(lipgloss.JoinVertical(lipgloss.Center, lines...)))
}

// leaderboard renders the server's best scores, highlighting this player.
func (c *Client) leaderboard() string {
	if len(c.topScores) == 0 {
		return ""
	}
	st := c.styles
	rows := []string{st.dim.Render("Top scores")}
	for i, e := range c.topScores {
		row := fmt.Sprintf("%d. %-12.12s %6d", i+1, e.Username, e.Score)
		if e.Username == c.username {
			rows = append(rows, st.accent.Render(row))
			continue
		}
		rows = append(rows, st.text.Render(row))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	st := c.styles
	left := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	body := lipgloss.JoinVertical(lipgloss.Center,
		st.warn.Render("INACTIVITY WARNING"),
		"",
		st.text.Render(fmt.Sprintf("You will be disconnected in %d seconds.", left)),
		"",
		st.dim.Render("Press any key to continue"),
	)
	c.writeBlock(centerX, centerY, st.box.Render(body))
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	st := c.styles
	remaining := int(c.state.shutdownTimer) + 1
	body := lipgloss.JoinVertical(lipgloss.Center,
		st.warn.Render("SERVER SHUTTING DOWN"),
		"",
		st.text.Render("The server is restarting for maintenance."),
		st.text.Render("Please reconnect in a moment."),
		"",
		st.text.Render(fmt.Sprintf("Disconnecting in %d seconds...", remaining)),
		st.dim.Render("Press Q to disconnect now"),
	)
	c.writeBlock(centerX, centerY, st.box.Render(body))
}
