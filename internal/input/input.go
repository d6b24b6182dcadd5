package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Mouse is the pointer activity seen during one frame (SGR 1006 reports).
type Mouse struct {
	Col, Row int  // 1-based terminal cell of the latest report
	Moved    bool // At least one report arrived this frame
	Down     bool // Left button pressed
	Up       bool // Left button released
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Space   bool
	Enter   bool
	Escape  bool
	Pause   bool
	Restart bool
	Mouse   Mouse
	Pressed []byte // Key bytes received this frame, escape sequences excluded
}

// Active reports whether the player did anything this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0 || in.Mouse.Moved
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	space   time.Time
	enter   time.Time
	escape  time.Time
	pause   time.Time
	restart time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried to the next read
	mouse   Mouse  // Last known pointer position
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ResetKeyInput forgets recently pressed keys so a held key does not leak
// into the next screen.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and mouse reports, and accumulates
// all pressed keys. Uses key state persistence to allow detecting simultaneous
// key combinations.
func ReadInput(s *Stream) Input {
	now := time.Now()
	buf := s.pending
	s.pending = nil

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, now)
}

// parse applies buffered bytes to the stream state and builds the frame input.
func (s *Stream) parse(buf []byte, now time.Time) Input {
	var pressed []byte
	mouse := Mouse{Col: s.mouse.Col, Row: s.mouse.Row}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Check for escape sequences (arrow keys, mouse)
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 >= len(buf) {
				s.pending = append(s.pending, buf[i:]...)
				break
			}
			switch buf[i+2] {
			case 'C': // Right arrow
				s.state.right = now
				i += 2
				continue
			case 'D': // Left arrow
				s.state.left = now
				i += 2
				continue
			case 'A', 'B': // Up/down arrows are unused
				i += 2
				continue
			case '<':
				n, ok := parseMouse(buf[i+3:], &mouse)
				if !ok {
					s.pending = append(s.pending, buf[i:]...)
					i = len(buf)
					continue
				}
				i += 2 + n
				continue
			}
		}

		// Single byte handling - update key state
		applyByteToState(&s.state, b, now)
		pressed = append(pressed, b)
	}
	s.mouse.Col, s.mouse.Row = mouse.Col, mouse.Row

	// Build input from key state - keys are "pressed" if seen within hold duration
	return Input{
		Quit:    now.Sub(s.state.quit) < keyHoldDuration,
		Left:    now.Sub(s.state.left) < keyHoldDuration,
		Right:   now.Sub(s.state.right) < keyHoldDuration,
		Space:   now.Sub(s.state.space) < keyHoldDuration,
		Enter:   now.Sub(s.state.enter) < keyHoldDuration,
		Escape:  now.Sub(s.state.escape) < keyHoldDuration,
		Pause:   now.Sub(s.state.pause) < keyHoldDuration,
		Restart: now.Sub(s.state.restart) < keyHoldDuration,
		Mouse:   mouse,
		Pressed: pressed,
	}
}

// parseMouse decodes the tail of an SGR mouse report ("b;x;yM" or "b;x;ym")
// into m. Returns the number of bytes consumed, or ok=false if the report is
// incomplete. Malformed reports are consumed and ignored.
func parseMouse(buf []byte, m *Mouse) (n int, ok bool) {
	var fields [3]int
	field, start := 0, 0
	for n = 0; n < len(buf); n++ {
		c := buf[n]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field < len(fields) {
				v, err := strconv.Atoi(string(buf[start:n]))
				if err != nil {
					return n + 1, true
				}
				fields[field] = v
			}
			field++
			start = n + 1
			if c == ';' {
				continue
			}
			if field != len(fields) {
				return n + 1, true
			}
			applyMouse(m, fields[0], fields[1], fields[2], c == 'm')
			return n + 1, true
		default:
			return n + 1, true
		}
	}
	return 0, false
}

func applyMouse(m *Mouse, button, col, row int, release bool) {
	m.Col, m.Row = col, row
	m.Moved = true
	if button&64 != 0 { // Wheel
		return
	}
	if button&3 != 0 || button&32 != 0 && !release {
		return // Not a left-button edge
	}
	if release {
		m.Up = true
	} else {
		m.Down = true
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		state.space = now
	case '\n', '\r':
		state.enter = now
	case '\x1b':
		state.escape = now
	case 'p', 'P':
		state.pause = now
	case 'r', 'R':
		state.restart = now
	}
}
