package input

import (
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	in := s.parse([]byte("a p\r"), now)

	if !in.Left || !in.Space || !in.Pause || !in.Enter {
		t.Fatalf("input = %+v", in)
	}
	if in.Right || in.Quit || in.Restart {
		t.Fatalf("unexpected keys: %+v", in)
	}
	if string(in.Pressed) != "a p\r" {
		t.Fatalf("pressed = %q", in.Pressed)
	}
}

func TestParseArrows(t *testing.T) {
	s := &Stream{}
	in := s.parse([]byte("\x1b[C\x1b[A"), time.Now())
	if !in.Right || in.Left {
		t.Fatalf("input = %+v", in)
	}
	if in.Escape {
		t.Fatal("arrow sequence read as escape")
	}
	if len(in.Pressed) != 0 {
		t.Fatalf("escape sequence bytes leaked into Pressed: %q", in.Pressed)
	}
}

func TestKeyHoldExpires(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.parse([]byte("d"), now)

	if in := s.parse(nil, now.Add(keyHoldDuration/2)); !in.Right {
		t.Fatal("key released inside the hold window")
	}
	if in := s.parse(nil, now.Add(2*keyHoldDuration)); in.Right {
		t.Fatal("key still held after the hold window")
	}
}

func TestParseMouse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Mouse
	}{
		{name: "move", in: "\x1b[<35;10;5M", want: Mouse{Col: 10, Row: 5, Moved: true}},
		{name: "press", in: "\x1b[<0;3;4M", want: Mouse{Col: 3, Row: 4, Moved: true, Down: true}},
		{name: "release", in: "\x1b[<0;3;4m", want: Mouse{Col: 3, Row: 4, Moved: true, Up: true}},
		{name: "drag", in: "\x1b[<32;7;4M", want: Mouse{Col: 7, Row: 4, Moved: true}},
		{name: "right button", in: "\x1b[<2;7;4M", want: Mouse{Col: 7, Row: 4, Moved: true}},
		{name: "wheel", in: "\x1b[<64;9;9M", want: Mouse{Col: 9, Row: 9, Moved: true}},
		{name: "latest wins", in: "\x1b[<35;1;1M\x1b[<35;80;24M", want: Mouse{Col: 80, Row: 24, Moved: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{}
			in := s.parse([]byte(tt.in), time.Now())
			if in.Mouse != tt.want {
				t.Fatalf("mouse = %+v, want %+v", in.Mouse, tt.want)
			}
			if len(in.Pressed) != 0 || in.Escape {
				t.Fatalf("mouse report read as keys: %+v", in)
			}
		})
	}
}

func TestParseMouseSplitAcrossReads(t *testing.T) {
	s := &Stream{}
	now := time.Now()

	in := s.parse([]byte("x\x1b[<0;12"), now)
	if in.Mouse.Moved {
		t.Fatal("incomplete report applied")
	}
	if string(s.pending) != "\x1b[<0;12" {
		t.Fatalf("pending = %q", s.pending)
	}

	buf := append(s.pending, []byte(";6M")...)
	s.pending = nil
	in = s.parse(buf, now)
	if !in.Mouse.Down || in.Mouse.Col != 12 || in.Mouse.Row != 6 {
		t.Fatalf("mouse = %+v", in.Mouse)
	}
}

func TestMousePositionPersists(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.parse([]byte("\x1b[<35;40;10M"), now)

	in := s.parse(nil, now)
	if in.Mouse.Moved {
		t.Fatal("Moved set without a report")
	}
	if in.Mouse.Col != 40 || in.Mouse.Row != 10 {
		t.Fatalf("position lost: %+v", in.Mouse)
	}
	if in.Active() {
		t.Fatal("idle frame reported active")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.parse([]byte(" "), now)
	ResetKeyInput(s)
	if in := s.parse(nil, now); in.Space {
		t.Fatal("space survived reset")
	}
}
