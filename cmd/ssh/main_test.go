package main

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		term    string
		environ []string
		want    termenv.Profile
	}{
		{term: "xterm-256color", want: termenv.ANSI256},
		{term: "xterm-256color", environ: []string{"LANG=C", "COLORTERM=truecolor"}, want: termenv.TrueColor},
		{term: "xterm-kitty", want: termenv.TrueColor},
		{term: "xterm", want: termenv.ANSI},
		{term: "dumb", want: termenv.Ascii},
		{term: "", want: termenv.Ascii},
	}
	for _, tt := range tests {
		if got := profileFor(tt.term, tt.environ); got != tt.want {
			t.Errorf("profileFor(%q, %v) = %s, want %s", tt.term, tt.environ, profileName(got), profileName(tt.want))
		}
	}
}

func TestSizeTracker(t *testing.T) {
	s := newSizeTracker(80, 24)
	s.update(120, 40)
	w, h, err := s.getSize()
	if err != nil || w != 120 || h != 40 {
		t.Fatalf("getSize = %d,%d,%v", w, h, err)
	}
}
