package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/coloroid/internal/loop"
)

// DefaultSampleRate is used when Options leaves SampleRate unset.
const DefaultSampleRate = beep.SampleRate(44100)

// Options configures a Player.
type Options struct {
	Volume     float64 // Linear master gain in [0, 1]
	SampleRate beep.SampleRate
	Logger     *log.Logger
}

// Player mixes cues for one local session.
type Player struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	master *effects.Volume
	live   bool // Output goes through the speaker
	logger *log.Logger
}

// NewPlayer opens the default audio device and starts playback.
func NewPlayer(opts Options) (*Player, error) {
	p := newPlayer(opts)
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.master)
	p.live = true
	p.logger.Debug("Audio started", "rate", int(p.rate), "volume", opts.Volume)
	return p, nil
}

// newPlayer builds a player that is not attached to any device.
func newPlayer(opts Options) *Player {
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	mixer := &beep.Mixer{}
	return &Player{
		rate:   opts.SampleRate,
		mixer:  mixer,
		master: gain(mixer, opts.Volume),
		logger: opts.Logger,
	}
}

// Handle queues the cue for e, if any. Entering pause drops queued cues.
func (p *Player) Handle(e loop.Event) {
	cue := CueFor(p.rate, e)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if e.Type == loop.EventPauseChanged && e.Paused {
		p.mixer.Clear()
	}
	if cue != nil {
		p.mixer.Add(cue)
	}
}

// Pending returns the number of cues still playing.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.live {
		return
	}
	speaker.Close()
	p.live = false
}
