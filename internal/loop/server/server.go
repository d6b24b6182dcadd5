package server

import (
	"context"
	"encoding/binary"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/coloroid/internal/loop"
	"github.com/tomz197/coloroid/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and potential network-based server implementations.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, input loop.Input)
	TopScores() []TopScoreEntry
}

// Options configures a Server.
type Options struct {
	Tuning config.Tuning
	Seed   uint64 // Zero derives each session's seed from its ID
	Logger *log.Logger
}

// Server hosts one game session per connected client and steps them all on a
// fixed tick.
type Server struct {
	tuning       config.Tuning
	seed         uint64
	logger       *log.Logger
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	scores       leaderboard
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID        int
	SessionID uuid.UUID
	Username  string           // Display name for this client
	EventsCh  chan ClientEvent // Session events and server notices

	session  *loop.Session
	input    loop.Input // Inputs merged since the last tick
	snapshot atomic.Pointer[loop.Snapshot]
	joinedAt time.Time
}

// Snapshot returns the latest picture of this client's session. Nil until the
// server has ticked once after registration.
func (h *ClientHandle) Snapshot() *loop.Snapshot {
	return h.snapshot.Load()
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    loop.Input
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type    ClientEventType
	Session loop.Event // For EventSession
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventSession ClientEventType = iota
	EventServerShutdown
)

// NewServer creates a new game server.
func NewServer(opts Options) (*Server, error) {
	if err := opts.Tuning.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		tuning:       opts.Tuning,
		seed:         opts.Seed,
		logger:       logger,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
	}, nil
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frameStart := time.Now()
		s.Tick(frameStart)

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// Tick runs one server frame at the given time: registrations, inputs, one
// simulation step per session, then snapshots.
func (s *Server) Tick(now time.Time) {
	s.processRegistrations(now)
	s.collectInputs()
	s.updateSessions(now)
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client with the given username and returns its handle.
// The session is created on the next tick.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:        id,
		SessionID: uuid.New(),
		Username:  username,
		EventsCh:  make(chan ClientEvent, 64),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// SendInput sends input from a client to the server.
func (s *Server) SendInput(clientID int, input loop.Input) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: input}:
	default:
		// Input channel full, drop input
	}
}

// TopScores returns the leaderboard, best first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scores.entries()
}

// sessionSeed picks the random seed for a new session.
func (s *Server) sessionSeed(handle *ClientHandle) uint64 {
	if s.seed != 0 {
		return s.seed + uint64(handle.ID)
	}
	return binary.BigEndian.Uint64(handle.SessionID[:8]) | 1
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations(now time.Time) {
	for {
		select {
		case handle := <-s.registerCh:
			handle.session = loop.NewSession(s.tuning, loop.NewRandomSource(s.sessionSeed(handle)), now)
			handle.joinedAt = now
			handle.snapshot.Store(handle.session.Snapshot(now))
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.logger.Info("Session opened", "client", handle.ID, "session", handle.SessionID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.logger.Info("Session closed", "client", clientID, "session", handle.SessionID,
					"score", handle.session.Score(), "duration", now.Sub(handle.joinedAt).Round(time.Second))
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectInputs gathers all pending inputs from clients, merging everything
// that arrived since the last tick.
func (s *Server) collectInputs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case ci := <-s.inputChan:
			if handle, ok := s.clients[ci.ClientID]; ok {
				handle.input = handle.input.Merge(ci.Input)
			}
		default:
			return
		}
	}
}

// updateSessions steps every session and publishes its events and snapshot.
func (s *Server) updateSessions(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, handle := range s.clients {
		handle.session.Step(handle.input, now)
		handle.input = loop.Input{Steer: handle.input.Steer}

		for _, e := range handle.session.DrainEvents() {
			s.observe(handle, e)
			select {
			case handle.EventsCh <- ClientEvent{Type: EventSession, Session: e}:
			default:
			}
		}
		handle.snapshot.Store(handle.session.Snapshot(now))
	}
}

// observe logs lifecycle events and records finished games.
func (s *Server) observe(handle *ClientHandle, e loop.Event) {
	switch e.Type {
	case loop.EventStarted, loop.EventRestartCompleted:
		s.logger.Debug("Game started", "client", handle.ID, "session", handle.SessionID)
	case loop.EventGameOver:
		s.logger.Info("Game over", "client", handle.ID, "session", handle.SessionID, "user", handle.Username, "score", e.Score)
		s.scores.record(TopScoreEntry{Username: handle.Username, Score: e.Score, clientID: handle.ID})
	}
}
