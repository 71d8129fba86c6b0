// ABOUTME: RawSession is the scoped guard for unbuffered, unechoed input with exact mode restoration.
// ABOUTME: One session per Terminal; operations join a caller-held session instead of nesting.

package terminal

import (
	"fmt"
	"sync"

	"github.com/mauromedda/termctl/internal/log"
)

// rawModer switches the input stream to raw mode and returns a function
// that restores the exact settings captured before the switch.
type rawModer interface {
	MakeRaw() (restore func() error, err error)
}

// RawSession owns the input mode captured at acquisition. Release restores
// it; callers defer Release right after a successful acquisition so every
// exit path, panics included, restores the prior mode.
type RawSession struct {
	guard    *rawGuard
	restore  func() error
	released bool
}

// Release restores the prior input mode. It is safe to call more than
// once; only the first call has an effect.
func (s *RawSession) Release() error {
	if s == nil {
		return nil
	}

	s.guard.mu.Lock()
	defer s.guard.mu.Unlock()

	if s.released {
		return nil
	}
	s.released = true
	s.guard.held = nil

	if err := s.restore(); err != nil {
		log.Warn("restoring terminal mode: %v", err)
		return fmt.Errorf("restoring terminal mode: %w", err)
	}
	return nil
}

// rawGuard tracks the single raw session of a Terminal.
type rawGuard struct {
	mu   sync.Mutex
	held *RawSession
}

// acquire starts a new session. It fails with ErrRawModeActive while
// another session is held.
func (g *rawGuard) acquire(m rawModer) (*RawSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.held != nil {
		return nil, ErrRawModeActive
	}

	restore, err := m.MakeRaw()
	if err != nil {
		return nil, fmt.Errorf("entering raw mode: %w", err)
	}

	s := &RawSession{guard: g, restore: restore}
	g.held = s
	return s, nil
}

// scope returns a release func for one operation. When the caller already
// holds a session the operation joins it and the release func is a no-op.
func (g *rawGuard) scope(m rawModer) (release func(), err error) {
	g.mu.Lock()
	joined := g.held != nil
	g.mu.Unlock()

	if joined {
		return func() {}, nil
	}

	s, err := g.acquire(m)
	if err != nil {
		return nil, err
	}
	return func() { _ = s.Release() }, nil
}

// releaseHeld releases the held session, if any.
func (g *rawGuard) releaseHeld() error {
	g.mu.Lock()
	s := g.held
	g.mu.Unlock()

	return s.Release()
}

// active reports whether a session is held.
func (g *rawGuard) active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.held != nil
}
