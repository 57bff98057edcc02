// Package session tracks the current authenticated session as reported by
// the identity provider's session-change stream.
package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/belmobile/belmobile-backend/internal/platform"
)

type State string

const (
	// StateLoading means the provider has not reported yet; consumers must
	// treat it as unknown and make no redirect decision.
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Tracker mirrors the provider's session state. It never polls and has no
// local override; every transition comes from the provider's callback.
type Tracker struct {
	log *zap.Logger

	mu      sync.RWMutex
	state   State
	current *platform.Session

	unsubscribe func()
}

func NewTracker(log *zap.Logger) *Tracker {
	return &Tracker{log: log, state: StateLoading}
}

// Watch registers the tracker on the provider's session-change stream.
func (t *Tracker) Watch(provider platform.IdentityProvider) {
	t.unsubscribe = provider.OnSessionChange(t.onChange)
}

// Stop tears the session-change subscription down.
func (t *Tracker) Stop() {
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *Tracker) onChange(s *platform.Session) {
	t.mu.Lock()
	t.current = s
	if s != nil {
		t.state = StateAuthenticated
	} else {
		t.state = StateUnauthenticated
	}
	state := t.state
	t.mu.Unlock()

	t.log.Debug("session state changed", zap.String("state", string(state)))
}

func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Session returns the externally-owned session reference, nil when signed
// out or still loading.
func (t *Tracker) Session() *platform.Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// IsAdmin reports whether any session is present. There is no role or claim
// check; the domain has exactly two trust levels.
func (t *Tracker) IsAdmin() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current != nil
}

// Loading reports whether the provider has not yet resolved the session.
func (t *Tracker) Loading() bool {
	return t.State() == StateLoading
}
