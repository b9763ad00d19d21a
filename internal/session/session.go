// Package session holds the authenticated identity for the current user and
// mirrors it to durable storage. The in-memory state and the stored records
// are updated together: every code path that sets one sets both, and every
// code path that clears one clears both.
package session

import (
	"sync"

	"ob-go/internal/model"
	"ob-go/internal/state"
)

// Session is the credential and identity held for the logged-in user.
type Session struct {
	Token    string     `json:"token"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Role     model.Role `json:"role"`
}

// Persister stores the durable session records: an opaque token and the
// JSON-serialized session, written together and cleared together.
type Persister interface {
	// Save writes both records. On error nothing observable may change.
	Save(s *Session) error
	// Load returns the stored session, or (nil, nil) when none is stored.
	// A corrupt or partial record returns an error.
	Load() (*Session, error)
	// Clear removes both records. Clearing an empty store is not an error.
	Clear() error
}

// Store is the process-wide auth state. Only the login/register/logout flows
// and the gateway's 401 handler write it; everything else reads.
type Store struct {
	mu      sync.Mutex
	persist Persister
	cell    *state.Cell[*Session]
}

// NewStore creates a Store rehydrated from the persister. A corrupt or
// unreadable stored record yields a logged-out store, never an error.
func NewStore(p Persister) *Store {
	current, err := p.Load()
	if err != nil {
		current = nil
	}
	if current != nil && current.Token == "" {
		current = nil
	}
	return &Store{
		persist: p,
		cell:    state.NewCell(current),
	}
}

// Current returns the session, or nil when logged out.
func (s *Store) Current() *Session {
	return s.cell.Get()
}

// IsLoggedIn reports whether a session exists.
func (s *Store) IsLoggedIn() bool {
	return s.cell.Get() != nil
}

// Role returns the current role. ok is false when logged out.
func (s *Store) Role() (role model.Role, ok bool) {
	cur := s.cell.Get()
	if cur == nil {
		return "", false
	}
	return cur.Role, true
}

// IsAdmin reports whether the current session carries the ADMIN role.
func (s *Store) IsAdmin() bool {
	role, ok := s.Role()
	return ok && role == model.RoleAdmin
}

// Set persists the session and then flips the in-memory state. On persist
// failure the prior state is untouched, so there is no window where the
// durable and in-memory views disagree.
func (s *Store) Set(sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist.Save(&sess); err != nil {
		return err
	}
	s.cell.Set(&sess)
	return nil
}

// Clear removes the durable records and flips the in-memory state to logged
// out. Safe to call with no session.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist.Clear(); err != nil {
		return err
	}
	s.cell.Set(nil)
	return nil
}

// Subscribe registers fn to observe every committed auth-state change.
// fn receives nil on logout.
func (s *Store) Subscribe(fn func(*Session)) (cancel func()) {
	return s.cell.Subscribe(fn)
}
