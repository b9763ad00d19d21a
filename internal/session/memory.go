package session

import "sync"

// MemoryPersister keeps the session records in memory. Useful for tests and
// for throwaway sessions that should not outlive the process.
// This implementation is safe for concurrent use.
type MemoryPersister struct {
	mu      sync.Mutex
	session *Session
	// LoadErr, when set, is returned by Load. Tests use it to simulate a
	// corrupt stored record.
	LoadErr error
	// SaveErr, when set, is returned by Save.
	SaveErr error
}

var _ Persister = (*MemoryPersister)(nil)

// NewMemoryPersister creates an empty MemoryPersister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Save(s *Session) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveErr != nil {
		return p.SaveErr
	}
	copied := *s
	p.session = &copied
	return nil
}

func (p *MemoryPersister) Load() (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.LoadErr != nil {
		return nil, p.LoadErr
	}
	if p.session == nil {
		return nil, nil
	}
	copied := *p.session
	return &copied, nil
}

func (p *MemoryPersister) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = nil
	return nil
}

// Stored returns the currently persisted session, or nil.
func (p *MemoryPersister) Stored() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil
	}
	copied := *p.session
	return &copied
}
