package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	tokenFile   = "token"
	sessionFile = "session.json"
)

// FilePersister stores the session as two records in a directory:
// "token" holds the opaque bearer token, "session.json" the full session.
// The token file is written last and removed first, so a non-empty token
// record implies a complete session record.
type FilePersister struct {
	dir string
}

var _ Persister = (*FilePersister)(nil)

// NewFilePersister creates a FilePersister rooted at dir.
func NewFilePersister(dir string) *FilePersister {
	return &FilePersister{dir: dir}
}

// Save writes both records atomically (temp file + rename each).
func (p *FilePersister) Save(s *Session) error {
	if err := os.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := writeAtomic(filepath.Join(p.dir, sessionFile), data); err != nil {
		return fmt.Errorf("writing session record: %w", err)
	}
	if err := writeAtomic(filepath.Join(p.dir, tokenFile), []byte(s.Token)); err != nil {
		return fmt.Errorf("writing token record: %w", err)
	}
	return nil
}

// Load reads both records. A missing token record means no session.
func (p *FilePersister) Load() (*Session, error) {
	token, err := os.ReadFile(filepath.Join(p.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading token record: %w", err)
	}
	if len(token) == 0 {
		return nil, nil
	}

	data, err := os.ReadFile(filepath.Join(p.dir, sessionFile))
	if err != nil {
		return nil, fmt.Errorf("reading session record: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	if s.Token == "" {
		s.Token = string(token)
	}
	return &s, nil
}

// Clear removes both records, token first.
func (p *FilePersister) Clear() error {
	if err := os.Remove(filepath.Join(p.dir, tokenFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token record: %w", err)
	}
	if err := os.Remove(filepath.Join(p.dir, sessionFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session record: %w", err)
	}
	return nil
}

// writeAtomic writes data to path via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ob-session-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
