package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// AgePersister stores the same two records as FilePersister, each encrypted
// to an X25519 identity held in a key file (created by `ob keys init`).
type AgePersister struct {
	dir          string
	identityPath string
}

var _ Persister = (*AgePersister)(nil)

// NewAgePersister creates an AgePersister rooted at dir using the identity
// at identityPath.
func NewAgePersister(dir, identityPath string) *AgePersister {
	return &AgePersister{dir: dir, identityPath: identityPath}
}

// GenerateIdentity creates a new X25519 identity file at path. It refuses to
// overwrite an existing key.
func GenerateIdentity(path string) (publicKey string, err error) {
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("identity file already exists at %s", path)
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return "", fmt.Errorf("generating identity: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", fmt.Errorf("creating key directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(identity.String()+"\n"), 0600); err != nil {
		return "", fmt.Errorf("writing identity file: %w", err)
	}
	return identity.Recipient().String(), nil
}

// Save encrypts and writes both records.
func (p *AgePersister) Save(s *Session) error {
	identity, err := p.loadIdentity()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := p.writeEncrypted(sessionFile, data, identity.Recipient()); err != nil {
		return fmt.Errorf("writing session record: %w", err)
	}
	if err := p.writeEncrypted(tokenFile, []byte(s.Token), identity.Recipient()); err != nil {
		return fmt.Errorf("writing token record: %w", err)
	}
	return nil
}

// Load decrypts both records. A missing token record means no session.
func (p *AgePersister) Load() (*Session, error) {
	identity, err := p.loadIdentity()
	if err != nil {
		return nil, err
	}

	token, ok, err := p.readEncrypted(tokenFile, identity)
	if err != nil {
		return nil, fmt.Errorf("reading token record: %w", err)
	}
	if !ok || len(token) == 0 {
		return nil, nil
	}

	data, ok, err := p.readEncrypted(sessionFile, identity)
	if err != nil {
		return nil, fmt.Errorf("reading session record: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("session record missing")
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
func (p *AgePersister) Clear() error {
	if err := os.Remove(filepath.Join(p.dir, tokenFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token record: %w", err)
	}
	if err := os.Remove(filepath.Join(p.dir, sessionFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session record: %w", err)
	}
	return nil
}

func (p *AgePersister) loadIdentity() (*age.X25519Identity, error) {
	keyData, err := os.ReadFile(p.identityPath)
	if err != nil {
		return nil, fmt.Errorf("reading identity file: %w", err)
	}

	identities, err := age.ParseIdentities(bytes.NewReader(keyData))
	if err != nil {
		return nil, fmt.Errorf("parsing identity file: %w", err)
	}
	for _, id := range identities {
		if x, ok := id.(*age.X25519Identity); ok {
			return x, nil
		}
	}
	return nil, fmt.Errorf("no X25519 identity found in %s", p.identityPath)
}

func (p *AgePersister) writeEncrypted(name string, data []byte, recipient age.Recipient) error {
	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("encrypting record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return writeAtomic(filepath.Join(p.dir, name), buf.Bytes())
}

func (p *AgePersister) readEncrypted(name string, identity age.Identity) (data []byte, ok bool, err error) {
	raw, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	r, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return nil, false, fmt.Errorf("decrypting record: %w", err)
	}
	data, err = io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("reading decrypted record: %w", err)
	}
	return data, true, nil
}
