package session

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateIdentity(t *testing.T) {
	t.Run("creates identity file with public key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "keys", "ob.key")

		publicKey, err := GenerateIdentity(path)
		if err != nil {
			t.Fatalf("GenerateIdentity() error = %v", err)
		}
		if !strings.HasPrefix(publicKey, "age1") {
			t.Errorf("public key = %q, want age1... recipient", publicKey)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat identity file: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("identity file mode = %o, want 600", perm)
		}
	})

	t.Run("refuses to overwrite existing key", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ob.key")
		if _, err := GenerateIdentity(path); err != nil {
			t.Fatalf("GenerateIdentity() error = %v", err)
		}

		if _, err := GenerateIdentity(path); err == nil {
			t.Error("second GenerateIdentity() error = nil, want refusal")
		}
	})
}

func TestAgePersister_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "ob.key")
	if _, err := GenerateIdentity(keyPath); err != nil {
		t.Fatalf("GenerateIdentity() error = %v", err)
	}

	sessionDir := filepath.Join(dir, "session")
	p := NewAgePersister(sessionDir, keyPath)

	sess := testSession()
	if err := p.Save(&sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Records on disk must not contain the plaintext token.
	raw, err := os.ReadFile(filepath.Join(sessionDir, tokenFile))
	if err != nil {
		t.Fatalf("reading token record: %v", err)
	}
	if bytes.Contains(raw, []byte(sess.Token)) {
		t.Error("token record contains the plaintext token")
	}

	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil {
		t.Fatal("Load() = nil, want session")
	}
	if got.Token != sess.Token {
		t.Errorf("Token = %q, want %q", got.Token, sess.Token)
	}
	if got.Email != sess.Email {
		t.Errorf("Email = %q, want %q", got.Email, sess.Email)
	}
}

func TestAgePersister_LoadWithoutRecords(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "ob.key")
	if _, err := GenerateIdentity(keyPath); err != nil {
		t.Fatalf("GenerateIdentity() error = %v", err)
	}

	p := NewAgePersister(filepath.Join(dir, "session"), keyPath)

	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() = %v, want nil", got)
	}
}

func TestAgePersister_Clear(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "ob.key")
	if _, err := GenerateIdentity(keyPath); err != nil {
		t.Fatalf("GenerateIdentity() error = %v", err)
	}

	p := NewAgePersister(filepath.Join(dir, "session"), keyPath)
	sess := testSession()
	if err := p.Save(&sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := p.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	got, err := p.Load()
	if err != nil {
		t.Fatalf("Load() after Clear error = %v", err)
	}
	if got != nil {
		t.Errorf("Load() after Clear = %v, want nil", got)
	}
}
