package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilePersister_RoundTrip(t *testing.T) {
	p := NewFilePersister(t.TempDir())

	sess := testSession()
	if err := p.Save(&sess); err != nil {
		t.Fatalf("Save() error = %v", err)
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
	if got.Username != sess.Username {
		t.Errorf("Username = %q, want %q", got.Username, sess.Username)
	}
	if got.Role != sess.Role {
		t.Errorf("Role = %q, want %q", got.Role, sess.Role)
	}
}

func TestFilePersister_Load(t *testing.T) {
	t.Run("missing token record means no session", func(t *testing.T) {
		p := NewFilePersister(t.TempDir())

		got, err := p.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != nil {
			t.Errorf("Load() = %v, want nil", got)
		}
	})

	t.Run("empty token record means no session", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, tokenFile), nil, 0600); err != nil {
			t.Fatal(err)
		}
		p := NewFilePersister(dir)

		got, err := p.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != nil {
			t.Errorf("Load() = %v, want nil", got)
		}
	})

	t.Run("corrupt session record is an error", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, tokenFile), []byte("tok"), 0600); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, sessionFile), []byte("{not json"), 0600); err != nil {
			t.Fatal(err)
		}
		p := NewFilePersister(dir)

		if _, err := p.Load(); err == nil {
			t.Error("Load() error = nil, want decode error")
		}
	})
}

func TestFilePersister_Clear(t *testing.T) {
	dir := t.TempDir()
	p := NewFilePersister(dir)

	sess := testSession()
	if err := p.Save(&sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := p.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, tokenFile)); !os.IsNotExist(err) {
		t.Error("token record still exists after Clear")
	}
	if _, err := os.Stat(filepath.Join(dir, sessionFile)); !os.IsNotExist(err) {
		t.Error("session record still exists after Clear")
	}

	// Clearing again is not an error.
	if err := p.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestFilePersister_TokenPermissions(t *testing.T) {
	dir := t.TempDir()
	p := NewFilePersister(dir)

	sess := testSession()
	if err := p.Save(&sess); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, tokenFile))
	if err != nil {
		t.Fatalf("stat token record: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("token record mode = %o, want 600", perm)
	}
}
