package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ob-go/internal/config"
	"ob-go/internal/model"
)

func TestTypeForFile(t *testing.T) {
	tests := []struct {
		name    string
		want    model.MediaType
		wantErr bool
	}{
		{"photo.jpg", model.MediaImage, false},
		{"photo.JPEG", model.MediaImage, false},
		{"diagram.png", model.MediaImage, false},
		{"loop.gif", model.MediaImage, false},
		{"clip.mp4", model.MediaVideo, false},
		{"clip.MOV", model.MediaVideo, false},
		{"clip.avi", model.MediaVideo, false},
		{"notes.txt", "", true},
		{"archive.tar.gz", "", true},
		{"noextension", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TypeForFile(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("TypeForFile(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("TypeForFile(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestContentTypeForFile(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"diagram.png", "image/png"},
		{"clip.mp4", "video/mp4"},
		{"clip.mov", "video/quicktime"},
		{"unknown.bin", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := ContentTypeForFile(tt.name); got != tt.want {
			t.Errorf("ContentTypeForFile(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFilesystemUploader(t *testing.T) {
	t.Run("copies the file and returns its public URL", func(t *testing.T) {
		root := t.TempDir()
		u := NewFilesystemUploader(config.MediaConfig{
			FSRoot:    root,
			FSBaseURL: "http://localhost:8080/media/",
		})
		if err := u.ValidateSetup(); err != nil {
			t.Fatalf("ValidateSetup() error = %v", err)
		}

		got, err := u.Upload(context.Background(), strings.NewReader("image bytes"),
			"/tmp/somewhere/photo.jpg", 11, "image/jpeg")
		if err != nil {
			t.Fatalf("Upload() error = %v", err)
		}
		if got != "http://localhost:8080/media/photo.jpg" {
			t.Errorf("url = %q, want trailing slash collapsed and base name kept", got)
		}

		data, err := os.ReadFile(filepath.Join(root, "photo.jpg"))
		if err != nil {
			t.Fatalf("reading copied file: %v", err)
		}
		if string(data) != "image bytes" {
			t.Errorf("copied content = %q, want %q", data, "image bytes")
		}
	})

	t.Run("setup fails for a missing root", func(t *testing.T) {
		u := NewFilesystemUploader(config.MediaConfig{
			FSRoot:    filepath.Join(t.TempDir(), "missing"),
			FSBaseURL: "http://localhost:8080/media",
		})
		if err := u.ValidateSetup(); err == nil {
			t.Error("ValidateSetup() error = nil, want stat failure")
		}
	})

	t.Run("setup fails without a base url", func(t *testing.T) {
		u := NewFilesystemUploader(config.MediaConfig{FSRoot: t.TempDir()})
		if err := u.ValidateSetup(); err == nil {
			t.Error("ValidateSetup() error = nil, want missing base_url")
		}
	})
}

func TestMemoryUploader(t *testing.T) {
	u := NewMemoryUploader()

	got, err := u.Upload(context.Background(), strings.NewReader("bytes"), "clip.mp4", 5, "video/mp4")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if got != "https://media.example.com/clip.mp4" {
		t.Errorf("url = %q", got)
	}
	if string(u.Files["clip.mp4"]) != "bytes" {
		t.Errorf("stored = %q, want %q", u.Files["clip.mp4"], "bytes")
	}
}

func TestNewUploaderFromConfig(t *testing.T) {
	t.Run("none yields no uploader", func(t *testing.T) {
		u, err := NewUploaderFromConfig(context.Background(), config.MediaConfig{Type: "none"})
		if err != nil {
			t.Fatalf("NewUploaderFromConfig() error = %v", err)
		}
		if u != nil {
			t.Errorf("uploader = %v, want nil", u)
		}
	})

	t.Run("empty type behaves like none", func(t *testing.T) {
		u, err := NewUploaderFromConfig(context.Background(), config.MediaConfig{})
		if err != nil || u != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", u, err)
		}
	})

	t.Run("memory", func(t *testing.T) {
		u, err := NewUploaderFromConfig(context.Background(), config.MediaConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewUploaderFromConfig() error = %v", err)
		}
		if _, ok := u.(*MemoryUploader); !ok {
			t.Errorf("uploader = %T, want *MemoryUploader", u)
		}
	})

	t.Run("unknown type fails", func(t *testing.T) {
		if _, err := NewUploaderFromConfig(context.Background(), config.MediaConfig{Type: "ftp"}); err == nil {
			t.Error("NewUploaderFromConfig() error = nil, want unknown type")
		}
	})
}
