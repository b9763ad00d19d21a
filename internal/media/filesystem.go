package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"ob-go/internal/config"
)

// FilesystemUploader copies media files into a directory served by a static
// file server, for setups where the server and client share a host.
type FilesystemUploader struct {
	root    string
	baseURL string
}

func NewFilesystemUploader(cfg config.MediaConfig) *FilesystemUploader {
	return &FilesystemUploader{
		root:    cfg.FSRoot,
		baseURL: strings.TrimRight(cfg.FSBaseURL, "/"),
	}
}

func (u *FilesystemUploader) ValidateSetup() error {
	if u.root == "" {
		return fmt.Errorf("filesystem media root is required")
	}
	if u.baseURL == "" {
		return fmt.Errorf("filesystem media base_url is required")
	}
	info, err := os.Stat(u.root)
	if err != nil {
		return fmt.Errorf("checking media root %s: %w", u.root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("media root %s is not a directory", u.root)
	}
	return nil
}

func (u *FilesystemUploader) Upload(ctx context.Context, r io.Reader, name string, size int64, contentType string) (string, error) {
	base := path.Base(name)
	target := filepath.Join(u.root, base)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating media file %s: %w", target, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("writing media file %s: %w", target, err)
	}

	return u.baseURL + "/" + url.PathEscape(base), nil
}
