package media

import (
	"context"
	"fmt"
	"io"
	"path"
)

// MemoryUploader keeps uploaded bytes in memory. It is used in tests.
type MemoryUploader struct {
	BaseURL string
	Files   map[string][]byte

	UploadErr error
}

func NewMemoryUploader() *MemoryUploader {
	return &MemoryUploader{
		BaseURL: "https://media.example.com",
		Files:   make(map[string][]byte),
	}
}

func (u *MemoryUploader) ValidateSetup() error {
	return nil
}

func (u *MemoryUploader) Upload(ctx context.Context, r io.Reader, name string, size int64, contentType string) (string, error) {
	if u.UploadErr != nil {
		return "", u.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading media: %w", err)
	}
	base := path.Base(name)
	u.Files[base] = data
	return u.BaseURL + "/" + base, nil
}
