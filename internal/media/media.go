// Package media uploads post attachments and returns the public URL the
// server stores alongside the post.
package media

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ob-go/internal/model"
)

// Uploader stores a media file somewhere reachable by the server and other
// readers, returning its public URL.
type Uploader interface {
	Upload(ctx context.Context, r io.Reader, name string, size int64, contentType string) (string, error)

	// ValidateSetup checks that the uploader is usable with its current
	// configuration, before any upload is attempted.
	ValidateSetup() error
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var videoExtensions = map[string]bool{
	".mp4": true,
	".mov": true,
	".avi": true,
}

// TypeForFile returns the media type for a file name based on its extension.
func TypeForFile(name string) (model.MediaType, error) {
	ext := strings.ToLower(filepath.Ext(name))
	switch {
	case imageExtensions[ext]:
		return model.MediaImage, nil
	case videoExtensions[ext]:
		return model.MediaVideo, nil
	default:
		return "", fmt.Errorf("unsupported media extension: %s", ext)
	}
}

// ContentTypeForFile returns the MIME type for a supported media file name.
func ContentTypeForFile(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".mp4":
		return "video/mp4"
	case ".mov":
		return "video/quicktime"
	case ".avi":
		return "video/x-msvideo"
	default:
		return "application/octet-stream"
	}
}
