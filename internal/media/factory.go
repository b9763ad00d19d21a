package media

import (
	"context"
	"fmt"

	"ob-go/internal/config"
)

// NewUploaderFromConfig builds a media uploader from the media configuration.
// Type "none" returns a nil uploader; commands that need one report a setup
// error instead.
func NewUploaderFromConfig(ctx context.Context, cfg config.MediaConfig) (Uploader, error) {
	switch cfg.Type {
	case "", "none":
		return nil, nil
	case "s3":
		return NewS3Uploader(ctx, cfg)
	case "filesystem":
		return NewFilesystemUploader(cfg), nil
	case "memory":
		return NewMemoryUploader(), nil
	default:
		return nil, fmt.Errorf("unknown media type: %s", cfg.Type)
	}
}
