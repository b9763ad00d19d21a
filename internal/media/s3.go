package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"ob-go/internal/config"
)

// S3Uploader stores media objects in an S3 bucket using multipart uploads.
type S3Uploader struct {
	bucket   string
	prefix   string
	region   string
	baseURL  string
	uploader *manager.Uploader
}

func NewS3Uploader(ctx context.Context, cfg config.MediaConfig) (*S3Uploader, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	return &S3Uploader{
		bucket:   cfg.S3Bucket,
		prefix:   strings.Trim(cfg.S3Prefix, "/"),
		region:   cfg.S3Region,
		baseURL:  strings.TrimRight(cfg.S3BaseURL, "/"),
		uploader: manager.NewUploader(client),
	}, nil
}

func (u *S3Uploader) ValidateSetup() error {
	if u.bucket == "" {
		return fmt.Errorf("s3 bucket is required")
	}
	if u.region == "" {
		return fmt.Errorf("s3 region is required")
	}
	return nil
}

func (u *S3Uploader) Upload(ctx context.Context, r io.Reader, name string, size int64, contentType string) (string, error) {
	key := path.Base(name)
	if u.prefix != "" {
		key = u.prefix + "/" + key
	}

	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s to bucket %s: %w", key, u.bucket, err)
	}

	return u.objectURL(key), nil
}

func (u *S3Uploader) objectURL(key string) string {
	escaped := url.PathEscape(key)
	// PathEscape encodes the separators too; keys keep their slashes.
	escaped = strings.ReplaceAll(escaped, "%2F", "/")
	if u.baseURL != "" {
		return u.baseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, escaped)
}
