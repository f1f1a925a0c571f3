package gcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

type BucketConfig struct {
	Name      string
	CDNDomain string
	// UploadTimeout bounds a single object write.
	UploadTimeout time.Duration
}

// ReportBucket stores rendered report artifacts.
type ReportBucket interface {
	// Upload writes data under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
	PublicURL(key string) string
	Close() error
}

type reportBucket struct {
	log           *logger.Logger
	storageClient *storage.Client
	cfg           BucketConfig
}

func NewReportBucket(ctx context.Context, cfg BucketConfig, log *logger.Logger, opts ...option.ClientOption) (ReportBucket, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		return nil, fmt.Errorf("missing REPORT_GCS_BUCKET")
	}
	if cfg.UploadTimeout <= 0 {
		cfg.UploadTimeout = 2 * time.Minute
	}

	all := append(ClientOptionsFromEnv(), opts...)
	all = append(all, option.WithScopes(storage.ScopeReadWrite))
	stClient, err := storage.NewClient(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &reportBucket{
		log:           log.With("service", "ReportBucket"),
		storageClient: stClient,
		cfg:           cfg,
	}, nil
}

func (b *reportBucket) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	key = cleanKey(key)
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	ctx, cancel := context.WithTimeout(ctx, b.cfg.UploadTimeout)
	defer cancel()

	w := b.storageClient.Bucket(b.cfg.Name).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := bytes.NewReader(data).WriteTo(w); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	b.log.Debug("Uploaded report artifact", "key", key, "bytes", len(data))
	return b.PublicURL(key), nil
}

func (b *reportBucket) PublicURL(key string) string {
	return PublicURL(b.cfg, key)
}

func (b *reportBucket) Close() error {
	if b == nil || b.storageClient == nil {
		return nil
	}
	return b.storageClient.Close()
}

// PublicURL prefers the CDN domain and falls back to the storage.googleapis.com
// object URL.
func PublicURL(cfg BucketConfig, key string) string {
	key = cleanKey(key)
	if d := strings.TrimRight(strings.TrimSpace(cfg.CDNDomain), "/"); d != "" {
		d = strings.TrimPrefix(strings.TrimPrefix(d, "https://"), "http://")
		return fmt.Sprintf("https://%s/%s", d, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", cfg.Name, key)
}

func cleanKey(key string) string {
	return strings.TrimLeft(strings.TrimSpace(key), "/")
}
