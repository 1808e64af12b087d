package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	gcs "cloud.google.com/go/storage"
)

// GCSPublisher uploads artifacts into a Google Cloud Storage bucket,
// optionally under a key prefix. Credentials come from the ambient
// application-default chain.
type GCSPublisher struct {
	client *gcs.Client
	bucket string
	prefix string
}

func NewGCSPublisher(ctx context.Context, bucket, prefix string) (*GCSPublisher, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	return &GCSPublisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (p *GCSPublisher) Publish(ctx context.Context, localPath, objectName string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("storage: open %s: %w", localPath, err)
	}
	defer f.Close()

	key := objectName
	if p.prefix != "" {
		key = path.Join(p.prefix, objectName)
	}

	w := p.client.Bucket(p.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/gzip"

	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return "", fmt.Errorf("storage: upload %s: %w", localPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: finalize %s: %w", key, err)
	}

	return fmt.Sprintf("gs://%s/%s", p.bucket, key), nil
}

func (p *GCSPublisher) Close() error {
	return p.client.Close()
}
