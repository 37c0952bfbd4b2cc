// Package archive stores receipt photos in Cloud Storage so extractions
// stay auditable after the chat messages are swept away.
package archive

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

const uploadTimeout = 2 * time.Minute

// Archiver stores one photo and returns a stable URI for it.
type Archiver interface {
	Put(ctx context.Context, ownerID int64, data []byte, contentType string) (string, error)
}

// Nop discards photos. Used when no bucket is configured.
type Nop struct{}

func (Nop) Put(context.Context, int64, []byte, string) (string, error) { return "", nil }

// GCS writes photos under receipts/<owner>/<uuid> in a single bucket.
// It assumes Application Default Credentials are configured.
type GCS struct {
	client *storage.Client
	bucket string
}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (g *GCS) Close() error { return g.client.Close() }

func (g *GCS) Put(ctx context.Context, ownerID int64, data []byte, contentType string) (string, error) {
	object := fmt.Sprintf("receipts/%d/%s%s", ownerID, uuid.NewString(), extensionFor(contentType))

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := g.client.Bucket(g.bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload %s: %w", object, err)
	}
	return "gs://" + g.bucket + "/" + object, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ".bin"
	}
}

var (
	_ Archiver = (*GCS)(nil)
	_ Archiver = Nop{}
)
