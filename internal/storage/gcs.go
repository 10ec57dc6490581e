package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSStorage uploads finished decks to a bucket and lists what is already
// there.
type GCSStorage struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSStorage(ctx context.Context, bucket, prefix string) (*GCSStorage, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSStorage) Close() error {
	return s.client.Close()
}

// UploadDeck copies a local deck file into the bucket and returns its gs://
// location.
func (s *GCSStorage) UploadDeck(ctx context.Context, deckPath string) (string, error) {
	f, err := os.Open(deckPath)
	if err != nil {
		return "", fmt.Errorf("failed to open deck: %w", err)
	}
	defer func() { _ = f.Close() }()

	object := path.Join(s.prefix, filepath.Base(deckPath))
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	w.ContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload deck: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", s.bucket, object), nil
}

func (s *GCSStorage) ListDecks(ctx context.Context) ([]string, error) {
	bkt := s.client.Bucket(s.bucket)
	query := &storage.Query{Prefix: s.prefix}

	var decks []string
	it := bkt.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if strings.EqualFold(path.Ext(attrs.Name), ".pptx") {
			decks = append(decks, fmt.Sprintf("gs://%s/%s", s.bucket, attrs.Name))
		}
	}

	return decks, nil
}
