package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GCSStorage implements the Storage interface for Google Cloud Storage
type GCSStorage struct {
	client       *storage.Client
	bucket       string
	objectPrefix string
	ctx          context.Context
}

// NewGCSStorage creates a new GCSStorage instance
func NewGCSStorage(ctx context.Context, bucketName, objectPrefix, credentialsFile string) (*GCSStorage, error) {
	var client *storage.Client
	var err error

	if credentialsFile != "" {
		client, err = storage.NewClient(ctx, option.WithCredentialsFile(credentialsFile))
	} else {
		// Use application default credentials
		client, err = storage.NewClient(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSStorage{
		client:       client,
		bucket:       bucketName,
		objectPrefix: strings.Trim(objectPrefix, "/"),
		ctx:          ctx,
	}, nil
}

func (s *GCSStorage) objectName(p string) string {
	name := strings.TrimPrefix(p, "/")
	if s.objectPrefix != "" {
		name = s.objectPrefix + "/" + name
	}
	return name
}

// GetReader returns a reader for an object
func (s *GCSStorage) GetReader(p string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.objectName(p)).NewReader(s.ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.Location(p))
	}
	return r, err
}

// GetWriter returns a writer for an object. The upload completes on Close.
func (s *GCSStorage) GetWriter(p string) (io.WriteCloser, error) {
	w := s.client.Bucket(s.bucket).Object(s.objectName(p)).NewWriter(s.ctx)
	switch path.Ext(p) {
	case ".csv":
		w.ContentType = "text/csv"
	case ".png":
		w.ContentType = "image/png"
	}
	return w, nil
}

// FileExists checks if an object exists
func (s *GCSStorage) FileExists(p string) bool {
	_, err := s.client.Bucket(s.bucket).Object(s.objectName(p)).Attrs(s.ctx)
	return err == nil
}

// ListFiles lists objects under dir whose base name starts with pattern
func (s *GCSStorage) ListFiles(dir string, pattern string) ([]string, error) {
	prefix := ""
	if dir != "" {
		prefix = strings.TrimSuffix(dir, "/") + "/"
	}

	it := s.client.Bucket(s.bucket).Objects(s.ctx, &storage.Query{
		Prefix: s.objectName(prefix),
	})

	var results []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error listing objects: %w", err)
		}

		// Skip directories (objects ending with /)
		if strings.HasSuffix(attrs.Name, "/") {
			continue
		}

		fileName := path.Base(attrs.Name)
		if pattern != "" && !strings.HasPrefix(fileName, pattern) {
			continue
		}

		results = append(results, path.Join(dir, fileName))
	}

	return results, nil
}

func (s *GCSStorage) Location(p string) string {
	return fmt.Sprintf("gs://%s/%s", s.bucket, s.objectName(p))
}

// Close closes the GCS client
func (s *GCSStorage) Close() error {
	return s.client.Close()
}
