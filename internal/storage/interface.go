package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jaki95/hot100-sentiment/config"
)

// ErrNotFound is returned by GetReader when the artifact does not exist.
var ErrNotFound = errors.New("file not found")

// Storage defines where the pipeline reads and writes its artifacts:
// intermediate CSV tables and rendered charts. Paths are relative names.
type Storage interface {
	GetReader(path string) (io.ReadCloser, error)

	GetWriter(path string) (io.WriteCloser, error)

	FileExists(path string) bool

	ListFiles(dir string, pattern string) ([]string, error)

	// Location returns a human readable address for a stored path.
	Location(path string) string

	Close() error
}

// New creates the storage backend selected in the configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalFileStorage(cfg.OutputDir)
	case "gcs":
		return NewGCSStorage(ctx, cfg.Bucket, cfg.ObjectPrefix, cfg.CredentialsFile)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
