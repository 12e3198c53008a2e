package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStorage implements the Storage interface for local filesystem
type LocalFileStorage struct {
	outputDir string
}

// NewLocalFileStorage creates a new local file storage instance
func NewLocalFileStorage(outputDir string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", outputDir, err)
	}

	return &LocalFileStorage{
		outputDir: outputDir,
	}, nil
}

func (s *LocalFileStorage) resolve(path string) string {
	return filepath.Join(s.outputDir, filepath.FromSlash(path))
}

// GetReader returns a reader for the specified file
func (s *LocalFileStorage) GetReader(path string) (io.ReadCloser, error) {
	f, err := os.Open(s.resolve(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return f, err
}

// GetWriter returns a writer for the specified file, creating parent directories
func (s *LocalFileStorage) GetWriter(path string) (io.WriteCloser, error) {
	full := s.resolve(path)
	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return os.Create(full)
}

// FileExists checks if a file exists
func (s *LocalFileStorage) FileExists(path string) bool {
	_, err := os.Stat(s.resolve(path))
	return err == nil
}

// ListFiles lists files in a directory matching a pattern
func (s *LocalFileStorage) ListFiles(dir string, pattern string) ([]string, error) {
	files, err := os.ReadDir(s.resolve(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var results []string
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		// Match pattern (simple prefix for now)
		if pattern != "" && !strings.HasPrefix(file.Name(), pattern) {
			continue
		}

		results = append(results, filepath.ToSlash(filepath.Join(dir, file.Name())))
	}

	return results, nil
}

func (s *LocalFileStorage) Location(path string) string {
	return s.resolve(path)
}

func (s *LocalFileStorage) Close() error {
	return nil
}
