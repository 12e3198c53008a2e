// Package dataset reads and writes the tabular files produced by a run.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jaki95/hot100-sentiment/internal/storage"
)

const (
	ChartEntriesFile     = "chart_entries.csv"
	LyricsSentimentsFile = "lyrics_sentiments.csv"
	YearlySentimentFile  = "yearly_sentiment.csv"
)

// Save writes a table to storage through the given encoder.
func Save(s storage.Storage, name string, encode func(io.Writer) error) error {
	w, err := s.GetWriter(name)
	if err != nil {
		return fmt.Errorf("failed to open %s for writing: %w", name, err)
	}
	if err := encode(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}

// Load decodes a table from storage.
func Load[T any](s storage.Storage, name string, decode func(io.Reader) (T, error)) (T, error) {
	var zero T
	r, err := s.GetReader(name)
	if err != nil {
		return zero, err
	}
	defer r.Close()

	out, err := decode(r)
	if err != nil {
		return zero, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return out, nil
}

// header maps column names to positions.
type header map[string]int

func readHeader(reader *csv.Reader, required ...string) (header, error) {
	row, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing CSV header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	h := make(header, len(row))
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := h[name]; !ok {
			return nil, fmt.Errorf("missing CSV column %q", name)
		}
	}
	return h, nil
}

func (h header) get(record []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func (h header) atoi(record []string, name string, line int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(h.get(record, name)))
	if err != nil {
		return 0, fmt.Errorf("line %d: invalid %s: %w", line, name, err)
	}
	return v, nil
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
