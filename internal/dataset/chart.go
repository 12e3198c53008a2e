package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

var chartColumns = []string{"year", "month", "rank", "artist", "title"}

func WriteChartTable(w io.Writer, table domain.ChartTable) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(chartColumns); err != nil {
		return err
	}
	for _, e := range table {
		record := []string{
			strconv.Itoa(e.Year),
			strconv.Itoa(e.Month),
			strconv.Itoa(e.Rank),
			e.Artist,
			e.Title,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func ReadChartTable(r io.Reader) (domain.ChartTable, error) {
	reader := newReader(r)
	h, err := readHeader(reader, chartColumns...)
	if err != nil {
		return nil, err
	}

	var table domain.ChartTable
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		entry := domain.ChartEntry{
			Artist: h.get(record, "artist"),
			Title:  h.get(record, "title"),
		}
		if entry.Year, err = h.atoi(record, "year", line); err != nil {
			return nil, err
		}
		if entry.Month, err = h.atoi(record, "month", line); err != nil {
			return nil, err
		}
		if entry.Rank, err = h.atoi(record, "rank", line); err != nil {
			return nil, err
		}
		table = append(table, entry)
	}
	return table, nil
}
