package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

var songColumns = []string{"artist", "title", "year", "lyrics", "positive", "negative", "neutral", "mixed"}

// WriteScoredSongs writes one row per song. Missing sentiments leave the
// four score cells empty.
func WriteScoredSongs(w io.Writer, songs []domain.ScoredSong) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(songColumns); err != nil {
		return err
	}
	for _, s := range songs {
		record := []string{s.Artist, s.Title, strconv.Itoa(s.Year), s.Lyrics, "", "", "", ""}
		if score, ok := s.Sentiment.Score(); ok {
			record[4] = formatFloat(score.Positive)
			record[5] = formatFloat(score.Negative)
			record[6] = formatFloat(score.Neutral)
			record[7] = formatFloat(score.Mixed)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadScoredSongs reads a sentiment table. A row is missing when any of its
// score cells is empty. The lyrics column is optional.
func ReadScoredSongs(r io.Reader) ([]domain.ScoredSong, error) {
	reader := newReader(r)
	h, err := readHeader(reader, "artist", "title", "year", "positive", "negative", "neutral", "mixed")
	if err != nil {
		return nil, err
	}

	var songs []domain.ScoredSong
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		year, err := h.atoi(record, "year", line)
		if err != nil {
			return nil, err
		}
		song := domain.ScoredSong{
			SongRecord: domain.SongRecord{
				Artist: h.get(record, "artist"),
				Title:  h.get(record, "title"),
				Year:   year,
			},
		}
		lyrics := h.get(record, "lyrics")
		song.SetLyrics(lyrics, lyrics != "")

		song.Sentiment, err = parseSentiment(h, record, line)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, nil
}

func parseSentiment(h header, record []string, line int) (domain.Sentiment, error) {
	values := make([]float64, 4)
	for i, name := range []string{"positive", "negative", "neutral", "mixed"} {
		cell := strings.TrimSpace(h.get(record, name))
		if cell == "" {
			return domain.Missing(), nil
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return domain.Missing(), fmt.Errorf("line %d: invalid %s: %w", line, name, err)
		}
		values[i] = v
	}
	return domain.Present(domain.SentimentScore{
		Positive: values[0],
		Negative: values[1],
		Neutral:  values[2],
		Mixed:    values[3],
	}), nil
}
