package aggregate

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/jaki95/hot100-sentiment/internal/domain"
	"github.com/jaki95/hot100-sentiment/internal/storage"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func readFile(t *testing.T, s storage.Storage, name string) []byte {
	t.Helper()
	r, err := s.GetReader(name)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

func TestRender(t *testing.T) {
	s, err := storage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	rows := []domain.ScoredSong{
		scored(1980, 0.3), scored(1980, 0.5), scored(1981, 0.9), missing(1981), scored(1982, 0.1),
	}

	err = NewPlotter(s).Render(rows, ByYear(rows))

	require.NoError(t, err)
	for _, name := range []string{PositiveHistogramFile, PositiveTrendFile, AllTrendsFile} {
		data := readFile(t, s, name)
		assert.True(t, bytes.HasPrefix(data, pngMagic), name)
	}
}

func TestRenderWithoutScores(t *testing.T) {
	s, err := storage.NewLocalFileStorage(t.TempDir())
	require.NoError(t, err)

	err = NewPlotter(s).Render([]domain.ScoredSong{missing(1990)}, nil)

	require.NoError(t, err)
	assert.True(t, s.FileExists(AllTrendsFile))
}

func TestAllTrends(t *testing.T) {
	yearly := []domain.YearlyAggregate{
		{Year: 1990, Positive: 0.5, Negative: 0.2, Neutral: 0.2, Mixed: 0.1, Count: 3},
		{Year: 1991, Positive: 0.4, Negative: 0.3, Neutral: 0.2, Mixed: 0.1, Count: 4},
	}

	p, err := AllTrends(yearly)

	require.NoError(t, err)
	assert.Equal(t, "Sentiment Trends", p.Title.Text)
	_, err = p.WriterTo(4*vg.Inch, 3*vg.Inch, "png")
	assert.NoError(t, err)
}

func TestPercentTicks(t *testing.T) {
	ticks := percentTicks{}.Ticks(0, 1)

	var labels []string
	for _, tick := range ticks {
		if tick.Label != "" {
			labels = append(labels, tick.Label)
		}
	}
	require.NotEmpty(t, labels)
	assert.Contains(t, labels, "0%")
	for _, label := range labels {
		assert.Regexp(t, `^\d+(\.\d)?%$`, label)
	}
}

func TestYearTicks(t *testing.T) {
	ticks := yearTicks{}.Ticks(1980, 1982)

	for _, tick := range ticks {
		if tick.Label != "" {
			assert.Regexp(t, `^\d{4}$`, tick.Label)
		}
	}
	assert.NotEmpty(t, ticks)
	var _ plot.Ticker = yearTicks{}
}
