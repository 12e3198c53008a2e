package chart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

const chartPage = `<html><body>
<div class="chart-results-list">
  <div class="o-chart-results-list-row-container">
    <ul class="o-chart-results-list-row">
      <li><span class="c-label a-font-primary-bold-l">1</span></li>
      <li>
        <h3 id="title-of-a-story" class="c-title">
          Physical
        </h3>
        <span class="c-label a-no-trucate">Olivia Newton-John</span>
      </li>
      <li><span class="c-label">1</span></li>
    </ul>
  </div>
  <div class="o-chart-results-list-row-container">
    <ul class="o-chart-results-list-row">
      <li><span class="c-label a-font-primary-bold-l">2</span></li>
      <li>
        <h3 id="title-of-a-story" class="c-title">Waiting For A Girl Like You</h3>
        <span class="c-label a-no-trucate">Foreigner</span>
      </li>
    </ul>
  </div>
  <div class="o-chart-results-list-row-container">
    <ul><li><span class="c-label">NEW</span></li></ul>
  </div>
</div>
</body></html>`

func newChartServer(t *testing.T, status int, body string) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &paths
}

func TestBillboardSourceFetch(t *testing.T) {
	server, paths := newChartServer(t, http.StatusOK, chartPage)
	source := NewBillboardSource(server.URL+"/", 5*time.Second)

	entries, err := source.Fetch(context.Background(), "hot-100", time.Date(1982, time.January, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, []string{"/charts/hot-100/1982-01-01/"}, *paths)
	assert.Equal(t, []domain.ChartEntry{
		{Rank: 1, Artist: "Olivia Newton-John", Title: "Physical"},
		{Rank: 2, Artist: "Foreigner", Title: "Waiting For A Girl Like You"},
	}, entries)
}

func TestBillboardSourceFetchErrors(t *testing.T) {
	date := time.Date(2019, time.December, 1, 0, 0, 0, 0, time.UTC)

	t.Run("not found", func(t *testing.T) {
		server, _ := newChartServer(t, http.StatusNotFound, "gone")
		source := NewBillboardSource(server.URL, time.Second)

		entries, err := source.Fetch(context.Background(), "hot-100", date)

		assert.Error(t, err)
		assert.Nil(t, entries)
	})

	t.Run("no rows", func(t *testing.T) {
		server, _ := newChartServer(t, http.StatusOK, "<html><body><p>maintenance</p></body></html>")
		source := NewBillboardSource(server.URL, time.Second)

		entries, err := source.Fetch(context.Background(), "hot-100", date)

		assert.ErrorIs(t, err, ErrEmptyChart)
		assert.Nil(t, entries)
	})

	t.Run("cancelled context", func(t *testing.T) {
		server, paths := newChartServer(t, http.StatusOK, chartPage)
		source := NewBillboardSource(server.URL, time.Second)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.Fetch(ctx, "hot-100", date)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, *paths)
	})
}

func TestParseChartRow(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(chartPage))
	require.NoError(t, err)

	rows := doc.Find("div.o-chart-results-list-row-container")
	require.Equal(t, 3, rows.Length())

	entry, err := parseChartRow(rows.Eq(0))
	require.NoError(t, err)
	assert.Equal(t, domain.ChartEntry{Rank: 1, Artist: "Olivia Newton-John", Title: "Physical"}, entry)

	_, err = parseChartRow(rows.Eq(2))
	assert.Error(t, err)
}

func TestChartURL(t *testing.T) {
	source := NewBillboardSource("https://www.billboard.com/", time.Second)

	url := source.ChartURL("hot-100", time.Date(2001, time.June, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, "https://www.billboard.com/charts/hot-100/2001-06-01/", url)
}
