package chart

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/jaki95/hot100-sentiment/internal/domain"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// BillboardSource scrapes chart pages from billboard.com.
type BillboardSource struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
}

func NewBillboardSource(baseURL string, timeout time.Duration) *BillboardSource {
	return &BillboardSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   timeout,
		userAgent: defaultUserAgent,
	}
}

// ChartURL returns the page address of a chart edition.
func (b *BillboardSource) ChartURL(chartName string, date time.Time) string {
	return fmt.Sprintf("%s/charts/%s/%s/", b.baseURL, chartName, date.Format("2006-01-02"))
}

func (b *BillboardSource) Fetch(ctx context.Context, chartName string, date time.Time) ([]domain.ChartEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url := b.ChartURL(chartName, date)
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent(b.userAgent),
	)
	if b.timeout > 0 {
		c.SetRequestTimeout(b.timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
		r.Headers.Set("Connection", "keep-alive")
	})

	var entries []domain.ChartEntry
	skipped := 0
	c.OnHTML("div.o-chart-results-list-row-container", func(e *colly.HTMLElement) {
		entry, err := parseChartRow(e.DOM)
		if err != nil {
			skipped++
			slog.Debug("Skipping chart row", "url", url, "error", err)
			return
		}
		entries = append(entries, entry)
	})

	slog.Debug("Fetching chart", "url", url)
	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w at %s (%d unparsable rows)", ErrEmptyChart, url, skipped)
	}
	return entries, nil
}

func parseChartRow(row *goquery.Selection) (domain.ChartEntry, error) {
	rankText := strings.TrimSpace(row.Find("span.c-label").First().Text())
	rank, err := strconv.Atoi(rankText)
	if err != nil {
		return domain.ChartEntry{}, fmt.Errorf("invalid rank %q", rankText)
	}

	titleSel := row.Find("h3#title-of-a-story").First()
	title := strings.TrimSpace(titleSel.Text())
	if title == "" {
		return domain.ChartEntry{}, fmt.Errorf("missing title for rank %d", rank)
	}
	artist := strings.TrimSpace(titleSel.NextAllFiltered("span").First().Text())

	return domain.ChartEntry{
		Rank:   rank,
		Artist: artist,
		Title:  title,
	}, nil
}
