package lyrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly"

	"github.com/jaki95/hot100-sentiment/internal/domain"
	"github.com/jaki95/hot100-sentiment/internal/progress"
	"github.com/jaki95/hot100-sentiment/internal/retry"
)

// ErrNoLyrics means the page loaded but had no lyrics container.
var ErrNoLyrics = errors.New("lyrics container not found")

// StatusError is a non-2xx response from the lyrics source.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

type Options struct {
	BaseURL     string
	Selector    string
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
	Cache       Cache
}

type Fetcher struct {
	baseURL  string
	selector string
	timeout  time.Duration
	cache    Cache
	policy   retry.Policy
}

func NewFetcher(opts Options) *Fetcher {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://genius.com"
	}
	if opts.Selector == "" {
		opts.Selector = ".lyrics"
	}
	if opts.Backoff == 0 {
		opts.Backoff = time.Second
	}

	return &Fetcher{
		baseURL:  opts.BaseURL,
		selector: opts.Selector,
		timeout:  opts.Timeout,
		cache:    opts.Cache,
		policy: retry.Policy{
			MaxAttempts:      opts.MaxAttempts,
			InitialBackoff:   opts.Backoff,
			RateLimitBackoff: 5 * opts.Backoff,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Debug("Retrying lyrics request", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
	}
}

// Fetch returns the lyrics of a song. Every failure is logged and reported
// as ("", false).
func (f *Fetcher) Fetch(ctx context.Context, artist, title string) (string, bool) {
	key := Key(artist, title)

	if f.cache != nil {
		text, ok, err := f.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("Lyrics cache lookup failed", "key", key, "error", err)
		} else if ok {
			slog.Debug("Using cached lyrics", "key", key)
			return text, true
		}
	}

	url := URL(f.baseURL, artist, title)
	text, err := retry.Do(ctx, f.policy, classify, func() (string, error) {
		return f.scrape(url)
	})
	if err != nil {
		slog.Warn("Lyrics not available", "artist", artist, "title", title, "url", url, "error", err)
		return "", false
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, text); err != nil {
			slog.Warn("Failed to cache lyrics", "key", key, "error", err)
		}
	}
	return text, true
}

// FetchAll fills in the lyrics of every song, in order. Songs not reached
// before ctx is cancelled are returned without lyrics.
func (f *Fetcher) FetchAll(ctx context.Context, songs []domain.SongRecord) []domain.SongRecord {
	result := make([]domain.SongRecord, len(songs))
	copy(result, songs)

	bar := progress.NewBar(len(result), "[cyan][2/3][reset] Fetching lyrics...")
	defer bar.Finish()

	found := 0
	for i := range result {
		if ctx.Err() != nil {
			slog.Warn("Lyrics fetching interrupted", "done", i, "total", len(result))
			break
		}
		text, ok := f.Fetch(ctx, result[i].Artist, result[i].Title)
		result[i].SetLyrics(text, ok)
		if ok {
			found++
		}
		_ = bar.Add(1)
	}

	slog.Info("Fetched lyrics", "found", found, "total", len(result))
	return result
}

func (f *Fetcher) scrape(url string) (string, error) {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if f.timeout > 0 {
		c.SetRequestTimeout(f.timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
	})

	status := 0
	c.OnError(func(r *colly.Response, err error) {
		status = r.StatusCode
	})

	var text string
	found := false
	c.OnHTML(f.selector, func(e *colly.HTMLElement) {
		if found {
			return
		}
		found = true
		e.DOM.Find("br").ReplaceWithHtml("\n")
		text = strings.TrimSpace(e.DOM.Text())
	})

	if err := c.Visit(url); err != nil {
		if status != 0 {
			return "", &StatusError{URL: url, Code: status}
		}
		return "", fmt.Errorf("request %s: %w", url, err)
	}
	if !found {
		return "", fmt.Errorf("%w: %q at %s", ErrNoLyrics, f.selector, url)
	}
	return text, nil
}

func classify(err error) retry.Action {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.Code == http.StatusTooManyRequests:
			return retry.After
		case statusErr.Code >= 500:
			return retry.Retry
		default:
			return retry.Stop
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return retry.Retry
	}
	return retry.Stop
}
