package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"
	"github.com/aws/smithy-go"
	"golang.org/x/time/rate"

	"github.com/jaki95/hot100-sentiment/internal/domain"
	"github.com/jaki95/hot100-sentiment/internal/progress"
	"github.com/jaki95/hot100-sentiment/internal/retry"
)

// ErrNoLines is returned for lyrics with nothing left to score after
// cleaning.
var ErrNoLines = errors.New("no lines to score")

type Options struct {
	LanguageCode      string
	RequestsPerSecond float64
	MaxAttempts       int
	Backoff           time.Duration
}

// Scorer turns lyrics into one averaged sentiment score per song.
type Scorer struct {
	analyzer     LineAnalyzer
	languageCode string
	limiter      *rate.Limiter
	policy       retry.Policy
}

func NewScorer(analyzer LineAnalyzer, opts Options) *Scorer {
	if opts.LanguageCode == "" {
		opts.LanguageCode = "en"
	}
	if opts.Backoff == 0 {
		opts.Backoff = time.Second
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &Scorer{
		analyzer:     analyzer,
		languageCode: opts.LanguageCode,
		limiter:      rate.NewLimiter(limit, 1),
		policy: retry.Policy{
			MaxAttempts:      opts.MaxAttempts,
			InitialBackoff:   opts.Backoff,
			RateLimitBackoff: 10 * opts.Backoff,
			OnRetry: func(attempt int, err error, backoff time.Duration) {
				slog.Warn("Retrying sentiment request", "attempt", attempt, "backoff", backoff, "error", err)
			},
		},
	}
}

// ScoreLyric returns the unweighted mean of the scores of every line in text.
func (s *Scorer) ScoreLyric(ctx context.Context, text string) (domain.SentimentScore, error) {
	lines := Lines(text)
	if len(lines) == 0 {
		return domain.SentimentScore{}, ErrNoLines
	}

	var sum domain.SentimentScore
	for i, line := range lines {
		score, err := s.analyzeLine(ctx, line)
		if err != nil {
			return domain.SentimentScore{}, fmt.Errorf("line %d of %d: %w", i+1, len(lines), err)
		}
		sum = sum.Add(score)
	}
	return sum.Scale(1 / float64(len(lines))), nil
}

// ScoreAll scores each text in order. A text that cannot be scored, for
// whatever reason, yields Missing and the batch goes on.
func (s *Scorer) ScoreAll(ctx context.Context, texts []string) []domain.Sentiment {
	result := make([]domain.Sentiment, len(texts))

	bar := progress.NewBar(len(texts), "[cyan][3/3][reset] Scoring sentiments...")
	defer bar.Finish()

	scored := 0
	for i, text := range texts {
		if ctx.Err() != nil {
			slog.Warn("Sentiment scoring interrupted", "done", i, "total", len(texts))
			break
		}

		score, err := s.ScoreLyric(ctx, text)
		switch {
		case errors.Is(err, ErrNoLines):
			slog.Debug("Nothing to score", "index", i)
		case err != nil:
			slog.Error("Failed to score lyrics", "index", i, "error", err)
		default:
			result[i] = domain.Present(score)
			scored++
		}
		_ = bar.Add(1)
	}

	slog.Info("Scored lyrics", "scored", scored, "missing", len(texts)-scored)
	return result
}

func (s *Scorer) analyzeLine(ctx context.Context, line string) (domain.SentimentScore, error) {
	return retry.Do(ctx, s.policy, classify, func() (domain.SentimentScore, error) {
		if err := s.limiter.Wait(ctx); err != nil {
			return domain.SentimentScore{}, &retry.PermanentError{Err: err}
		}
		return s.analyzer.Analyze(ctx, line, s.languageCode)
	})
}

func classify(err error) retry.Action {
	if retry.IsPermanent(err) || errors.Is(err, context.Canceled) {
		return retry.Stop
	}

	if isThrottle(err) || isOpenAIStatus(err, func(code int) bool { return code == 429 }) {
		return retry.After
	}

	var internal *types.InternalServerException
	if errors.As(err, &internal) || isOpenAIStatus(err, func(code int) bool { return code >= 500 }) {
		return retry.Retry
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return retry.Retry
	}
	return retry.Stop
}

// Comprehend throttling surfaces as a generic API error carrying the code.
func isThrottle(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ThrottlingException", "TooManyRequestsException":
		return true
	}
	return false
}
