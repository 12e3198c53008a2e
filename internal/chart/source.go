package chart

import (
	"context"
	"errors"
	"time"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

// ErrEmptyChart is returned when a chart page parses but holds no entries.
var ErrEmptyChart = errors.New("no chart entries found")

// Source returns the ranked entries of one chart edition. Year and month on
// the returned entries are left for the caller to fill in.
type Source interface {
	Fetch(ctx context.Context, chartName string, date time.Time) ([]domain.ChartEntry, error)
}
