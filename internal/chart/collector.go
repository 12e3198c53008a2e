package chart

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jaki95/hot100-sentiment/internal/domain"
	"github.com/jaki95/hot100-sentiment/internal/progress"
)

type Options struct {
	ChartName string

	// Pause after every chart request, successful or not.
	Delay time.Duration

	// Extra passes over the year range while months keep failing.
	Tries int

	// Months that are known to be unavailable and never force another pass.
	ToleratedMissing []domain.YearMonth

	Clock clockwork.Clock
}

// Collector gathers monthly chart editions for a range of years.
type Collector struct {
	source    Source
	chartName string
	delay     time.Duration
	tries     int
	tolerated map[domain.YearMonth]struct{}
	clock     clockwork.Clock
}

func NewCollector(source Source, opts Options) *Collector {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.ChartName == "" {
		opts.ChartName = "hot-100"
	}
	if opts.Tries < 0 {
		opts.Tries = 0
	}

	tolerated := make(map[domain.YearMonth]struct{}, len(opts.ToleratedMissing))
	for _, ym := range opts.ToleratedMissing {
		tolerated[ym] = struct{}{}
	}

	return &Collector{
		source:    source,
		chartName: opts.ChartName,
		delay:     opts.Delay,
		tries:     opts.Tries,
		tolerated: tolerated,
		clock:     opts.Clock,
	}
}

// Collect returns prior plus the charts of every month between startYear and
// endYear (0 meaning the current year) that prior does not already hold.
// Failed months are retried in up to Tries further passes. It never fails:
// whatever was collected when the budget runs out is returned.
func (c *Collector) Collect(ctx context.Context, startYear, endYear int, prior domain.ChartTable) domain.ChartTable {
	now := c.clock.Now()
	if endYear == 0 {
		endYear = now.Year()
	}

	table := make(domain.ChartTable, 0, len(prior))
	table = append(table, prior...)
	present := table.Months()

	for pass := 0; pass <= c.tries; pass++ {
		failed := c.collectPass(ctx, pass, startYear, endYear, now, &table, present)

		if ctx.Err() != nil {
			slog.Warn("Chart collection interrupted", "pass", pass+1, "entries", len(table), "error", ctx.Err())
			break
		}
		if failed == 0 {
			break
		}
		if pass == c.tries {
			slog.Warn("Chart retry budget exhausted, returning partial table", "failedMonths", failed, "entries", len(table))
			break
		}
		slog.Info("Retrying failed chart months", "failedMonths", failed, "nextPass", pass+2)
	}

	return table
}

// collectPass runs over the year range once and returns the number of
// failed months that are not tolerated.
func (c *Collector) collectPass(
	ctx context.Context,
	pass, startYear, endYear int,
	now time.Time,
	table *domain.ChartTable,
	present map[domain.YearMonth]struct{},
) int {
	failed := 0
	bar := progress.NewBar(endYear-startYear+1, fmt.Sprintf("[cyan][pass %d][reset] Collecting %s charts...", pass+1, c.chartName))
	defer bar.Finish()

	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			if ctx.Err() != nil {
				return failed
			}

			ym := domain.YearMonth{Year: year, Month: month}
			if _, ok := present[ym]; ok {
				continue
			}
			date := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			if date.After(now) {
				continue
			}

			entries, err := c.source.Fetch(ctx, c.chartName, date)
			if err != nil {
				_, tolerated := c.tolerated[ym]
				slog.Error("Failed to fetch chart", "chart", c.chartName, "month", ym.String(), "tolerated", tolerated, "error", err)
				if !tolerated {
					failed++
				}
			} else {
				for _, e := range entries {
					e.Year = year
					e.Month = month
					*table = append(*table, e)
				}
				present[ym] = struct{}{}
				slog.Debug("Collected chart", "chart", c.chartName, "month", ym.String(), "entries", len(entries))
			}

			c.wait(ctx)
		}
		_ = bar.Add(1)
	}

	return failed
}

func (c *Collector) wait(ctx context.Context) {
	if c.delay <= 0 {
		return
	}
	select {
	case <-c.clock.After(c.delay):
	case <-ctx.Done():
	}
}
