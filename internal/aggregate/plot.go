package aggregate

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/jaki95/hot100-sentiment/internal/domain"
	"github.com/jaki95/hot100-sentiment/internal/storage"
)

const (
	PositiveHistogramFile = "positive_hist.png"
	PositiveTrendFile     = "positive.png"
	AllTrendsFile         = "all.png"
)

const histogramBins = 20

// Plotter renders sentiment charts as PNG images into storage.
type Plotter struct {
	storage storage.Storage
	width   vg.Length
	height  vg.Length
}

func NewPlotter(s storage.Storage) *Plotter {
	return &Plotter{
		storage: s,
		width:   8 * vg.Inch,
		height:  5 * vg.Inch,
	}
}

// Render writes the histogram and both trend charts.
func (p *Plotter) Render(rows []domain.ScoredSong, yearly []domain.YearlyAggregate) error {
	charts := []struct {
		name  string
		build func() (*plot.Plot, error)
	}{
		{PositiveHistogramFile, func() (*plot.Plot, error) { return PositiveHistogram(PositiveScores(rows)) }},
		{PositiveTrendFile, func() (*plot.Plot, error) { return PositiveTrend(yearly) }},
		{AllTrendsFile, func() (*plot.Plot, error) { return AllTrends(yearly) }},
	}

	for _, chart := range charts {
		pl, err := chart.build()
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", chart.name, err)
		}
		if err := p.save(pl, chart.name); err != nil {
			return err
		}
		slog.Info("Saved plot", "location", p.storage.Location(chart.name))
	}
	return nil
}

func (p *Plotter) save(pl *plot.Plot, name string) error {
	wt, err := pl.WriterTo(p.width, p.height, "png")
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w, err := p.storage.GetWriter(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", name, err)
	}
	return nil
}

// PositiveHistogram is a density histogram of positive scores.
func PositiveHistogram(positive []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Histogram of Positive Sentiments"
	p.X.Label.Text = "Positive"
	p.Y.Label.Text = "Density"
	p.X.Tick.Marker = percentTicks{}

	if len(positive) == 0 {
		return p, nil
	}

	hist, err := plotter.NewHist(plotter.Values(positive), histogramBins)
	if err != nil {
		return nil, err
	}
	hist.Normalize(1)
	hist.FillColor = plotutil.Color(0)
	p.Add(hist)
	return p, nil
}

// PositiveTrend plots the yearly positive mean.
func PositiveTrend(yearly []domain.YearlyAggregate) (*plot.Plot, error) {
	p := newTrendPlot("Positive Sentiment over the Years")

	line, err := newTrendLine(yearly, func(a domain.YearlyAggregate) float64 { return a.Positive }, 0)
	if err != nil {
		return nil, err
	}
	if line != nil {
		p.Add(line)
	}
	return p, nil
}

// AllTrends plots the yearly mean of every category with a legend.
func AllTrends(yearly []domain.YearlyAggregate) (*plot.Plot, error) {
	p := newTrendPlot("Sentiment Trends")
	p.Legend.Top = true

	categories := []struct {
		name  string
		value func(domain.YearlyAggregate) float64
	}{
		{"Positive", func(a domain.YearlyAggregate) float64 { return a.Positive }},
		{"Negative", func(a domain.YearlyAggregate) float64 { return a.Negative }},
		{"Neutral", func(a domain.YearlyAggregate) float64 { return a.Neutral }},
		{"Mixed", func(a domain.YearlyAggregate) float64 { return a.Mixed }},
	}

	for i, c := range categories {
		line, err := newTrendLine(yearly, c.value, i)
		if err != nil {
			return nil, err
		}
		if line == nil {
			continue
		}
		p.Add(line)
		p.Legend.Add(c.name, line)
	}
	return p, nil
}

func newTrendPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Mean score"
	p.X.Tick.Marker = yearTicks{}
	p.Y.Tick.Marker = percentTicks{}
	p.Add(plotter.NewGrid())
	return p
}

func newTrendLine(yearly []domain.YearlyAggregate, value func(domain.YearlyAggregate) float64, colorIdx int) (*plotter.Line, error) {
	if len(yearly) == 0 {
		return nil, nil
	}

	pts := make(plotter.XYs, len(yearly))
	for i, agg := range yearly {
		pts[i].X = float64(agg.Year)
		pts[i].Y = value(agg)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = plotutil.Color(colorIdx)
	line.LineStyle.Width = vg.Points(1.5)
	return line, nil
}

// percentTicks labels fractions as percentages.
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = fmt.Sprintf("%g%%", math.Round(ticks[i].Value*1000)/10)
	}
	return ticks
}

// yearTicks keeps only whole-year labels.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		if ticks[i].Value != math.Trunc(ticks[i].Value) {
			ticks[i].Label = ""
			continue
		}
		ticks[i].Label = fmt.Sprintf("%d", int(ticks[i].Value))
	}
	return ticks
}
