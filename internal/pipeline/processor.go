// Package pipeline runs chart collection, lyrics fetching, sentiment scoring
// and aggregation in sequence, storing every intermediate table.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jaki95/hot100-sentiment/internal/aggregate"
	"github.com/jaki95/hot100-sentiment/internal/dataset"
	"github.com/jaki95/hot100-sentiment/internal/domain"
	"github.com/jaki95/hot100-sentiment/internal/progress"
	"github.com/jaki95/hot100-sentiment/internal/storage"
)

type ChartCollector interface {
	Collect(ctx context.Context, startYear, endYear int, prior domain.ChartTable) domain.ChartTable
}

type LyricsFetcher interface {
	FetchAll(ctx context.Context, songs []domain.SongRecord) []domain.SongRecord
}

type SentimentScorer interface {
	ScoreAll(ctx context.Context, texts []string) []domain.Sentiment
}

type Renderer interface {
	Render(rows []domain.ScoredSong, yearly []domain.YearlyAggregate) error
}

type Options struct {
	StartYear int
	EndYear   int
	TopN      int

	// Resume reuses the stored chart table so only missing months are
	// fetched again.
	Resume bool
}

// Result summarizes a finished run.
type Result struct {
	RunID        string
	ChartEntries int
	Songs        int
	WithLyrics   int
	Scored       int
	Yearly       []domain.YearlyAggregate
	Artifacts    []string
	Duration     time.Duration
}

type Processor struct {
	collector ChartCollector
	fetcher   LyricsFetcher
	scorer    SentimentScorer
	renderer  Renderer
	storage   storage.Storage
	tracker   *progress.Tracker
	opts      Options
}

func NewProcessor(
	collector ChartCollector,
	fetcher LyricsFetcher,
	scorer SentimentScorer,
	renderer Renderer,
	store storage.Storage,
	opts Options,
) *Processor {
	return &Processor{
		collector: collector,
		fetcher:   fetcher,
		scorer:    scorer,
		renderer:  renderer,
		storage:   store,
		tracker:   progress.NewTracker(),
		opts:      opts,
	}
}

// Tracker exposes stage events of the runs of this processor.
func (p *Processor) Tracker() *progress.Tracker {
	return p.tracker
}

// Run executes the whole pipeline. Per-month and per-song failures only
// shrink the output; storage failures and cancellation abort the run.
func (p *Processor) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	logger := slog.With("runID", result.RunID)

	defer p.tracker.AddListener(LogListener(logger))()

	logger.Info("Starting run", "startYear", p.opts.StartYear, "endYear", p.opts.EndYear, "topN", p.opts.TopN, "resume", p.opts.Resume)
	p.tracker.UpdateProgress(progress.StageInitializing, 0, "Starting run")

	if err := p.run(ctx, logger, result); err != nil {
		failedAt := p.tracker.CurrentState()
		p.tracker.SetError(err)
		logger.Error("Run failed", "stage", failedAt.Stage, "progress", failedAt.Progress, "error", err)
		return nil, err
	}

	result.Duration = time.Since(start)
	p.tracker.UpdateProgress(progress.StageComplete, 100, "Run completed")
	logger.Info("Run completed",
		"chartEntries", result.ChartEntries,
		"songs", result.Songs,
		"withLyrics", result.WithLyrics,
		"scored", result.Scored,
		"years", len(result.Yearly),
		"duration", result.Duration,
	)
	return result, nil
}

func (p *Processor) run(ctx context.Context, logger *slog.Logger, result *Result) error {
	prior, err := p.loadPrior(logger)
	if err != nil {
		return err
	}

	// Charts
	p.tracker.UpdateProgress(progress.StageCollecting, 5, "Collecting charts")
	table := p.collector.Collect(ctx, p.opts.StartYear, p.opts.EndYear, prior).Dedupe().Sorted()
	if err := ctx.Err(); err != nil {
		return err
	}
	result.ChartEntries = len(table)
	p.tracker.UpdateItemProgress(len(table.Months()), len(table.Months()), len(table), "chart months")
	if err := dataset.Save(p.storage, dataset.ChartEntriesFile, func(w io.Writer) error {
		return dataset.WriteChartTable(w, table)
	}); err != nil {
		return err
	}
	logger.Info("Collected charts", "entries", len(table), "months", len(table.Months()))

	// Lyrics. A resumed table may hold years outside this run.
	songs := SelectSongs(table.Between(p.opts.StartYear, p.opts.EndYear), p.opts.TopN)
	result.Songs = len(songs)
	p.tracker.UpdateProgress(progress.StageFetching, 30, fmt.Sprintf("Fetching lyrics for %d songs", len(songs)))
	songs = p.fetcher.FetchAll(ctx, songs)
	if err := ctx.Err(); err != nil {
		return err
	}
	texts := make([]string, len(songs))
	for i, song := range songs {
		texts[i] = song.Lyrics
		if song.HasLyrics {
			result.WithLyrics++
		}
	}
	p.tracker.UpdateItemProgress(result.WithLyrics, len(songs), len(songs), "lyrics")

	// Sentiment
	p.tracker.UpdateProgress(progress.StageScoring, 60, fmt.Sprintf("Scoring %d lyrics", result.WithLyrics))
	sentiments := p.scorer.ScoreAll(ctx, texts)
	if err := ctx.Err(); err != nil {
		return err
	}
	rows := make([]domain.ScoredSong, len(songs))
	for i, song := range songs {
		rows[i] = domain.ScoredSong{SongRecord: song, Sentiment: sentiments[i]}
		if !sentiments[i].IsMissing() {
			result.Scored++
		}
	}
	p.tracker.UpdateItemProgress(result.Scored, len(rows), len(rows), "sentiments")
	if err := dataset.Save(p.storage, dataset.LyricsSentimentsFile, func(w io.Writer) error {
		return dataset.WriteScoredSongs(w, rows)
	}); err != nil {
		return err
	}

	// Aggregates and plots
	p.tracker.UpdateProgress(progress.StageAggregating, 90, "Aggregating and plotting")
	yearly, err := Summarize(p.storage, p.renderer, rows)
	if err != nil {
		return err
	}
	result.Yearly = yearly

	artifacts, err := p.storage.ListFiles("", "")
	if err != nil {
		logger.Warn("Failed to list artifacts", "error", err)
	}
	result.Artifacts = artifacts
	return nil
}

func (p *Processor) loadPrior(logger *slog.Logger) (domain.ChartTable, error) {
	if !p.opts.Resume {
		return nil, nil
	}

	prior, err := dataset.Load(p.storage, dataset.ChartEntriesFile, dataset.ReadChartTable)
	if errors.Is(err, storage.ErrNotFound) {
		logger.Info("No stored chart table, collecting from scratch")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resume from %s: %w", dataset.ChartEntriesFile, err)
	}

	logger.Info("Resuming from stored chart table", "entries", len(prior), "months", len(prior.Months()))
	return prior, nil
}

// Summarize aggregates scored songs by year, stores the yearly table and
// renders the charts.
func Summarize(store storage.Storage, renderer Renderer, rows []domain.ScoredSong) ([]domain.YearlyAggregate, error) {
	yearly := aggregate.ByYear(rows)
	if err := dataset.Save(store, dataset.YearlySentimentFile, func(w io.Writer) error {
		return dataset.WriteYearly(w, yearly)
	}); err != nil {
		return nil, err
	}

	if err := renderer.Render(rows, yearly); err != nil {
		return nil, fmt.Errorf("failed to render plots: %w", err)
	}
	return yearly, nil
}

// Replot rebuilds the yearly table and the charts from a stored
// lyrics_sentiments.csv.
func Replot(store storage.Storage, renderer Renderer) ([]domain.YearlyAggregate, error) {
	rows, err := dataset.Load(store, dataset.LyricsSentimentsFile, dataset.ReadScoredSongs)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded scored songs", "rows", len(rows), "location", store.Location(dataset.LyricsSentimentsFile))
	return Summarize(store, renderer, rows)
}
