package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jaki95/hot100-sentiment/config"
	"github.com/jaki95/hot100-sentiment/internal/aggregate"
	"github.com/jaki95/hot100-sentiment/internal/chart"
	"github.com/jaki95/hot100-sentiment/internal/domain"
	"github.com/jaki95/hot100-sentiment/internal/lyrics"
	"github.com/jaki95/hot100-sentiment/internal/pipeline"
	"github.com/jaki95/hot100-sentiment/internal/sentiment"
	"github.com/jaki95/hot100-sentiment/internal/storage"
)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code so deferred cleanup runs before exiting.
func realMain() int {
	configPath := flag.String("config", "./config/config.yaml", "Path to the configuration file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}
	slog.SetDefault(cfg.NewLogger(os.Stdout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Pipeline failed", "error", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg *config.Config) error {
	tolerated, err := parseMonths(cfg.Chart.ToleratedMissing)
	if err != nil {
		return err
	}

	// Credentials are checked before any chart is fetched.
	analyzer, err := sentiment.NewAnalyzer(cfg.Sentiment)
	if err != nil {
		return err
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	defer store.Close()

	cache, err := lyrics.NewCache(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("failed to create lyrics cache: %w", err)
	}
	if cache != nil {
		defer cache.Close()
	}

	collector := chart.NewCollector(
		chart.NewBillboardSource(cfg.Chart.BaseURL, cfg.Chart.Timeout),
		chart.Options{
			ChartName:        cfg.Chart.Name,
			Delay:            cfg.Chart.RequestDelay,
			Tries:            cfg.Chart.Tries,
			ToleratedMissing: tolerated,
		},
	)
	fetcher := lyrics.NewFetcher(lyrics.Options{
		BaseURL:     cfg.Lyrics.BaseURL,
		Selector:    cfg.Lyrics.Selector,
		Timeout:     cfg.Lyrics.Timeout,
		MaxAttempts: cfg.Lyrics.MaxAttempts,
		Cache:       cache,
	})
	scorer := sentiment.NewScorer(analyzer, sentiment.Options{
		LanguageCode:      cfg.Sentiment.LanguageCode,
		RequestsPerSecond: cfg.Sentiment.RequestsPerSecond,
		MaxAttempts:       cfg.Sentiment.MaxAttempts,
	})

	processor := pipeline.NewProcessor(collector, fetcher, scorer, aggregate.NewPlotter(store), store, pipeline.Options{
		StartYear: cfg.StartYear,
		EndYear:   cfg.EndYear,
		TopN:      cfg.TopN,
		Resume:    cfg.Chart.Resume,
	})

	result, err := processor.Run(ctx)
	if err != nil {
		return err
	}

	for _, artifact := range result.Artifacts {
		slog.Info("Artifact", "location", store.Location(artifact))
	}
	return nil
}

func parseMonths(values []string) ([]domain.YearMonth, error) {
	months := make([]domain.YearMonth, 0, len(values))
	for _, v := range values {
		ym, err := domain.ParseYearMonth(v)
		if err != nil {
			return nil, fmt.Errorf("invalid chart.tolerated_missing entry: %w", err)
		}
		months = append(months, ym)
	}
	return months, nil
}
