package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jaki95/hot100-sentiment/config"
	"github.com/jaki95/hot100-sentiment/internal/aggregate"
	"github.com/jaki95/hot100-sentiment/internal/pipeline"
	"github.com/jaki95/hot100-sentiment/internal/storage"
)

// Re-renders the yearly table and the charts from a stored
// lyrics_sentiments.csv without touching any remote service.
func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stdout))

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("Failed to re-plot", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	defer store.Close()

	yearly, err := pipeline.Replot(store, aggregate.NewPlotter(store))
	if err != nil {
		return err
	}

	for _, y := range yearly {
		slog.Info("Yearly sentiment", "year", y.Year, "positive", y.Positive, "negative", y.Negative, "neutral", y.Neutral, "mixed", y.Mixed, "songs", y.Count)
	}
	return nil
}
