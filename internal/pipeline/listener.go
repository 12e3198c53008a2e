package pipeline

import (
	"log/slog"

	"github.com/jaki95/hot100-sentiment/internal/progress"
)

// LogListener returns a tracker listener that writes every event to logger.
func LogListener(logger *slog.Logger) func(progress.Event) {
	return func(e progress.Event) {
		attrs := []any{"stage", e.Stage, "progress", e.Progress}
		if e.ItemDetails != nil {
			attrs = append(attrs,
				"item", e.ItemDetails.Item,
				"current", e.ItemDetails.Current,
				"total", e.ItemDetails.Total,
			)
		}

		if e.Stage == progress.StageError {
			logger.Error(e.Message, append(attrs, "error", e.Error)...)
			return
		}
		logger.Debug(e.Message, attrs...)
	}
}
