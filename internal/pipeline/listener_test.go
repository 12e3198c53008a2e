package pipeline

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaki95/hot100-sentiment/internal/progress"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogListener(t *testing.T) {
	var first, second bytes.Buffer
	tracker := progress.NewTracker()

	removeFirst := tracker.AddListener(LogListener(newBufferLogger(&first)))
	tracker.AddListener(LogListener(newBufferLogger(&second)))

	tracker.UpdateProgress(progress.StageFetching, 30, "Fetching lyrics")
	tracker.UpdateItemProgress(2, 5, 5, "lyrics")
	removeFirst()
	tracker.SetError(errors.New("bucket gone"))

	assert.Contains(t, first.String(), "Fetching lyrics")
	assert.Contains(t, first.String(), "item=lyrics current=2 total=5")
	assert.NotContains(t, first.String(), "bucket gone")

	assert.Contains(t, second.String(), "Fetching lyrics")
	assert.Contains(t, second.String(), "level=ERROR")
	assert.Contains(t, second.String(), `error="bucket gone"`)
}
