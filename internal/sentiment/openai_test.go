package sentiment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaki95/hot100-sentiment/internal/retry"
)

const responsesBody = `{
  "id": "resp_1",
  "object": "response",
  "created_at": 1700000000,
  "status": "completed",
  "model": "gpt-4o-mini",
  "output": [{
    "type": "message",
    "id": "msg_1",
    "status": "completed",
    "role": "assistant",
    "content": [{
      "type": "output_text",
      "text": "{\"positive\":0.7,\"negative\":0.1,\"neutral\":0.15,\"mixed\":0.05}",
      "annotations": []
    }]
  }],
  "parallel_tool_calls": true,
  "tool_choice": "auto",
  "tools": []
}`

func TestOpenAIAnalyze(t *testing.T) {
	var path string
	var request map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &request)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, responsesBody)
	}))
	defer server.Close()

	analyzer := NewOpenAIAnalyzer(OpenAIOptions{APIKey: "test", Model: "gpt-4o-mini", BaseURL: server.URL + "/"})
	score, err := analyzer.Analyze(context.Background(), "Here comes the sun", "en")

	require.NoError(t, err)
	assert.Equal(t, "/responses", path)
	assert.Equal(t, "gpt-4o-mini", request["model"])
	format := request["text"].(map[string]any)["format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, true, format["strict"])
	assert.InDelta(t, 0.7, score.Positive, 1e-9)
	assert.InDelta(t, 0.1, score.Negative, 1e-9)
	assert.InDelta(t, 0.15, score.Neutral, 1e-9)
	assert.InDelta(t, 0.05, score.Mixed, 1e-9)
}

func TestOpenAIRateLimitIsRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`)
	}))
	defer server.Close()

	analyzer := NewOpenAIAnalyzer(OpenAIOptions{APIKey: "test", Model: "gpt-4o-mini", BaseURL: server.URL + "/"})
	_, err := analyzer.Analyze(context.Background(), "Help!", "en")

	require.Error(t, err)
	assert.Equal(t, retry.After, classify(err))
}

func TestSentimentSchema(t *testing.T) {
	assert.Equal(t, "object", sentimentSchema["type"])
	assert.Equal(t, false, sentimentSchema["additionalProperties"])
	assert.ElementsMatch(t, []any{"positive", "negative", "neutral", "mixed"}, sentimentSchema["required"])

	properties := sentimentSchema["properties"].(map[string]any)
	assert.Len(t, properties, 4)
	assert.Equal(t, "number", properties["positive"].(map[string]any)["type"])
}
