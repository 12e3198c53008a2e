package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test_config.yaml")
	err := os.WriteFile(configPath, []byte(content), 0644)
	require.NoError(t, err)
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
log_level: -4
log_format: json
start_year: 1995
end_year: 2000
top_n: 10
chart:
  request_delay: 2s
  tries: 1
  tolerated_missing: ["2001-06"]
  resume: true
lyrics:
  selector: "div.lyrics-body"
sentiment:
  region: us-east-1
storage:
  type: local
  output_dir: results
cache:
  type: file
  ttl: 1h
`)

	cfg, err := Load(configPath)

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, -4, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 1995, cfg.StartYear)
	assert.Equal(t, 2000, cfg.EndYear)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 2*time.Second, cfg.Chart.RequestDelay)
	assert.Equal(t, 1, cfg.Chart.Tries)
	assert.Equal(t, []string{"2001-06"}, cfg.Chart.ToleratedMissing)
	assert.True(t, cfg.Chart.Resume)
	assert.Equal(t, "div.lyrics-body", cfg.Lyrics.Selector)
	assert.Equal(t, "us-east-1", cfg.Sentiment.Region)
	assert.Equal(t, "results", cfg.Storage.OutputDir)
	assert.Equal(t, "file", cfg.Cache.Type)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)

	// Untouched sections keep their defaults
	assert.Equal(t, "hot-100", cfg.Chart.Name)
	assert.Equal(t, 45*time.Second, cfg.Chart.Timeout)
	assert.Equal(t, "http://genius.com", cfg.Lyrics.BaseURL)
	assert.Equal(t, "en", cfg.Sentiment.LanguageCode)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))

	require.NoError(t, err)
	assert.Equal(t, 1980, cfg.StartYear)
	assert.Equal(t, 0, cfg.EndYear)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, 10*time.Second, cfg.Chart.RequestDelay)
	assert.Equal(t, 3, cfg.Chart.Tries)
	assert.Equal(t, []string{"2019-12"}, cfg.Chart.ToleratedMissing)
	assert.Equal(t, ".lyrics", cfg.Lyrics.Selector)
	assert.Equal(t, "comprehend", cfg.Sentiment.Provider)
	assert.Equal(t, "eu-west-1", cfg.Sentiment.Region)
	assert.Equal(t, "accessKeys.csv", cfg.Sentiment.CredentialsFile)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, "output", cfg.Storage.OutputDir)
	assert.Equal(t, "", cfg.Cache.Type)
	assert.Equal(t, Default(), cfg)
}

func TestLoadNegativeTriesDisablesRetries(t *testing.T) {
	cfg, err := Load(writeConfig(t, "chart:\n  tries: -1\n"))

	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Chart.Tries)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"end before start", "start_year: 2000\nend_year: 1990\n", "before start_year"},
		{"top n too large", "top_n: 101\n", "top_n"},
		{"unknown storage", "storage:\n  type: s3\n", "unknown storage type"},
		{"gcs without bucket", "storage:\n  type: gcs\n", "storage.bucket"},
		{"openai without key", "sentiment:\n  provider: openai\n", "api_key"},
		{"unknown provider", "sentiment:\n  provider: vader\n", "unknown sentiment provider"},
		{"redis without url", "cache:\n  type: redis\n", "redis_url"},
		{"unknown cache", "cache:\n  type: memcached\n", "unknown cache type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	// Test loading a non-existent config file
	cfg, err := Load("non_existent_file.yaml")

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `
log_level: -4
top_n: 5
invalid_yaml: [this is not valid yaml
`)

	// Test loading the invalid config
	cfg, err := Load(configPath)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
