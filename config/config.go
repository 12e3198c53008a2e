package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel  int    `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// First and last chart year to collect. EndYear 0 means the current year.
	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`

	// Number of top-ranked songs kept from each monthly chart.
	TopN int `yaml:"top_n"`

	Chart     ChartConfig     `yaml:"chart"`
	Lyrics    LyricsConfig    `yaml:"lyrics"`
	Sentiment SentimentConfig `yaml:"sentiment"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
}

type ChartConfig struct {
	Name         string        `yaml:"name"`
	BaseURL      string        `yaml:"base_url"`
	RequestDelay time.Duration `yaml:"request_delay"`
	Timeout      time.Duration `yaml:"timeout"`

	// Extra collection passes after the first one. Negative disables retries.
	Tries int `yaml:"tries"`

	// Months formatted as YYYY-MM that never trigger a retry pass.
	ToleratedMissing []string `yaml:"tolerated_missing"`

	// Reuse chart_entries.csv from storage as the prior table.
	Resume bool `yaml:"resume"`
}

type LyricsConfig struct {
	BaseURL     string        `yaml:"base_url"`
	Selector    string        `yaml:"selector"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
}

type SentimentConfig struct {
	// Provider is "comprehend" or "openai".
	Provider          string       `yaml:"provider"`
	Region            string       `yaml:"region"`
	LanguageCode      string       `yaml:"language_code"`
	CredentialsFile   string       `yaml:"credentials_file"`
	RequestsPerSecond float64      `yaml:"requests_per_second"`
	MaxAttempts       int          `yaml:"max_attempts"`
	OpenAI            OpenAIConfig `yaml:"openai"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type StorageConfig struct {
	// Type of storage: "local" or "gcs"
	Type string `yaml:"type"`

	// Local storage options
	OutputDir string `yaml:"output_dir"`

	// GCS options
	Bucket          string `yaml:"bucket"`
	ObjectPrefix    string `yaml:"object_prefix"`
	CredentialsFile string `yaml:"credentials_file"`
}

type CacheConfig struct {
	// Type of lyrics cache: "" (disabled), "file" or "redis"
	Type      string        `yaml:"type"`
	Dir       string        `yaml:"dir"`
	TTL       time.Duration `yaml:"ttl"`
	RedisURL  string        `yaml:"redis_url"`
	KeyPrefix string        `yaml:"key_prefix"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	// Unmarshal the YAML data into the struct
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

func (c *Config) applyDefaults() {
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.StartYear == 0 {
		c.StartYear = 1980
	}
	if c.TopN == 0 {
		c.TopN = 5
	}

	if c.Chart.Name == "" {
		c.Chart.Name = "hot-100"
	}
	if c.Chart.BaseURL == "" {
		c.Chart.BaseURL = "https://www.billboard.com"
	}
	if c.Chart.RequestDelay == 0 {
		c.Chart.RequestDelay = 10 * time.Second
	}
	if c.Chart.Timeout == 0 {
		c.Chart.Timeout = 45 * time.Second
	}
	if c.Chart.Tries == 0 {
		c.Chart.Tries = 3
	} else if c.Chart.Tries < 0 {
		c.Chart.Tries = 0
	}
	if c.Chart.ToleratedMissing == nil {
		c.Chart.ToleratedMissing = []string{"2019-12"}
	}

	if c.Lyrics.BaseURL == "" {
		c.Lyrics.BaseURL = "http://genius.com"
	}
	if c.Lyrics.Selector == "" {
		c.Lyrics.Selector = ".lyrics"
	}
	if c.Lyrics.Timeout == 0 {
		c.Lyrics.Timeout = 30 * time.Second
	}
	if c.Lyrics.MaxAttempts == 0 {
		c.Lyrics.MaxAttempts = 2
	}

	if c.Sentiment.Provider == "" {
		c.Sentiment.Provider = "comprehend"
	}
	if c.Sentiment.Region == "" {
		c.Sentiment.Region = "eu-west-1"
	}
	if c.Sentiment.LanguageCode == "" {
		c.Sentiment.LanguageCode = "en"
	}
	if c.Sentiment.CredentialsFile == "" {
		c.Sentiment.CredentialsFile = "accessKeys.csv"
	}
	if c.Sentiment.RequestsPerSecond == 0 {
		c.Sentiment.RequestsPerSecond = 10
	}
	if c.Sentiment.MaxAttempts == 0 {
		c.Sentiment.MaxAttempts = 3
	}
	if c.Sentiment.OpenAI.Model == "" {
		c.Sentiment.OpenAI.Model = "gpt-4o-mini"
	}

	if c.Storage.Type == "" {
		c.Storage.Type = "local"
	}
	if c.Storage.OutputDir == "" {
		c.Storage.OutputDir = "output"
	}

	if c.Cache.Dir == "" {
		c.Cache.Dir = "cache/lyrics"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * 24 * time.Hour
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "lyrics:"
	}
}

func (c *Config) validate() error {
	if c.EndYear != 0 && c.EndYear < c.StartYear {
		return fmt.Errorf("end_year %d is before start_year %d", c.EndYear, c.StartYear)
	}
	if c.TopN < 1 || c.TopN > 100 {
		return fmt.Errorf("top_n must be between 1 and 100, got %d", c.TopN)
	}

	switch c.Storage.Type {
	case "local":
	case "gcs":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required for gcs storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}

	switch c.Sentiment.Provider {
	case "comprehend":
	case "openai":
		if c.Sentiment.OpenAI.APIKey == "" {
			return fmt.Errorf("sentiment.openai.api_key is required for the openai provider")
		}
	default:
		return fmt.Errorf("unknown sentiment provider: %s", c.Sentiment.Provider)
	}

	switch c.Cache.Type {
	case "", "file":
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for the redis cache")
		}
	default:
		return fmt.Errorf("unknown cache type: %s", c.Cache.Type)
	}

	return nil
}
