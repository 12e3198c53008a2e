package sentiment

import (
	"context"
	"fmt"

	"github.com/jaki95/hot100-sentiment/config"
	"github.com/jaki95/hot100-sentiment/internal/domain"
)

// LineAnalyzer scores a single piece of text.
type LineAnalyzer interface {
	Analyze(ctx context.Context, text, languageCode string) (domain.SentimentScore, error)
}

// NewAnalyzer builds the analyzer of the configured provider. Comprehend
// credentials are read from cfg.CredentialsFile.
func NewAnalyzer(cfg config.SentimentConfig) (LineAnalyzer, error) {
	switch cfg.Provider {
	case "comprehend":
		creds, err := LoadCredentials(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		return NewComprehendAnalyzer(ComprehendOptions{
			Region:      cfg.Region,
			Credentials: creds,
		}), nil
	case "openai":
		return NewOpenAIAnalyzer(OpenAIOptions{
			APIKey: cfg.OpenAI.APIKey,
			Model:  cfg.OpenAI.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown sentiment provider: %s", cfg.Provider)
	}
}
