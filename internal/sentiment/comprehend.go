package sentiment

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

type ComprehendOptions struct {
	Region      string
	Credentials Credentials

	// Endpoint overrides the regional service endpoint.
	Endpoint string
}

// ComprehendAnalyzer scores text with AWS Comprehend DetectSentiment.
type ComprehendAnalyzer struct {
	client *comprehend.Client
}

func NewComprehendAnalyzer(opts ComprehendOptions) *ComprehendAnalyzer {
	clientOpts := comprehend.Options{
		Region: opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.Credentials.AccessKeyID,
			opts.Credentials.SecretAccessKey,
			"",
		),
		// Retries are handled by the scorer.
		RetryMaxAttempts: 1,
	}
	if opts.Endpoint != "" {
		clientOpts.BaseEndpoint = aws.String(opts.Endpoint)
	}

	return &ComprehendAnalyzer{client: comprehend.New(clientOpts)}
}

func (a *ComprehendAnalyzer) Analyze(ctx context.Context, text, languageCode string) (domain.SentimentScore, error) {
	out, err := a.client.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		Text:         aws.String(text),
		LanguageCode: types.LanguageCode(languageCode),
	})
	if err != nil {
		return domain.SentimentScore{}, fmt.Errorf("comprehend DetectSentiment: %w", err)
	}
	if out.SentimentScore == nil {
		return domain.SentimentScore{}, fmt.Errorf("comprehend DetectSentiment: response without scores")
	}

	return domain.SentimentScore{
		Positive: float64(aws.ToFloat32(out.SentimentScore.Positive)),
		Negative: float64(aws.ToFloat32(out.SentimentScore.Negative)),
		Neutral:  float64(aws.ToFloat32(out.SentimentScore.Neutral)),
		Mixed:    float64(aws.ToFloat32(out.SentimentScore.Mixed)),
	}, nil
}
