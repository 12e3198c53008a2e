package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

const openAIInstructions = `You are a sentiment classifier for song lyrics.
Score the sentiment of the given lyric line. Return four probabilities
(positive, negative, neutral, mixed) between 0 and 1 that sum to 1.
The line is written in the language with ISO code given before it.`

type openAIScores struct {
	Positive float64 `json:"positive" jsonschema:"required"`
	Negative float64 `json:"negative" jsonschema:"required"`
	Neutral  float64 `json:"neutral" jsonschema:"required"`
	Mixed    float64 `json:"mixed" jsonschema:"required"`
}

var sentimentSchema = generateSchema[openAIScores]()

type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIAnalyzer asks a model for sentiment probabilities in the same
// shape as Comprehend returns them.
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

func NewOpenAIAnalyzer(opts OpenAIOptions) *OpenAIAnalyzer {
	clientOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		// Retries are handled by the scorer.
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(opts.BaseURL))
	}

	client := openai.NewClient(clientOpts...)
	return &OpenAIAnalyzer{client: &client, model: opts.Model}
}

func (a *OpenAIAnalyzer) Analyze(ctx context.Context, text, languageCode string) (domain.SentimentScore, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "LyricSentiment",
			Schema:      sentimentSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Sentiment probabilities of a lyric line"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           a.model,
		MaxOutputTokens: openai.Int(200),
		Instructions:    openai.String(openAIInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(fmt.Sprintf("[%s] %s", languageCode, text), responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return domain.SentimentScore{}, fmt.Errorf("openai responses: %w", err)
	}

	var out openAIScores
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.OutputText())), &out); err != nil {
		return domain.SentimentScore{}, fmt.Errorf("unmarshal sentiment: %w", err)
	}
	return domain.SentimentScore(out), nil
}

func generateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)

	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}

	// Strict mode requires a closed object with every property required.
	m["additionalProperties"] = false
	delete(m, "$schema")
	delete(m, "$id")
	return m
}

func isOpenAIStatus(err error, match func(code int) bool) bool {
	var apiErr *openai.Error
	return errors.As(err, &apiErr) && match(apiErr.StatusCode)
}
