package domain

import "encoding/json"

// SentimentScore holds the four sentiment probabilities of a text.
type SentimentScore struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Mixed    float64 `json:"mixed"`
}

// Add returns the component-wise sum of two scores.
func (s SentimentScore) Add(o SentimentScore) SentimentScore {
	return SentimentScore{
		Positive: s.Positive + o.Positive,
		Negative: s.Negative + o.Negative,
		Neutral:  s.Neutral + o.Neutral,
		Mixed:    s.Mixed + o.Mixed,
	}
}

// Scale multiplies every component by f.
func (s SentimentScore) Scale(f float64) SentimentScore {
	return SentimentScore{
		Positive: s.Positive * f,
		Negative: s.Negative * f,
		Neutral:  s.Neutral * f,
		Mixed:    s.Mixed * f,
	}
}

// Sentiment is either a present score or missing. The zero value is missing.
type Sentiment struct {
	score   SentimentScore
	present bool
}

func Present(s SentimentScore) Sentiment {
	return Sentiment{score: s, present: true}
}

func Missing() Sentiment {
	return Sentiment{}
}

// Score returns the score and whether it is present.
func (s Sentiment) Score() (SentimentScore, bool) {
	return s.score, s.present
}

func (s Sentiment) IsMissing() bool {
	return !s.present
}

// MarshalJSON encodes a missing sentiment as null.
func (s Sentiment) MarshalJSON() ([]byte, error) {
	if !s.present {
		return []byte("null"), nil
	}
	return json.Marshal(s.score)
}

func (s *Sentiment) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Missing()
		return nil
	}
	var score SentimentScore
	if err := json.Unmarshal(data, &score); err != nil {
		return err
	}
	*s = Present(score)
	return nil
}

// YearlyAggregate is the mean sentiment of all scored songs in a year.
type YearlyAggregate struct {
	Year     int     `json:"year"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Mixed    float64 `json:"mixed"`
	Count    int     `json:"count"`
}
