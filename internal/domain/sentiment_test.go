package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentPresentAndMissing(t *testing.T) {
	score := SentimentScore{Positive: 0.7, Negative: 0.1, Neutral: 0.15, Mixed: 0.05}

	present := Present(score)
	got, ok := present.Score()
	assert.True(t, ok)
	assert.Equal(t, score, got)
	assert.False(t, present.IsMissing())

	missing := Missing()
	_, ok = missing.Score()
	assert.False(t, ok)
	assert.True(t, missing.IsMissing())

	var zero Sentiment
	assert.True(t, zero.IsMissing())
}

func TestSentimentScoreArithmetic(t *testing.T) {
	a := SentimentScore{Positive: 0.5, Negative: 0.2, Neutral: 0.2, Mixed: 0.1}
	b := SentimentScore{Positive: 0.1, Negative: 0.4, Neutral: 0.4, Mixed: 0.1}

	mean := a.Add(b).Scale(0.5)

	assert.InDelta(t, 0.3, mean.Positive, 1e-9)
	assert.InDelta(t, 0.3, mean.Negative, 1e-9)
	assert.InDelta(t, 0.3, mean.Neutral, 1e-9)
	assert.InDelta(t, 0.1, mean.Mixed, 1e-9)
}

func TestScoredSongJSON(t *testing.T) {
	songs := []ScoredSong{
		{
			SongRecord: SongRecord{Artist: "Toto", Title: "Africa", Year: 1983},
			Sentiment:  Present(SentimentScore{Positive: 0.6, Neutral: 0.4}),
		},
		{
			SongRecord: SongRecord{Artist: "Prince", Title: "When Doves Cry", Year: 1984},
			Sentiment:  Missing(),
		},
	}

	data, err := json.Marshal(songs)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sentiment":null`)
	assert.Contains(t, string(data), `"positive":0.6`)

	var decoded []ScoredSong
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, songs[0].Sentiment, decoded[0].Sentiment)
	assert.True(t, decoded[1].Sentiment.IsMissing())
}

func TestSongRecordSetLyrics(t *testing.T) {
	song := SongRecord{Artist: "Queen", Title: "Bohemian Rhapsody"}

	song.SetLyrics("Is this the real life?", true)
	assert.True(t, song.HasLyrics)
	assert.Equal(t, "Is this the real life?", song.Lyrics)

	song.SetLyrics("ignored", false)
	assert.False(t, song.HasLyrics)
	assert.Empty(t, song.Lyrics)
}
