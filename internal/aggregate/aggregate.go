package aggregate

import (
	"sort"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

// ByYear averages each sentiment category over the scored songs of every
// year. Songs with a missing sentiment are ignored, so a year with nothing
// but missing scores does not appear at all.
func ByYear(rows []domain.ScoredSong) []domain.YearlyAggregate {
	byYear := make(map[int]*domain.YearlyAggregate)
	for _, row := range rows {
		score, ok := row.Sentiment.Score()
		if !ok {
			continue
		}

		agg, exists := byYear[row.Year]
		if !exists {
			agg = &domain.YearlyAggregate{Year: row.Year}
			byYear[row.Year] = agg
		}
		agg.Positive += score.Positive
		agg.Negative += score.Negative
		agg.Neutral += score.Neutral
		agg.Mixed += score.Mixed
		agg.Count++
	}

	result := make([]domain.YearlyAggregate, 0, len(byYear))
	for _, agg := range byYear {
		n := float64(agg.Count)
		agg.Positive /= n
		agg.Negative /= n
		agg.Neutral /= n
		agg.Mixed /= n
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Year < result[j].Year
	})
	return result
}

// PositiveScores returns the positive component of every present score.
func PositiveScores(rows []domain.ScoredSong) []float64 {
	var values []float64
	for _, row := range rows {
		if score, ok := row.Sentiment.Score(); ok {
			values = append(values, score.Positive)
		}
	}
	return values
}
