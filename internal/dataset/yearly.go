package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/jaki95/hot100-sentiment/internal/domain"
)

func WriteYearly(w io.Writer, rows []domain.YearlyAggregate) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"year", "positive", "negative", "neutral", "mixed", "count"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Year),
			formatFloat(r.Positive),
			formatFloat(r.Negative),
			formatFloat(r.Neutral),
			formatFloat(r.Mixed),
			strconv.Itoa(r.Count),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
