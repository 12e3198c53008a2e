package domain

import (
	"fmt"
	"sort"
)

// ChartEntry is a single ranked song from one monthly chart.
type ChartEntry struct {
	Year   int    `json:"year"`
	Month  int    `json:"month"`
	Rank   int    `json:"rank"`
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// YearMonth identifies a monthly chart.
type YearMonth struct {
	Year  int
	Month int
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	var ym YearMonth
	if _, err := fmt.Sscanf(s, "%4d-%2d", &ym.Year, &ym.Month); err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	if ym.Month < 1 || ym.Month > 12 {
		return YearMonth{}, fmt.Errorf("invalid month in %q", s)
	}
	return ym, nil
}

// ChartTable is the accumulated collection of chart entries.
type ChartTable []ChartEntry

// Has reports whether any entry exists for the given month.
func (t ChartTable) Has(year, month int) bool {
	for _, e := range t {
		if e.Year == year && e.Month == month {
			return true
		}
	}
	return false
}

// Months returns the set of months present in the table.
func (t ChartTable) Months() map[YearMonth]struct{} {
	months := make(map[YearMonth]struct{})
	for _, e := range t {
		months[YearMonth{Year: e.Year, Month: e.Month}] = struct{}{}
	}
	return months
}

// Sorted returns a copy ordered by year, month and rank.
func (t ChartTable) Sorted() ChartTable {
	out := make(ChartTable, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// Between returns the entries whose year lies in [start, end]. An end of
// zero or less leaves the range open.
func (t ChartTable) Between(start, end int) ChartTable {
	out := make(ChartTable, 0, len(t))
	for _, e := range t {
		if e.Year < start || (end > 0 && e.Year > end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Dedupe drops rows that are exact duplicates of an earlier row.
func (t ChartTable) Dedupe() ChartTable {
	seen := make(map[ChartEntry]struct{}, len(t))
	out := make(ChartTable, 0, len(t))
	for _, e := range t {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}
