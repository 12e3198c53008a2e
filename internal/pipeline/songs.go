package pipeline

import "github.com/jaki95/hot100-sentiment/internal/domain"

// SelectSongs keeps the entries ranked within topN and drops repeat
// appearances of the same (artist, title), keeping the earliest by chart
// date and rank.
func SelectSongs(table domain.ChartTable, topN int) []domain.SongRecord {
	type songKey struct{ artist, title string }

	seen := make(map[songKey]struct{})
	var songs []domain.SongRecord
	for _, e := range table.Sorted() {
		if e.Rank > topN {
			continue
		}
		key := songKey{e.Artist, e.Title}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		songs = append(songs, domain.SongRecord{
			Artist: e.Artist,
			Title:  e.Title,
			Year:   e.Year,
		})
	}
	return songs
}
