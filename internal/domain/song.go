package domain

// SongRecord is a deduplicated chart song and, once fetched, its lyrics.
type SongRecord struct {
	Artist    string `json:"artist"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Lyrics    string `json:"lyrics,omitempty"`
	HasLyrics bool   `json:"has_lyrics"`
}

// SetLyrics records the fetch outcome for the song.
func (s *SongRecord) SetLyrics(text string, found bool) {
	s.HasLyrics = found
	if found {
		s.Lyrics = text
	} else {
		s.Lyrics = ""
	}
}

// ScoredSong is a song joined with its aggregate sentiment.
type ScoredSong struct {
	SongRecord
	Sentiment Sentiment `json:"sentiment"`
}
