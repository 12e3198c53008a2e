package lyrics

import (
	"strings"
	"unicode"
)

// Slug lower-cases s, strips everything except ASCII letters, digits and
// whitespace, and joins the remaining words with "-".
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// Key identifies a song in the lyrics source and in caches.
func Key(artist, title string) string {
	return Slug(artist) + "-" + Slug(title)
}

// URL returns the lyrics page of a song, e.g.
// http://genius.com/taylor-swift-love-story-lyrics.
func URL(base, artist, title string) string {
	return strings.TrimRight(base, "/") + "/" + Key(artist, title) + "-lyrics"
}
