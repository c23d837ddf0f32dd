package metadata

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/seo-optimizer/articleseo/textmetrics"
)

const (
	wordsPerMinute   = 200
	maxExcerptLength = 200
)

var (
	excerptImageRe  = regexp.MustCompile(`!\[[^\]]*]\([^)]*\)`)
	excerptLinkRe   = regexp.MustCompile(`\[([^\]]+)]\([^)]*\)`)
	excerptMarkRe   = regexp.MustCompile("[`*_>#~=-]")
	spaceRe         = regexp.MustCompile(`\s+`)
	trailingWordRe  = regexp.MustCompile(`\s+\S*$`)
	slugSeparatorRe = regexp.MustCompile(`[\s-]+`)
)

// ReadingTime estimates minutes to read content at 200 words a minute. HTML
// tags do not count as words and the result is never below one.
func ReadingTime(content string) int {
	words := len(strings.Fields(tagRe.ReplaceAllString(content, " ")))
	return max(1, int(math.Ceil(float64(words)/wordsPerMinute)))
}

// Excerpt is the plain-text opening of content, at most maxLength
// characters before the "..." it gets when cut. Cuts fall on a word
// boundary.
func Excerpt(content string, maxLength int) string {
	text := excerptImageRe.ReplaceAllString(content, "")
	text = excerptLinkRe.ReplaceAllString(text, "$1")
	text = tagRe.ReplaceAllString(text, "")
	text = excerptMarkRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))

	if textmetrics.RuneLen(text) <= maxLength {
		return text
	}
	cut := textmetrics.Truncate(text, maxLength)
	return strings.TrimSpace(trailingWordRe.ReplaceAllString(cut, "")) + ellipsis
}

// Slug turns title into a lowercase, hyphen-separated URL segment. Accents
// are dropped and characters outside a-z and 0-9 are removed; fallback is
// returned when nothing is left.
func Slug(title, fallback string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	slug := strings.Trim(slugSeparatorRe.ReplaceAllString(strings.TrimSpace(b.String()), "-"), "-")
	if slug == "" {
		return fallback
	}
	return slug
}
