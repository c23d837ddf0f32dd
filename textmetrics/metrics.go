// Package textmetrics holds the Markdown text measurements shared by the
// analyzer, the checker and the metadata generator.
//
// Everything here is regex based and works on raw Markdown. Word counting
// splits on whitespace only, so languages written without spaces (Chinese,
// Japanese) are undercounted.
package textmetrics

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// LinkType selects which links CountLinks reports.
type LinkType int

const (
	Internal LinkType = iota
	External
)

var (
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+(.+)$`)
	h1LineRe     = regexp.MustCompile(`(?m)^#\s+`)
	h2LineRe     = regexp.MustCompile(`(?m)^##\s+`)
	linkRe       = regexp.MustCompile(`\[.*?\]\((https?://[^)]+)\)`)
	imageRe      = regexp.MustCompile(`!\[(.*?)\]\(.*?\)`)
	sentenceRe   = regexp.MustCompile(`[.!?]+`)
	bulletRe     = regexp.MustCompile(`[-*]\s`)
	numberedRe   = regexp.MustCompile(`\d+\.\s`)
	citationRe   = regexp.MustCompile(`\[.*?\]`)
	emphasisRe   = regexp.MustCompile("[#*_~`]")
	inlineLinkRe = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// WordCount counts whitespace separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ExtractHeadings returns every ATX heading line, of any level.
func ExtractHeadings(content string) []string {
	return headingRe.FindAllString(content, -1)
}

// HasProperHeadingStructure reports whether the content has at least one H1
// line, at least one H2 line and two or more headings overall.
func HasProperHeadingStructure(content string) bool {
	hasH1 := h1LineRe.MatchString(content)
	hasH2 := h2LineRe.MatchString(content)
	return hasH1 && hasH2 && len(ExtractHeadings(content)) >= 2
}

// CountH1 counts lines that open with a single '#'.
func CountH1(content string) int {
	return len(h1LineRe.FindAllStringIndex(content, -1))
}

// CountLinks counts Markdown links of the given type.
//
// Only links carrying an http(s) scheme are matched in the first place, so
// Internal always yields zero. The realtime checker counts internal links
// with its own pattern.
func CountLinks(content string, typ LinkType) int {
	matches := linkRe.FindAllString(content, -1)

	count := 0
	for _, link := range matches {
		hasScheme := strings.Contains(link, "http://") || strings.Contains(link, "https://")
		if (typ == External) == hasScheme {
			count++
		}
	}
	return count
}

// Image is a Markdown image reference.
type Image struct {
	Alt string
}

// Images lists all Markdown images in order of appearance.
func Images(content string) []Image {
	matches := imageRe.FindAllStringSubmatch(content, -1)
	images := make([]Image, 0, len(matches))
	for _, m := range matches {
		images = append(images, Image{Alt: m[1]})
	}
	return images
}

// HasImages reports whether the content embeds at least one image.
func HasImages(content string) bool {
	return imageRe.MatchString(content)
}

// AnalyzeImages returns the share of images with non-empty alt text, or 0
// when there are no images.
func AnalyzeImages(content string) float64 {
	images := Images(content)
	if len(images) == 0 {
		return 0
	}

	withAlt := 0
	for _, img := range images {
		if img.Alt != "" {
			withAlt++
		}
	}
	return float64(withAlt) / float64(len(images))
}

// Sentences splits on runs of '.', '!' and '?' and drops blank fragments.
func Sentences(content string) []string {
	parts := sentenceRe.Split(content, -1)
	sentences := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// AverageSentenceLength is words per sentence, 0 when there is no sentence.
func AverageSentenceLength(content string) float64 {
	sentences := len(Sentences(content))
	if sentences == 0 {
		return 0
	}
	return float64(WordCount(content)) / float64(sentences)
}

// Blocks splits on blank-line separators without filtering, so the result
// always has at least one element.
func Blocks(content string) []string {
	return strings.Split(content, "\n\n")
}

// Paragraphs returns the non-blank blocks.
func Paragraphs(content string) []string {
	var paragraphs []string
	for _, b := range Blocks(content) {
		if strings.TrimSpace(b) != "" {
			paragraphs = append(paragraphs, b)
		}
	}
	return paragraphs
}

// HasLists reports bullet ("- ", "* ") or numbered ("1. ") markers anywhere.
func HasLists(content string) bool {
	return bulletRe.MatchString(content) || numberedRe.MatchString(content)
}

// HasCitations reports any bracketed span such as "[1]".
func HasCitations(content string) bool {
	return citationRe.MatchString(content)
}

// Fold lowercases and NFC-normalises text before keyword matching.
func Fold(text string) string {
	return norm.NFC.String(strings.ToLower(text))
}

// CountOccurrences counts non-overlapping, case-insensitive occurrences of
// keyword in text. An empty keyword never matches.
func CountOccurrences(text, keyword string) int {
	k := Fold(keyword)
	if k == "" {
		return 0
	}
	return strings.Count(Fold(text), k)
}

// ContainsFold reports whether keyword occurs in text, ignoring case.
func ContainsFold(text, keyword string) bool {
	return strings.Contains(Fold(text), Fold(keyword))
}

// StripMarkdown removes heading and emphasis markers and replaces inline
// links with their anchor text.
func StripMarkdown(content string) string {
	text := emphasisRe.ReplaceAllString(content, "")
	return inlineLinkRe.ReplaceAllString(text, "$1")
}

// RuneLen is the length of s in characters.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate keeps the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
