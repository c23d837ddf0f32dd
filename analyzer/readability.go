package analyzer

import "github.com/seo-optimizer/articleseo/textmetrics"

// CalculateReadability buckets the average sentence length: 15-20 words
// scores 1, 10-25 scores 0.7, anything else (including no sentences) 0.5.
func CalculateReadability(content string) float64 {
	avg := textmetrics.AverageSentenceLength(content)

	switch {
	case avg >= 15 && avg <= 20:
		return 1
	case avg >= 10 && avg <= 25:
		return 0.7
	default:
		return 0.5
	}
}
