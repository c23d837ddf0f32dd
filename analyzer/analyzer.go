package analyzer

import (
	"math"
	"strings"

	"github.com/seo-optimizer/articleseo/config"
	"github.com/seo-optimizer/articleseo/textmetrics"
)

// Sub-score weights of the overall score.
const (
	keywordWeight   = 0.25
	qualityWeight   = 0.30
	technicalWeight = 0.20
	uxWeight        = 0.25
)

// introLength is how much of the content counts as the introduction when
// looking for keywords.
const introLength = 500

// Analyzer scores article content against the configured thresholds.
// It holds no mutable state and is safe for concurrent use.
type Analyzer struct {
	cfg config.SEO
}

// New creates an Analyzer using the given thresholds.
func New(cfg config.SEO) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// AnalyzeArticle performs a complete SEO analysis of an article's Markdown
// content. An empty keyword list scores 0 for keyword optimization.
func (a *Analyzer) AnalyzeArticle(content string, keywords []string, title string) SEOScore {
	score := SEOScore{
		KeywordOptimization: a.analyzeKeywords(content, keywords),
		ContentQuality:      a.analyzeContentQuality(content),
		TechnicalSEO:        a.analyzeTechnicalSEO(content, title),
		UserExperience:      a.analyzeUserExperience(content),
	}
	score.Overall = calculateOverallScore(score)

	score.Details = ScoreDetails{
		KeywordDensity:    keywordDensities(content, keywords),
		HeadingStructure:  textmetrics.HasProperHeadingStructure(content),
		MetaTagsPresent:   checkMetaTags(title),
		ImageOptimization: textmetrics.AnalyzeImages(content),
		InternalLinks:     textmetrics.CountLinks(content, textmetrics.Internal),
		ExternalLinks:     textmetrics.CountLinks(content, textmetrics.External),
		ReadabilityScore:  CalculateReadability(content),
		MobileOptimized:   true,
		LoadSpeed:         "good",
		EATScore:          AnalyzeEAT(content),
	}

	return score
}

// analyzeKeywords averages the per-keyword density credit, with the intro
// bonus folded into the same division.
func (a *Analyzer) analyzeKeywords(content string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	wordCount := textmetrics.WordCount(content)
	score := 0.0

	for _, keyword := range keywords {
		density := density(textmetrics.CountOccurrences(content, keyword), wordCount)

		if density >= a.cfg.MinKeywordDensity && density <= a.cfg.MaxKeywordDensity {
			score += 1
		} else if density > 0 && density < a.cfg.MaxKeywordDensity*1.5 {
			score += 0.5
		}
	}

	intro := textmetrics.Truncate(textmetrics.Fold(content), introLength)
	inIntro := 0
	for _, keyword := range keywords {
		k := textmetrics.Fold(keyword)
		if strings.Contains(intro, k) {
			inIntro++
		}
	}
	score += float64(inIntro) / float64(len(keywords)) * 0.5

	return math.Min(score/float64(len(keywords)), 1)
}

func (a *Analyzer) analyzeContentQuality(content string) float64 {
	wordCount := textmetrics.WordCount(content)
	score := 0.0

	if wordCount >= a.cfg.OptimalContentLength {
		score += 0.3
	} else if wordCount >= a.cfg.MinContentLength {
		score += 0.15
	}

	if len(textmetrics.Paragraphs(content)) >= 5 {
		score += 0.2
	}

	if len(textmetrics.ExtractHeadings(content)) >= 3 {
		score += 0.2
	}

	if textmetrics.HasLists(content) {
		score += 0.1
	}

	avg := textmetrics.AverageSentenceLength(content)
	if avg >= 10 && avg <= 25 {
		score += 0.2
	}

	return math.Min(score, 1)
}

func (a *Analyzer) analyzeTechnicalSEO(content, title string) float64 {
	score := 0.0

	if checkMetaTags(title) {
		score += 0.3
	} else if title != "" {
		score += 0.15
	}

	if textmetrics.HasProperHeadingStructure(content) {
		score += 0.3
	}

	if textmetrics.CountLinks(content, textmetrics.Internal) >= a.cfg.MinInternalLinks {
		score += 0.2
	}

	if textmetrics.CountLinks(content, textmetrics.External) >= a.cfg.MinExternalLinks {
		score += 0.2
	}

	return math.Min(score, 1)
}

func (a *Analyzer) analyzeUserExperience(content string) float64 {
	score := CalculateReadability(content) * 0.4

	blocks := textmetrics.Blocks(content)
	hasHeadings := len(textmetrics.ExtractHeadings(content)) > 0
	if hasHeadings && len(blocks) > 3 {
		score += 0.3
	}

	if textmetrics.HasImages(content) {
		score += 0.15
	}

	avgParagraphLength := float64(textmetrics.WordCount(content)) / float64(len(blocks))
	if avgParagraphLength < 100 {
		score += 0.15
	}

	return math.Min(score, 1)
}

func calculateOverallScore(s SEOScore) float64 {
	weighted := s.KeywordOptimization*keywordWeight +
		s.ContentQuality*qualityWeight +
		s.TechnicalSEO*technicalWeight +
		s.UserExperience*uxWeight

	return math.Round(weighted*100) / 100
}

func keywordDensities(content string, keywords []string) []KeywordDensity {
	wordCount := textmetrics.WordCount(content)

	densities := make([]KeywordDensity, 0, len(keywords))
	for _, keyword := range keywords {
		d := density(textmetrics.CountOccurrences(content, keyword), wordCount)
		densities = append(densities, KeywordDensity{
			Keyword: keyword,
			Density: math.Round(d*10) / 10,
		})
	}
	return densities
}

// density is matches per hundred words, 0 for empty content.
func density(matches, wordCount int) float64 {
	if wordCount == 0 {
		return 0
	}
	return float64(matches) / float64(wordCount) * 100
}

// checkMetaTags reports whether the title fits the 30-60 character window.
func checkMetaTags(title string) bool {
	n := textmetrics.RuneLen(title)
	return n >= 30 && n <= 60
}
