package analyzer

import (
	"math"
	"strings"

	"github.com/seo-optimizer/articleseo/textmetrics"
)

var (
	experienceKeywords = []string{"我的经验", "实践", "案例", "实际", "亲身", "测试"}
	expertiseKeywords  = []string{"研究", "数据", "分析", "专业", "技术", "方法"}
	trustKeywords      = []string{"来源", "参考", "研究表明", "根据", "官方"}
)

// AnalyzeEAT scores the four E-E-A-T dimensions from keyword and link
// heuristics.
//
// Authority and trustworthiness top out at 0.8: the two signals feeding each
// of them never add up to 1.
func AnalyzeEAT(content string) EATScore {
	text := strings.ToLower(content)
	external := textmetrics.CountLinks(content, textmetrics.External)

	experience := 0.3
	if countKeywordMatches(text, experienceKeywords) > 0 {
		experience = 0.7
	}

	expertise := math.Min(float64(countKeywordMatches(text, expertiseKeywords))*0.15, 1)

	authority := 0.0
	if external >= 2 {
		authority += 0.5
	}
	if textmetrics.HasCitations(content) {
		authority += 0.3
	}

	trust := 0.0
	if countKeywordMatches(text, trustKeywords) > 0 {
		trust += 0.4
	}
	if external > 0 {
		trust += 0.4
	}

	return EATScore{
		Experience:      experience,
		Expertise:       expertise,
		Authority:       math.Min(authority, 1),
		Trustworthiness: math.Min(trust, 1),
	}
}

// countKeywordMatches counts how many of the keywords appear at least once.
func countKeywordMatches(text string, keywords []string) int {
	count := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			count++
		}
	}
	return count
}
