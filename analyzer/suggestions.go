package analyzer

// Scores below these thresholds unlock their suggestions.
const (
	suggestionThreshold = 0.7
	eatThreshold        = 0.6
)

// GenerateSuggestions turns a score into improvement advice. The order is
// fixed: keywords, quality, technical, user experience, then E-E-A-T.
func GenerateSuggestions(score SEOScore) []string {
	suggestions := []string{}

	if score.KeywordOptimization < suggestionThreshold {
		suggestions = append(suggestions,
			"增加目标关键词的使用频率，确保关键词密度在0.5%-2.5%之间",
			"在文章开头100字内包含主要关键词",
		)
	}

	if score.ContentQuality < suggestionThreshold {
		suggestions = append(suggestions,
			"扩充文章内容，建议达到1500字以上",
			"增加更多段落和小标题，提升内容结构",
			"添加列表和要点，提高可读性",
		)
	}

	if score.TechnicalSEO < suggestionThreshold {
		suggestions = append(suggestions,
			"优化标题长度，建议在30-60个字符之间",
			"添加更多内部链接，建议至少2个",
			"添加高质量外部链接作为引用",
		)
	}

	if score.UserExperience < suggestionThreshold {
		suggestions = append(suggestions,
			"添加相关图片提升视觉体验",
			"缩短段落长度，每段不超过100字",
			"使用更清晰的标题结构",
		)
	}

	if score.Details.EATScore.Expertise < eatThreshold {
		suggestions = append(suggestions, "增加专业数据和研究支持")
	}

	if score.Details.EATScore.Trustworthiness < eatThreshold {
		suggestions = append(suggestions, "添加可信来源的引用和链接")
	}

	return suggestions
}
