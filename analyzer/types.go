package analyzer

// SEOScore is the weighted quality assessment of one article.
type SEOScore struct {
	Overall             float64      `json:"overall"`
	KeywordOptimization float64      `json:"keywordOptimization"`
	ContentQuality      float64      `json:"contentQuality"`
	TechnicalSEO        float64      `json:"technicalSEO"`
	UserExperience      float64      `json:"userExperience"`
	Details             ScoreDetails `json:"details"`
}

type ScoreDetails struct {
	KeywordDensity    []KeywordDensity `json:"keywordDensity"`
	HeadingStructure  bool             `json:"headingStructure"`
	MetaTagsPresent   bool             `json:"metaTagsPresent"`
	ImageOptimization float64          `json:"imageOptimization"`
	InternalLinks     int              `json:"internalLinks"`
	ExternalLinks     int              `json:"externalLinks"`
	ReadabilityScore  float64          `json:"readabilityScore"`
	MobileOptimized   bool             `json:"mobileOptimized"`
	LoadSpeed         string           `json:"loadSpeed"`
	EATScore          EATScore         `json:"eatScore"`
}

// KeywordDensity is a keyword's share of the word count, in percent,
// rounded to one decimal.
type KeywordDensity struct {
	Keyword string  `json:"keyword"`
	Density float64 `json:"density"`
}

// EATScore rates experience, expertise, authority and trustworthiness
// independently of each other.
type EATScore struct {
	Experience      float64 `json:"experience"`
	Expertise       float64 `json:"expertise"`
	Authority       float64 `json:"authority"`
	Trustworthiness float64 `json:"trustworthiness"`
}
