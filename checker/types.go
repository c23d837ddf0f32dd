package checker

// Status is the outcome of a single checklist item.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarning Status = "warning"
	StatusFail    Status = "fail"
)

// Item is one entry of the checklist.
type Item struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checklist has one item per check; every field is always populated.
type Checklist struct {
	H1Unique             Item `json:"h1Unique"`
	TitleLength          Item `json:"titleLength"`
	DescriptionLength    Item `json:"descriptionLength"`
	KeywordInTitle       Item `json:"keywordInTitle"`
	KeywordInDescription Item `json:"keywordInDescription"`
	KeywordDensity       Item `json:"keywordDensity"`
	ImageAltTags         Item `json:"imageAltTags"`
	InternalLinks        Item `json:"internalLinks"`
	ExternalLinks        Item `json:"externalLinks"`
	ContentLength        Item `json:"contentLength"`
}

// Items returns the checklist entries in their fixed order.
func (c Checklist) Items() []Item {
	return []Item{
		c.H1Unique,
		c.TitleLength,
		c.DescriptionLength,
		c.KeywordInTitle,
		c.KeywordInDescription,
		c.KeywordDensity,
		c.ImageAltTags,
		c.InternalLinks,
		c.ExternalLinks,
		c.ContentLength,
	}
}
