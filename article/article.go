// Package article defines the article fields consumed by the scoring
// components. Storage of articles is handled elsewhere.
package article

// Article is the editor's view of a blog article.
type Article struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug,omitempty"`
	Description  string   `json:"description,omitempty"`
	Content      string   `json:"content"`
	Keywords     []string `json:"keywords,omitempty"`
	FocusKeyword string   `json:"focusKeyword,omitempty"`
	CoverImage   string   `json:"coverImage,omitempty"`
	Author       string   `json:"author,omitempty"`
	PublishDate  string   `json:"publishDate,omitempty"`
	LastModified string   `json:"lastModified,omitempty"`
	Category     string   `json:"category,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Metadata     Meta     `json:"metadata"`
}

// Meta holds the SEO fields the author edits by hand.
type Meta struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
}
