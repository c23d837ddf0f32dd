// Package metadata derives meta tags and Schema.org JSON-LD for articles.
package metadata

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/seo-optimizer/articleseo/article"
	"github.com/seo-optimizer/articleseo/config"
	"github.com/seo-optimizer/articleseo/textmetrics"
)

const (
	minTitleLength       = 30
	maxTitleLength       = 60
	maxDescriptionLength = 160
	ellipsis             = "..."
)

var tagRe = regexp.MustCompile(`<[^>]+>`)

// ArticleMetadata is the generated head metadata of an article.
type ArticleMetadata struct {
	MetaTitle       string  `json:"metaTitle"`
	MetaDescription string  `json:"metaDescription"`
	OGImage         string  `json:"ogImage,omitempty"`
	Schema          *Schema `json:"schema"`
	CanonicalURL    string  `json:"canonicalUrl,omitempty"`
	ReadingTime     int     `json:"readingTime"`
	Excerpt         string  `json:"excerpt,omitempty"`
	SuggestedSlug   string  `json:"suggestedSlug,omitempty"`
}

// Schema is a Schema.org Article in JSON-LD form.
type Schema struct {
	Context          string       `json:"@context"`
	Type             string       `json:"@type"`
	Headline         string       `json:"headline,omitempty"`
	Description      string       `json:"description,omitempty"`
	Image            string       `json:"image,omitempty"`
	Author           Person       `json:"author"`
	Publisher        Organization `json:"publisher"`
	DatePublished    string       `json:"datePublished,omitempty"`
	DateModified     string       `json:"dateModified,omitempty"`
	MainEntityOfPage WebPage      `json:"mainEntityOfPage"`
	Keywords         string       `json:"keywords,omitempty"`
	ArticleSection   string       `json:"articleSection,omitempty"`
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type Organization struct {
	Type string      `json:"@type"`
	Name string      `json:"name"`
	Logo ImageObject `json:"logo"`
}

type ImageObject struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

// Generator builds metadata for the configured site.
type Generator struct {
	site config.Site
}

func New(site config.Site) *Generator {
	site.URL = strings.TrimRight(site.URL, "/")
	return &Generator{site: site}
}

// GenerateMetadata never fails; missing fields are left empty or omitted.
// SuggestedSlug is only set for articles without a slug.
func (g *Generator) GenerateMetadata(a article.Article) ArticleMetadata {
	source := a.Description
	if source == "" {
		source = a.Content
	}

	meta := ArticleMetadata{
		MetaTitle:       g.MetaTitle(a.Title),
		MetaDescription: MetaDescription(source),
		OGImage:         a.CoverImage,
		Schema:          g.Schema(a),
		CanonicalURL:    g.CanonicalURL(a.Slug),
		ReadingTime:     ReadingTime(a.Content),
		Excerpt:         Excerpt(a.Content, maxExcerptLength),
	}
	if a.Slug == "" {
		meta.SuggestedSlug = Slug(a.Title, a.ID)
	}
	return meta
}

// MetaTitle fits a title into the 30-60 character window: long titles are
// cut to 57 characters plus "...", short ones get the site name appended.
func (g *Generator) MetaTitle(title string) string {
	length := textmetrics.RuneLen(title)

	switch {
	case length > maxTitleLength:
		return textmetrics.Truncate(title, maxTitleLength-len(ellipsis)) + ellipsis
	case length < minTitleLength:
		return title + " | " + g.site.Name
	default:
		return title
	}
}

// MetaDescription strips Markdown and HTML from text and caps it at 160
// characters.
func MetaDescription(text string) string {
	cleaned := strings.TrimSpace(htmlText(textmetrics.StripMarkdown(text)))

	if textmetrics.RuneLen(cleaned) > maxDescriptionLength {
		cleaned = textmetrics.Truncate(cleaned, maxDescriptionLength-len(ellipsis)) + ellipsis
	}
	return cleaned
}

// htmlText removes complete tags from fragment and decodes entities. A
// stray "<" that opens no complete tag is kept as text.
func htmlText(fragment string) string {
	text := tagRe.ReplaceAllString(fragment, "")
	if !strings.Contains(text, "&") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(text, "<", "&lt;")))
	if err != nil {
		return text
	}
	return doc.Text()
}

// CanonicalURL is empty when the article has no slug.
func (g *Generator) CanonicalURL(slug string) string {
	if slug == "" {
		return ""
	}
	return g.articleURL(slug)
}

func (g *Generator) articleURL(slug string) string {
	return g.site.URL + "/articles/" + slug
}

// Schema builds the JSON-LD Article object.
func (g *Generator) Schema(a article.Article) *Schema {
	author := a.Author
	if author == "" {
		author = g.site.Author
	}

	schema := &Schema{
		Context:     "https://schema.org",
		Type:        "Article",
		Headline:    a.Title,
		Description: a.Description,
		Image:       a.CoverImage,
		Author:      Person{Type: "Person", Name: author},
		Publisher: Organization{
			Type: "Organization",
			Name: g.site.Name,
			Logo: ImageObject{Type: "ImageObject", URL: g.site.URL + "/logo.png"},
		},
		DatePublished:    a.PublishDate,
		DateModified:     a.LastModified,
		MainEntityOfPage: WebPage{Type: "WebPage", ID: g.pageURL(a.Slug)},
	}

	if len(a.Keywords) > 0 {
		schema.Keywords = strings.Join(a.Keywords, ", ")
	}
	if a.Category != "" {
		schema.ArticleSection = a.Category
	}

	return schema
}

// OpenGraphTags returns the og:* and article:* meta tags.
func (g *Generator) OpenGraphTags(a article.Article) map[string]string {
	author := a.Author
	if author == "" {
		author = g.site.Author
	}

	return map[string]string{
		"og:type":                "article",
		"og:title":               a.Title,
		"og:description":         a.Description,
		"og:image":               g.imageOrDefault(a.CoverImage),
		"og:url":                 g.pageURL(a.Slug),
		"og:site_name":           g.site.Name,
		"article:published_time": a.PublishDate,
		"article:modified_time":  a.LastModified,
		"article:author":         author,
	}
}

// TwitterCardTags returns the twitter:* meta tags.
func (g *Generator) TwitterCardTags(a article.Article) map[string]string {
	return map[string]string{
		"twitter:card":        "summary_large_image",
		"twitter:title":       a.Title,
		"twitter:description": a.Description,
		"twitter:image":       g.imageOrDefault(a.CoverImage),
	}
}

func (g *Generator) imageOrDefault(image string) string {
	if image != "" {
		return image
	}
	return g.site.URL + "/og-image.png"
}

func (g *Generator) pageURL(slug string) string {
	if slug == "" {
		return g.site.URL
	}
	return g.articleURL(slug)
}
