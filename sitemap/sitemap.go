// Package sitemap renders sitemap.xml and robots.txt for the blog.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/seo-optimizer/articleseo/config"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Entry is one <url> element of the sitemap.
type Entry struct {
	URL        string  `xml:"loc" json:"url"`
	LastMod    string  `xml:"lastmod" json:"lastmod"`
	ChangeFreq string  `xml:"changefreq" json:"changefreq"`
	Priority   float64 `xml:"priority" json:"priority"`
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []Entry  `xml:"url"`
}

var robotsAgents = []string{"*", "Googlebot", "Bingbot", "Yandex"}

type Generator struct {
	siteURL string
}

func New(site config.Site) *Generator {
	return &Generator{siteURL: strings.TrimRight(site.URL, "/")}
}

// Sitemap renders the entries as a sitemaps.org document.
func (g *Generator) Sitemap(entries []Entry) ([]byte, error) {
	set := urlSet{XMLNS: namespace, URLs: entries}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

// EntryForArticle builds the sitemap entry of a published article.
func (g *Generator) EntryForArticle(slug, lastModified string) Entry {
	return Entry{
		URL:        g.siteURL + "/articles/" + slug,
		LastMod:    lastModified,
		ChangeFreq: "weekly",
		Priority:   0.8,
	}
}

// StaticEntries lists the site's own pages, stamped with now.
func (g *Generator) StaticEntries(now time.Time) []Entry {
	lastMod := now.UTC().Format(time.RFC3339)
	return []Entry{
		{URL: g.siteURL, LastMod: lastMod, ChangeFreq: "daily", Priority: 1},
		{URL: g.siteURL + "/generate", LastMod: lastMod, ChangeFreq: "monthly", Priority: 0.9},
		{URL: g.siteURL + "/articles", LastMod: lastMod, ChangeFreq: "daily", Priority: 0.9},
	}
}

// RobotsTxt allows every crawler and points at the sitemap, which defaults
// to {siteURL}/sitemap.xml.
func (g *Generator) RobotsTxt(sitemapURL string) string {
	if sitemapURL == "" {
		sitemapURL = g.siteURL + "/sitemap.xml"
	}

	var b strings.Builder
	for _, agent := range robotsAgents {
		fmt.Fprintf(&b, "User-agent: %s\nAllow: /\n\n", agent)
	}
	fmt.Fprintf(&b, "Sitemap: %s\n", sitemapURL)
	return b.String()
}
