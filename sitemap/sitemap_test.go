package sitemap

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/articleseo/config"
)

func TestSitemap(t *testing.T) {
	g := New(config.Site{URL: "https://blog.example.com/"})
	entries := []Entry{
		g.EntryForArticle("go-interfaces", "2024-05-01"),
		g.EntryForArticle("a&b", "2024-05-02"),
	}

	out, err := g.Sitemap(entries)
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, doc, "<loc>https://blog.example.com/articles/go-interfaces</loc>")
	assert.Contains(t, doc, "<loc>https://blog.example.com/articles/a&amp;b</loc>")
	assert.Contains(t, doc, "<changefreq>weekly</changefreq>")
	assert.Contains(t, doc, "<priority>0.8</priority>")

	var decoded urlSet
	require.NoError(t, xml.Unmarshal(out, &decoded))
	assert.Len(t, decoded.URLs, 2)
}

func TestRobotsTxt(t *testing.T) {
	g := New(config.Site{URL: "https://blog.example.com"})

	robots := g.RobotsTxt("")
	assert.Contains(t, robots, "User-agent: *\nAllow: /\n")
	assert.Contains(t, robots, "User-agent: Googlebot\nAllow: /\n")
	assert.True(t, strings.HasSuffix(robots, "Sitemap: https://blog.example.com/sitemap.xml\n"))

	custom := g.RobotsTxt("https://cdn.example.com/sitemap.xml")
	assert.Contains(t, custom, "Sitemap: https://cdn.example.com/sitemap.xml")
}

func TestStaticEntries(t *testing.T) {
	g := New(config.Site{URL: "https://blog.example.com"})
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	entries := g.StaticEntries(now)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{
		URL:        "https://blog.example.com",
		LastMod:    "2026-02-03T04:05:06Z",
		ChangeFreq: "daily",
		Priority:   1,
	}, entries[0])
	assert.Equal(t, "https://blog.example.com/generate", entries[1].URL)
	assert.Equal(t, "monthly", entries[1].ChangeFreq)
	assert.Equal(t, 0.9, entries[2].Priority)
}
