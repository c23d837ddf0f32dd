package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/seo-optimizer/articleseo/analyzer"
	"github.com/seo-optimizer/articleseo/article"
	"github.com/seo-optimizer/articleseo/checker"
	"github.com/seo-optimizer/articleseo/middleware"
	"github.com/seo-optimizer/articleseo/sitemap"
	"github.com/seo-optimizer/articleseo/stats"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
	popularPathsShown   = 5
)

type analyzeRequest struct {
	Content  string   `json:"content" binding:"required"`
	Keywords []string `json:"keywords"`
	Title    string   `json:"title"`
}

type checklistRequest struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	MetaTitle       string `json:"metaTitle"`
	MetaDescription string `json:"metaDescription"`
	FocusKeyword    string `json:"focusKeyword"`
}

type sitemapRequest struct {
	Articles []struct {
		Slug         string `json:"slug" binding:"required"`
		LastModified string `json:"lastModified"`
	} `json:"articles" binding:"dive"`
	IncludeStatic bool `json:"includeStatic"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

func (h *handler) count(d stats.Delta) {
	if h.Stats != nil {
		h.Stats.Increment(d)
	}
}

func (h *handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	score := h.Analyzer.AnalyzeArticle(req.Content, req.Keywords, req.Title)
	h.count(stats.Delta{Analyses: 1})

	c.JSON(http.StatusOK, gin.H{
		"score":       score,
		"suggestions": analyzer.GenerateSuggestions(score),
	})
}

func (h *handler) checklist(c *gin.Context) {
	var req checklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	list := h.Checker.CheckArticle(req.Title, req.Content, req.MetaTitle, req.MetaDescription, req.FocusKeyword)
	h.count(stats.Delta{Checklists: 1})

	c.JSON(http.StatusOK, gin.H{
		"checklist": list,
		"passRate":  checker.CalculatePassRate(list),
	})
}

func (h *handler) metadata(c *gin.Context) {
	var art article.Article
	if err := c.ShouldBindJSON(&art); err != nil {
		badRequest(c, err)
		return
	}

	meta := h.Metadata.GenerateMetadata(art)
	h.count(stats.Delta{Metadata: 1})

	c.JSON(http.StatusOK, gin.H{
		"metadata":  meta,
		"openGraph": h.Metadata.OpenGraphTags(art),
		"twitter":   h.Metadata.TwitterCardTags(art),
	})
}

func (h *handler) audit(c *gin.Context) {
	var art article.Article
	if err := c.ShouldBindJSON(&art); err != nil {
		badRequest(c, err)
		return
	}

	report, err := h.Auditor.Audit(c.Request.Context(), art)
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString(middleware.RequestIDKey)).Msg("audit failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to audit article: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *handler) sitemap(c *gin.Context) {
	var req sitemapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var entries []sitemap.Entry
	if req.IncludeStatic {
		entries = h.Sitemap.StaticEntries(time.Now())
	}
	for _, a := range req.Articles {
		entries = append(entries, h.Sitemap.EntryForArticle(a.Slug, a.LastModified))
	}

	body, err := h.Sitemap.Sitemap(entries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}

func (h *handler) robots(c *gin.Context) {
	c.String(http.StatusOK, h.Sitemap.RobotsTxt(""))
}

func (h *handler) statistics(c *gin.Context) {
	resp := gin.H{}
	if h.Stats != nil {
		resp["month"] = h.Stats.GetCurrentStats()
		resp["months"] = h.Stats.GetAllMonths()
	}
	if h.Traffic != nil {
		resp["traffic"] = h.Traffic.Snapshot(h.DevMode, popularPathsShown)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) history(c *gin.Context) {
	if h.History == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Score history is not enabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	slug := c.Param("slug")
	entries, err := h.History.Recent(c.Request.Context(), slug, limit)
	if err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("history lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slug": slug, "entries": entries})
}
