// Package audit evaluates one article with every scoring component and
// combines the results into a single report.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/seo-optimizer/articleseo/analyzer"
	"github.com/seo-optimizer/articleseo/article"
	"github.com/seo-optimizer/articleseo/cache"
	"github.com/seo-optimizer/articleseo/checker"
	"github.com/seo-optimizer/articleseo/history"
	"github.com/seo-optimizer/articleseo/metadata"
	"github.com/seo-optimizer/articleseo/metrics"
	"github.com/seo-optimizer/articleseo/stats"
)

// Report is the combined output of one audit. Score is nil when the
// article has no content or no keywords.
type Report struct {
	Score       *analyzer.SEOScore       `json:"score"`
	Suggestions []string                 `json:"suggestions"`
	Checklist   checker.Checklist        `json:"checklist"`
	PassRate    int                      `json:"passRate"`
	Metadata    metadata.ArticleMetadata `json:"metadata"`
	Cached      bool                     `json:"cached"`
}

// Counter receives usage counters; *stats.Storage implements it.
type Counter interface {
	Increment(d stats.Delta)
}

// Options wires the optional collaborators. Nil fields are disabled.
type Options struct {
	Cache    cache.Cache
	CacheTTL time.Duration
	Stats    Counter
	Metrics  *metrics.Metrics
	History  history.Recorder
}

type Auditor struct {
	analyzer  *analyzer.Analyzer
	checker   *checker.Checker
	generator *metadata.Generator
	opts      Options
}

func New(a *analyzer.Analyzer, c *checker.Checker, g *metadata.Generator, opts Options) *Auditor {
	if opts.Cache == nil {
		opts.Cache = cache.Nop{}
	}
	return &Auditor{analyzer: a, checker: c, generator: g, opts: opts}
}

// Audit scores, checks and builds metadata for art. Identical articles are
// answered from the cache.
func (au *Auditor) Audit(ctx context.Context, art article.Article) (*Report, error) {
	key, err := cache.Key(art)
	if err != nil {
		au.fail()
		return nil, fmt.Errorf("hash article: %w", err)
	}

	if report, ok := au.cached(ctx, key); ok {
		au.count(stats.Delta{Audits: 1, CacheHits: 1})
		au.observe(metrics.ResultCached, nil)
		return report, nil
	}

	start := time.Now()
	report, err := au.evaluate(ctx, art)
	if err != nil {
		au.fail()
		return nil, err
	}

	delta := stats.Delta{Audits: 1, CacheMisses: 1, Checklists: 1, Metadata: 1}
	if report.Score != nil {
		delta.Analyses = 1
	}
	au.count(delta)
	au.observe(metrics.ResultFresh, report.Score)
	if au.opts.Metrics != nil {
		au.opts.Metrics.AuditDuration.Observe(time.Since(start).Seconds())
	}

	au.store(ctx, key, report)
	au.record(ctx, art, key, report)

	return report, nil
}

func (au *Auditor) evaluate(ctx context.Context, art article.Article) (*Report, error) {
	report := &Report{Suggestions: []string{}}
	g, ctx := errgroup.WithContext(ctx)

	if art.Content != "" && len(art.Keywords) > 0 {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			score := au.analyzer.AnalyzeArticle(art.Content, art.Keywords, art.Title)
			report.Score = &score
			report.Suggestions = analyzer.GenerateSuggestions(score)
			return nil
		})
	}

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Checklist = au.checker.CheckArticle(
			art.Title,
			art.Content,
			art.Metadata.MetaTitle,
			art.Metadata.MetaDescription,
			art.FocusKeyword,
		)
		report.PassRate = checker.CalculatePassRate(report.Checklist)
		return nil
	})

	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Metadata = au.generator.GenerateMetadata(art)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("audit %q: %w", art.Slug, err)
	}
	return report, nil
}

func (au *Auditor) cached(ctx context.Context, key string) (*Report, bool) {
	data, err := au.opts.Cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn().Err(err).Str("key", key).Msg("report cache unavailable")
		}
		return nil, false
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached report")
		return nil, false
	}
	report.Cached = true
	return &report, true
}

func (au *Auditor) store(ctx context.Context, key string, report *Report) {
	data, err := json.Marshal(report)
	if err != nil {
		log.Warn().Err(err).Msg("failed to encode report for cache")
		return
	}
	if err := au.opts.Cache.Set(ctx, key, data, au.opts.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache report")
	}
}

func (au *Auditor) record(ctx context.Context, art article.Article, key string, report *Report) {
	if au.opts.History == nil || art.Slug == "" {
		return
	}

	entry := history.Entry{
		Slug:        art.Slug,
		Title:       art.Title,
		ContentHash: key,
		PassRate:    report.PassRate,
		RecordedAt:  time.Now().UTC(),
	}
	if s := report.Score; s != nil {
		entry.HasScore = true
		entry.Overall = s.Overall
		entry.KeywordOptimization = s.KeywordOptimization
		entry.ContentQuality = s.ContentQuality
		entry.TechnicalSEO = s.TechnicalSEO
		entry.UserExperience = s.UserExperience
	}

	if err := au.opts.History.Record(ctx, entry); err != nil {
		log.Error().Err(err).Str("slug", art.Slug).Msg("failed to record score history")
	}
}

func (au *Auditor) count(d stats.Delta) {
	if au.opts.Stats != nil {
		au.opts.Stats.Increment(d)
	}
}

func (au *Auditor) observe(result string, score *analyzer.SEOScore) {
	if au.opts.Metrics == nil {
		return
	}
	au.opts.Metrics.AuditsTotal.WithLabelValues(result).Inc()
	if score != nil {
		au.opts.Metrics.OverallScore.Observe(score.Overall)
	}
}

func (au *Auditor) fail() {
	au.count(stats.Delta{Errors: 1})
	au.observe(metrics.ResultError, nil)
}
