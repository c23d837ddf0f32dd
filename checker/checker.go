// Package checker implements the live-editing SEO checklist.
//
// Its thresholds are kept separate from the analyzer's on purpose: the
// checklist is an editor aid with its own fixed bands and must not shift
// when the analyzer configuration changes.
package checker

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/seo-optimizer/articleseo/textmetrics"
)

const (
	minTitleLength       = 30
	maxTitleLength       = 60
	minDescriptionLength = 120
	maxDescriptionLength = 160
	minKeywordDensity    = 0.5
	maxKeywordDensity    = 2.5
	minInternalLinks     = 2
	minContentWords      = 300
	optimalContentWords  = 1500
)

var (
	anyLinkRe      = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	externalLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)]+)\)`)
)

// Checker runs the ten checklist checks. The zero value is ready to use.
type Checker struct{}

func New() *Checker {
	return &Checker{}
}

// CheckArticle runs every check. metaTitle falls back to title when empty.
func (c *Checker) CheckArticle(title, content, metaTitle, metaDescription, focusKeyword string) Checklist {
	seoTitle := metaTitle
	if seoTitle == "" {
		seoTitle = title
	}

	return Checklist{
		H1Unique:             checkH1Unique(content),
		TitleLength:          checkTitleLength(seoTitle),
		DescriptionLength:    checkDescriptionLength(metaDescription),
		KeywordInTitle:       checkKeywordInTitle(seoTitle, focusKeyword),
		KeywordInDescription: checkKeywordInDescription(metaDescription, focusKeyword),
		KeywordDensity:       checkKeywordDensity(content, focusKeyword),
		ImageAltTags:         checkImageAltTags(content),
		InternalLinks:        checkInternalLinks(content),
		ExternalLinks:        checkExternalLinks(content),
		ContentLength:        checkContentLength(content),
	}
}

// CalculatePassRate is the percentage of passing items; warnings count as
// not passing.
func CalculatePassRate(checklist Checklist) int {
	items := checklist.Items()
	pass := 0
	for _, item := range items {
		if item.Status == StatusPass {
			pass++
		}
	}
	return int(math.Round(float64(pass) / float64(len(items)) * 100))
}

func checkH1Unique(content string) Item {
	count := textmetrics.CountH1(content)

	switch {
	case count == 0:
		return Item{ID: "h1-unique", Label: "H1标签存在", Status: StatusFail, Message: "文章缺少H1标题"}
	case count == 1:
		return Item{ID: "h1-unique", Label: "H1标签唯一", Status: StatusPass, Message: "H1标签正确"}
	default:
		return Item{
			ID:      "h1-unique",
			Label:   "H1标签唯一",
			Status:  StatusFail,
			Message: fmt.Sprintf("检测到%d个H1标签，应该只有1个", count),
		}
	}
}

func checkTitleLength(title string) Item {
	item := Item{ID: "title-length", Label: "SEO标题长度"}
	length := textmetrics.RuneLen(title)

	switch {
	case length == 0:
		item.Status, item.Message = StatusFail, "SEO标题不能为空"
	case length >= minTitleLength && length <= maxTitleLength:
		item.Status, item.Message = StatusPass, fmt.Sprintf("标题长度%d字符（理想：30-60）", length)
	case length < minTitleLength:
		item.Status, item.Message = StatusWarning, fmt.Sprintf("标题过短（%d字符），建议30-60字符", length)
	default:
		item.Status, item.Message = StatusWarning, fmt.Sprintf("标题过长（%d字符），可能被截断", length)
	}
	return item
}

func checkDescriptionLength(description string) Item {
	item := Item{ID: "description-length", Label: "元描述长度"}
	length := textmetrics.RuneLen(description)

	switch {
	case length == 0:
		item.Status, item.Message = StatusFail, "缺少元描述"
	case length >= minDescriptionLength && length <= maxDescriptionLength:
		item.Status, item.Message = StatusPass, fmt.Sprintf("描述长度%d字符（理想：120-160）", length)
	case length < minDescriptionLength:
		item.Status, item.Message = StatusWarning, fmt.Sprintf("描述过短（%d字符），建议120-160字符", length)
	default:
		item.Status, item.Message = StatusWarning, fmt.Sprintf("描述过长（%d字符），可能被截断", length)
	}
	return item
}

func checkKeywordInTitle(title, focusKeyword string) Item {
	item := Item{ID: "keyword-in-title", Label: "关键词在标题中"}

	switch {
	case focusKeyword == "":
		item.Status, item.Message = StatusWarning, "未设置焦点关键词"
	case textmetrics.ContainsFold(title, focusKeyword):
		item.Status, item.Message = StatusPass, fmt.Sprintf("焦点关键词\"%s\"出现在标题中", focusKeyword)
	default:
		item.Status, item.Message = StatusFail, fmt.Sprintf("焦点关键词\"%s\"未出现在标题中", focusKeyword)
	}
	return item
}

// checkKeywordInDescription only warns on a miss, unlike the title check.
func checkKeywordInDescription(description, focusKeyword string) Item {
	item := Item{ID: "keyword-in-description", Label: "关键词在描述中"}

	switch {
	case focusKeyword == "":
		item.Status, item.Message = StatusWarning, "未设置焦点关键词"
	case textmetrics.ContainsFold(description, focusKeyword):
		item.Status, item.Message = StatusPass, fmt.Sprintf("焦点关键词\"%s\"出现在描述中", focusKeyword)
	default:
		item.Status, item.Message = StatusWarning, fmt.Sprintf("建议在描述中包含\"%s\"", focusKeyword)
	}
	return item
}

func checkKeywordDensity(content, focusKeyword string) Item {
	item := Item{ID: "keyword-density", Label: "关键词密度"}

	if focusKeyword == "" {
		item.Status, item.Message = StatusWarning, "未设置焦点关键词"
		return item
	}

	wordCount := textmetrics.WordCount(content)
	if wordCount == 0 {
		item.Status, item.Message = StatusWarning, "内容为空"
		return item
	}

	density := float64(textmetrics.CountOccurrences(content, focusKeyword)) / float64(wordCount) * 100

	switch {
	case density >= minKeywordDensity && density <= maxKeywordDensity:
		item.Status, item.Message = StatusPass, fmt.Sprintf("关键词密度%.2f%%（理想：0.5%%-2.5%%）", density)
	case density < minKeywordDensity:
		item.Status, item.Message = StatusWarning, fmt.Sprintf("关键词密度过低（%.2f%%），建议增加关键词使用", density)
	default:
		item.Status, item.Message = StatusFail, fmt.Sprintf("关键词密度过高（%.2f%%），可能被视为关键词堆砌", density)
	}
	return item
}

func checkImageAltTags(content string) Item {
	item := Item{ID: "image-alt-tags", Label: "图片Alt标签"}
	images := textmetrics.Images(content)

	if len(images) == 0 {
		item.Status, item.Message = StatusWarning, "文章中没有图片"
		return item
	}

	missing := 0
	for _, img := range images {
		if strings.TrimSpace(img.Alt) == "" {
			missing++
		}
	}

	if missing == 0 {
		item.Status, item.Message = StatusPass, fmt.Sprintf("所有%d张图片都有Alt标签", len(images))
	} else {
		item.Status, item.Message = StatusFail, fmt.Sprintf("%d/%d张图片缺少Alt标签", missing, len(images))
	}
	return item
}

func checkInternalLinks(content string) Item {
	item := Item{ID: "internal-links", Label: "内部链接"}

	internal := 0
	for _, m := range anyLinkRe.FindAllStringSubmatch(content, -1) {
		url := m[2]
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			internal++
		}
	}

	switch {
	case internal >= minInternalLinks:
		item.Status, item.Message = StatusPass, fmt.Sprintf("包含%d个内部链接", internal)
	case internal == 1:
		item.Status, item.Message = StatusWarning, "建议添加更多内部链接（至少2个）"
	default:
		item.Status, item.Message = StatusFail, "缺少内部链接"
	}
	return item
}

func checkExternalLinks(content string) Item {
	item := Item{ID: "external-links", Label: "外部链接"}
	external := len(externalLinkRe.FindAllStringIndex(content, -1))

	if external >= 1 {
		item.Status, item.Message = StatusPass, fmt.Sprintf("包含%d个外部链接", external)
	} else {
		item.Status, item.Message = StatusWarning, "建议添加至少1个权威外部链接"
	}
	return item
}

func checkContentLength(content string) Item {
	item := Item{ID: "content-length", Label: "内容长度"}
	words := textmetrics.WordCount(textmetrics.StripMarkdown(content))

	switch {
	case words >= optimalContentWords:
		item.Status, item.Message = StatusPass, fmt.Sprintf("文章长度%d字（理想：1500+）", words)
	case words >= minContentWords:
		item.Status, item.Message = StatusWarning, fmt.Sprintf("文章长度%d字，建议至少1500字", words)
	default:
		item.Status, item.Message = StatusFail, fmt.Sprintf("文章过短（%d字），建议至少300字", words)
	}
	return item
}
