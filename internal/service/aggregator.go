package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"landing-gen-go/internal/fetcher"
)

const (
	// MaxContentChars 聚合内容上限（按字符计），超出部分直接截掉
	MaxContentChars = 15000
	// SearchLimit 关键词搜索返回条数
	SearchLimit = 5
	// RecordSeparator 多条结果之间的分隔
	RecordSeparator = "\n\n---\n\n"
)

var urlPattern = regexp.MustCompile(`(?i)^https?://`)

// QueryMode 查询类型
type QueryMode string

const (
	ModeURL      QueryMode = "url"
	ModeKeywords QueryMode = "keywords"
)

// Classify 判断查询是URL还是关键词
func Classify(query string) QueryMode {
	if urlPattern.MatchString(strings.TrimSpace(query)) {
		return ModeURL
	}
	return ModeKeywords
}

// Aggregator 根据查询类型调用抓取或搜索，归一化成一段文本
type Aggregator struct {
	scraper  fetcher.Scraper
	searcher fetcher.Searcher
}

// NewAggregator 创建聚合器
func NewAggregator(scraper fetcher.Scraper, searcher fetcher.Searcher) *Aggregator {
	return &Aggregator{scraper: scraper, searcher: searcher}
}

// Aggregate 抓取/搜索并返回截断后的文本
// 每次都重新调用外部服务，不做缓存
func (a *Aggregator) Aggregate(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	mode := Classify(query)

	var (
		resp fetcher.ProviderResponse
		err  error
	)
	if mode == ModeURL {
		resp, err = a.scraper.Scrape(ctx, query)
	} else {
		resp, err = a.searcher.Search(ctx, query, SearchLimit)
	}
	if err != nil {
		status, body := providerStatus(err)
		return "", &AggregationError{Status: status, Body: body, Err: err}
	}

	text := Truncate(Normalize(resp), MaxContentChars)
	zap.L().Debug("content aggregated",
		zap.String("mode", string(mode)),
		zap.Int("chars", len([]rune(text))),
	)
	return text, nil
}

// Normalize 把不同形状的provider响应变成一段文本，不认识的形状原样返回
func Normalize(resp fetcher.ProviderResponse) string {
	var v interface{}
	if err := json.Unmarshal(resp, &v); err != nil {
		return string(resp)
	}

	// 顶层直接是数组也当作结果列表
	if records, ok := v.([]interface{}); ok {
		return joinRecords(records)
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return string(resp)
	}

	if records, ok := obj["results"].([]interface{}); ok {
		return joinRecords(records)
	}

	if content, ok := obj["content"].(string); ok {
		return content
	}

	return string(resp)
}

func joinRecords(records []interface{}) string {
	parts := make([]string, 0, len(records))
	for _, r := range records {
		rec, _ := r.(map[string]interface{})
		title, _ := rec["title"].(string)
		content, _ := rec["content"].(string)
		parts = append(parts, title+"\n"+content)
	}
	return strings.Join(parts, RecordSeparator)
}

// Truncate 按rune截断到max个字符
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
