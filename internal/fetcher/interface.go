package fetcher

import (
	"context"
	"fmt"
)

// ProviderResponse 抓取/搜索服务返回的原始JSON，形状不固定：
// {"results":[{title,content}...]} / {"content":"..."} / 其他任意结构
type ProviderResponse []byte

// Scraper 按URL抓取页面内容 (Firecrawl / 直连)
type Scraper interface {
	Scrape(ctx context.Context, url string) (ProviderResponse, error)
}

// Searcher 关键词搜索 (Tavily / Firecrawl)
type Searcher interface {
	Search(ctx context.Context, query string, limit int) (ProviderResponse, error)
}

// CompletionRequest 一次LLM调用
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	JSON        bool // 要求返回可解析的JSON
}

// LLMClient LLM客户端 (OpenRouter / Anthropic)
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// StatusError 外部服务返回非2xx
type StatusError struct {
	Provider string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.Status, e.Body)
}

// result 归一化后的单条结果，序列化成 {"results":[...]} 交给聚合器
type result struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}
