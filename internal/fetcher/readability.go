package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/rotisserie/eris"
)

// 直连抓取时最多读取的HTML字节数
const maxReadabilityBody = 5 << 20

// ReadabilityFetcher 不经过第三方服务，直接GET页面并用readability提取正文
// 没配置Firecrawl key时作为抓取兜底
type ReadabilityFetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewReadabilityFetcher 创建直连抓取器
func NewReadabilityFetcher() *ReadabilityFetcher {
	return &ReadabilityFetcher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent: "Mozilla/5.0 (compatible; landing-gen/1.0)",
	}
}

// Scrape 抓取URL，返回 {"title","content"}
func (r *ReadabilityFetcher) Scrape(ctx context.Context, rawURL string) (ProviderResponse, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "readability: parse url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "readability: create request")
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "readability: fetch page")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxReadabilityBody))
	if err != nil {
		return nil, eris.Wrap(err, "readability: read page")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Provider: "readability", Status: resp.StatusCode, Body: string(body)}
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, eris.Wrap(err, "readability: extract article")
	}

	out, err := json.Marshal(result{
		Title:   strings.TrimSpace(article.Title),
		Content: strings.TrimSpace(article.TextContent),
		URL:     rawURL,
	})
	if err != nil {
		return nil, eris.Wrap(err, "readability: marshal result")
	}
	return ProviderResponse(out), nil
}
