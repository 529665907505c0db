package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

const defaultFirecrawlURL = "https://api.firecrawl.dev/v1"

// FirecrawlFetcher Firecrawl 抓取 + 搜索
type FirecrawlFetcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFirecrawlFetcher 创建Firecrawl获取器，baseURL为空时用官方地址
func NewFirecrawlFetcher(apiKey, baseURL string) *FirecrawlFetcher {
	if baseURL == "" {
		baseURL = defaultFirecrawlURL
	}
	return &FirecrawlFetcher{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type firecrawlScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	WaitFor int      `json:"waitFor,omitempty"` // 等待毫秒数，让JS渲染完成
}

type firecrawlScrapeResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Markdown string `json:"markdown"`
		Metadata struct {
			Title string `json:"title"`
		} `json:"metadata"`
	} `json:"data"`
}

type firecrawlSearchRequest struct {
	Query         string `json:"query"`
	Limit         int    `json:"limit"`
	ScrapeOptions struct {
		Formats []string `json:"formats"`
	} `json:"scrapeOptions"`
}

type firecrawlSearchResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		URL         string `json:"url"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Markdown    string `json:"markdown"`
	} `json:"data"`
}

// Scrape 抓取单个URL，返回 {"title","content"}
func (f *FirecrawlFetcher) Scrape(ctx context.Context, url string) (ProviderResponse, error) {
	body, err := f.post(ctx, "/scrape", firecrawlScrapeRequest{
		URL:     url,
		Formats: []string{"markdown"},
		WaitFor: 2000,
	})
	if err != nil {
		return nil, err
	}

	var fcResp firecrawlScrapeResponse
	if err := json.Unmarshal(body, &fcResp); err != nil || fcResp.Data.Markdown == "" {
		// 形状不认识就原样交给聚合器兜底
		return ProviderResponse(body), nil
	}

	out, err := json.Marshal(result{
		Title:   fcResp.Data.Metadata.Title,
		Content: fcResp.Data.Markdown,
		URL:     url,
	})
	if err != nil {
		return nil, eris.Wrap(err, "firecrawl: marshal scrape result")
	}
	return ProviderResponse(out), nil
}

// Search 关键词搜索，返回 {"results":[...]}
func (f *FirecrawlFetcher) Search(ctx context.Context, query string, limit int) (ProviderResponse, error) {
	reqBody := firecrawlSearchRequest{Query: query, Limit: limit}
	reqBody.ScrapeOptions.Formats = []string{"markdown"}

	body, err := f.post(ctx, "/search", reqBody)
	if err != nil {
		return nil, err
	}

	var fcResp firecrawlSearchResponse
	if err := json.Unmarshal(body, &fcResp); err != nil || fcResp.Data == nil {
		return ProviderResponse(body), nil
	}

	results := make([]result, 0, len(fcResp.Data))
	for _, d := range fcResp.Data {
		content := d.Markdown
		if content == "" {
			content = d.Description
		}
		results = append(results, result{Title: d.Title, Content: content, URL: d.URL})
	}

	out, err := json.Marshal(map[string]interface{}{"results": results})
	if err != nil {
		return nil, eris.Wrap(err, "firecrawl: marshal search results")
	}
	return ProviderResponse(out), nil
}

func (f *FirecrawlFetcher) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, eris.Wrap(err, "firecrawl: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, eris.Wrap(err, "firecrawl: create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "firecrawl: POST %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "firecrawl: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Provider: "firecrawl", Status: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}
