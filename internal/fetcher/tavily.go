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

const defaultTavilyURL = "https://api.tavily.com"

// TavilyFetcher Tavily搜索获取器
type TavilyFetcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewTavilyFetcher 创建Tavily获取器
func NewTavilyFetcher(apiKey, baseURL string) *TavilyFetcher {
	if baseURL == "" {
		baseURL = defaultTavilyURL
	}
	return &TavilyFetcher{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

// Search 搜索
// Tavily本身就返回 {"results":[{title,url,content,...}]}，直接透传
func (t *TavilyFetcher) Search(ctx context.Context, query string, limit int) (ProviderResponse, error) {
	reqBody := tavilyRequest{
		APIKey:            t.apiKey,
		Query:             query,
		SearchDepth:       "basic",
		MaxResults:        limit,
		IncludeAnswer:     false,
		IncludeRawContent: false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, eris.Wrap(err, "tavily: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/search", bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, eris.Wrap(err, "tavily: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "tavily: search")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "tavily: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: "tavily", Status: resp.StatusCode, Body: string(body)}
	}

	return ProviderResponse(body), nil
}
