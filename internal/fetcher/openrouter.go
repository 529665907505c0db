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

const defaultOpenRouterURL = "https://openrouter.ai/api/v1"

// OpenRouterClient OpenRouter LLM客户端
type OpenRouterClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	model      string
}

// NewOpenRouterClient 创建OpenRouter客户端
func NewOpenRouterClient(apiKey, model, baseURL string) *OpenRouterClient {
	if model == "" {
		model = "google/gemini-3-flash-preview"
	}
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}
	return &OpenRouterClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		model: model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete 发送system+user，返回第一条回复文本
func (o *OpenRouterClient) Complete(ctx context.Context, cr CompletionRequest) (string, error) {
	reqBody := chatRequest{
		Model: o.model,
		Messages: []chatMessage{
			{Role: "system", Content: cr.System},
			{Role: "user", Content: cr.User},
		},
		Temperature: cr.Temperature,
	}
	if cr.JSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", eris.Wrap(err, "openrouter: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", eris.Wrap(err, "openrouter: create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("X-Title", "Landing Page Generator")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "openrouter: call API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &StatusError{Provider: "openrouter", Status: resp.StatusCode, Body: string(body)}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", eris.Wrap(err, "openrouter: decode response")
	}

	if len(chatResp.Choices) == 0 {
		return "", eris.New("openrouter: no response from LLM")
	}

	return chatResp.Choices[0].Message.Content, nil
}
