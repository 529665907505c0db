package fetcher

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
)

// AnthropicClient 基于官方SDK的Claude客户端
type AnthropicClient struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewAnthropicClient 创建Anthropic客户端
func NewAnthropicClient(apiKey, model string, maxTokens int64, opts ...option.RequestOption) *AnthropicClient {
	if model == "" {
		model = "claude-sonnet-4-5-20250929"
	}
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	// SDK默认会重试，这里一次失败就交给调用方
	base := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	return &AnthropicClient{
		client:    sdk.NewClient(append(base, opts...)...),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete 调用Messages API，拼接所有text块
// Claude没有json_object模式，JSON约束靠system prompt
func (a *AnthropicClient) Complete(ctx context.Context, cr CompletionRequest) (string, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(a.model),
		MaxTokens: a.maxTokens,
		System:    []sdk.TextBlockParam{{Text: cr.System}},
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(cr.User)),
		},
		Temperature: sdk.Float(cr.Temperature),
	}

	msg, err := a.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *sdk.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "anthropic", Status: apiErr.StatusCode, Body: apiErr.Error()}
		}
		return "", eris.Wrap(err, "anthropic: create message")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", eris.New("anthropic: no text in response")
	}
	return sb.String(), nil
}
