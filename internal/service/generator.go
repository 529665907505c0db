package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"landing-gen-go/internal/fetcher"
)

// Temperature 偏确定性但不为0
const Temperature = 0.3

var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json)?\\s*\\n?(.*?)\\n?```\\s*$")

// Generator 调用LLM并把输出解析成任意结构
type Generator struct {
	llm fetcher.LLMClient
}

// NewGenerator 创建生成器
func NewGenerator(llm fetcher.LLMClient) *Generator {
	return &Generator{llm: llm}
}

// Generate 返回json.Unmarshal后的原始结构，字段补全交给model.ToPage
func (g *Generator) Generate(ctx context.Context, system, user string) (interface{}, error) {
	text, err := g.llm.Complete(ctx, fetcher.CompletionRequest{
		System:      system,
		User:        user,
		Temperature: Temperature,
		JSON:        true,
	})
	if err != nil {
		status, body := providerStatus(err)
		return nil, &GenerationRequestError{Status: status, Body: body, Err: err}
	}

	var raw interface{}
	if err := json.Unmarshal([]byte(extractJSON(text)), &raw); err != nil {
		return nil, &GenerationParseError{Raw: text, Err: err}
	}
	return raw, nil
}

// extractJSON 从LLM响应中提取JSON（处理markdown代码块）
// 本身合法就原样返回，字符串值里的```不受影响
func extractJSON(response string) string {
	trimmed := strings.TrimSpace(response)
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}

	// 整个响应被 ```json ... ``` 包住
	if matches := fencePattern.FindStringSubmatch(trimmed); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	// 前后有多余文字时，取最外层 { } 包围的内容
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start != -1 && end > start {
		return trimmed[start : end+1]
	}

	return trimmed
}
