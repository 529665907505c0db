package service

import (
	"errors"
	"fmt"

	"landing-gen-go/internal/fetcher"
)

// InputError 请求参数错误（q为空、role不认识），对应4xx
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return e.Msg }

// AggregationError 抓取/搜索服务调用失败
type AggregationError struct {
	Status int    // 0 表示传输层失败，没有HTTP状态
	Body   string // provider返回的原文
	Err    error
}

func (e *AggregationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("content aggregation failed: provider returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("content aggregation failed: %v", e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// GenerationRequestError LLM服务调用失败
type GenerationRequestError struct {
	Status int
	Body   string
	Err    error
}

func (e *GenerationRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("generation request failed: provider returned status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("generation request failed: %v", e.Err)
}

func (e *GenerationRequestError) Unwrap() error { return e.Err }

// GenerationParseError LLM返回的内容不是合法JSON
type GenerationParseError struct {
	Raw string // LLM原始输出
	Err error
}

func (e *GenerationParseError) Error() string {
	return fmt.Sprintf("failed to parse generated page: %v", e.Err)
}

func (e *GenerationParseError) Unwrap() error { return e.Err }

// providerStatus 从provider错误里取出状态码和body
func providerStatus(err error) (int, string) {
	var se *fetcher.StatusError
	if errors.As(err, &se) {
		return se.Status, se.Body
	}
	return 0, ""
}
