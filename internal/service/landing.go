package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"landing-gen-go/internal/fetcher"
	"landing-gen-go/internal/model"
)

// Progress 进度回调，SSE writer实现它让前端看到在干嘛
type Progress interface {
	SetAction(progress int, action string) error
}

type nopProgress struct{}

func (nopProgress) SetAction(int, string) error { return nil }

// LandingService 落地页生成：聚合 -> 组装prompt -> 生成 -> 补全
// 没有共享可变状态，可以并发调用
type LandingService struct {
	aggregator     *Aggregator
	generator      *Generator
	includeContent bool
}

// NewLandingService 创建服务
func NewLandingService(scraper fetcher.Scraper, searcher fetcher.Searcher, llm fetcher.LLMClient, includeContent bool) *LandingService {
	return &LandingService{
		aggregator:     NewAggregator(scraper, searcher),
		generator:      NewGenerator(llm),
		includeContent: includeContent,
	}
}

// Generate 生成一页，步骤严格串行
// role为空时默认agent；p可以为nil
func (s *LandingService) Generate(ctx context.Context, q, role string, p Progress) (*model.GenerationResult, error) {
	if p == nil {
		p = nopProgress{}
	}

	query := strings.TrimSpace(q)
	if query == "" {
		return nil, &InputError{Msg: "q is required"}
	}
	r, err := model.ParseRole(role)
	if err != nil {
		return nil, &InputError{Msg: err.Error()}
	}

	log := zap.L().With(
		zap.String("run_id", uuid.NewString()),
		zap.String("query", query),
		zap.String("role", string(r)),
	)
	log.Info("landing generation started", zap.String("mode", string(Classify(query))))

	// 进度推送失败（客户端断开等）不影响生成，只记日志
	report := func(progress int, action string) {
		if err := p.SetAction(progress, action); err != nil {
			log.Debug("progress update failed", zap.Int("progress", progress), zap.Error(err))
		}
	}

	// 1. 聚合内容
	if Classify(query) == ModeURL {
		report(10, "Scraping "+query+"...")
	} else {
		report(10, "Searching the web...")
	}
	content, err := s.aggregator.Aggregate(ctx, query)
	if err != nil {
		log.Error("aggregation failed", zap.Error(err))
		return nil, err
	}

	// 2. 组装prompt
	report(40, "Composing prompt...")
	prompt := Compose(r, query, content)

	// 3. 调用LLM
	report(50, "Generating page...")
	raw, err := s.generator.Generate(ctx, prompt.System, prompt.User)
	if err != nil {
		log.Error("generation failed", zap.Error(err))
		return nil, err
	}

	// 4. 补全缺失字段
	report(90, "Finalizing page...")
	page := model.ToPage(raw)

	log.Info("landing generation completed",
		zap.Int("content_chars", len([]rune(content))),
		zap.Int("sections", len(page.Sections)),
	)

	result := &model.GenerationResult{
		Page: page,
		Q:    query,
		Role: r,
	}
	if s.includeContent {
		result.Content = content
	}
	return result, nil
}
