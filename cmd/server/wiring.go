package main

import (
	"go.uber.org/zap"

	"landing-gen-go/config"
	"landing-gen-go/internal/fetcher"
	"landing-gen-go/internal/service"
)

// newScraper 有Firecrawl key用Firecrawl，否则直连+readability
func newScraper(c *config.Config) fetcher.Scraper {
	if c.Firecrawl.Key != "" {
		return fetcher.NewFirecrawlFetcher(c.Firecrawl.Key, c.Firecrawl.BaseURL)
	}
	zap.L().Info("FIRECRAWL_API_KEY not configured, scraping pages directly")
	return fetcher.NewReadabilityFetcher()
}

// newSearcher 优先Tavily，其次Firecrawl search
func newSearcher(c *config.Config) fetcher.Searcher {
	if c.Tavily.Key != "" || c.Firecrawl.Key == "" {
		return fetcher.NewTavilyFetcher(c.Tavily.Key, c.Tavily.BaseURL)
	}
	return fetcher.NewFirecrawlFetcher(c.Firecrawl.Key, c.Firecrawl.BaseURL)
}

func newLLM(c *config.Config) fetcher.LLMClient {
	if c.LLM.Provider == "anthropic" {
		return fetcher.NewAnthropicClient(c.Anthropic.Key, c.Anthropic.Model, c.Anthropic.MaxTokens)
	}
	return fetcher.NewOpenRouterClient(c.OpenRouter.Key, c.OpenRouter.Model, c.OpenRouter.BaseURL)
}

func newLandingService(c *config.Config) *service.LandingService {
	return service.NewLandingService(newScraper(c), newSearcher(c), newLLM(c), c.Server.IncludeContent)
}
