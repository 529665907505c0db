package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.False(t, cfg.Server.IncludeContent)
	assert.Equal(t, "https://api.firecrawl.dev/v1", cfg.Firecrawl.BaseURL)
	assert.Equal(t, "https://api.tavily.com", cfg.Tavily.BaseURL)
	assert.Equal(t, "openrouter", cfg.LLM.Provider)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.Equal(t, int64(8192), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
server:
  port: "9090"
  include_content: true
llm:
  provider: anthropic
anthropic:
  model: claude-haiku-4-5-20251001
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Server.IncludeContent)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadLegacyEnvAliases(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "7000")
	t.Setenv("TAVILY_API_KEY", "tv-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "tv-key", cfg.Tavily.Key)
	assert.Equal(t, "or-key", cfg.OpenRouter.Key)
}

func TestLoadPrefixedEnvWins(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LANDING_FIRECRAWL_KEY", "fc-prefixed")
	t.Setenv("FIRECRAWL_API_KEY", "fc-legacy")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "fc-prefixed", cfg.Firecrawl.Key)
}

func TestMissingKeys(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []string
	}{
		{
			name: "all configured",
			cfg: Config{
				Tavily:     TavilyConfig{Key: "t"},
				LLM:        LLMConfig{Provider: "openrouter"},
				OpenRouter: OpenRouterConfig{Key: "o"},
			},
			want: nil,
		},
		{
			name: "firecrawl covers search",
			cfg: Config{
				Firecrawl:  FirecrawlConfig{Key: "f"},
				OpenRouter: OpenRouterConfig{Key: "o"},
			},
			want: nil,
		},
		{
			name: "anthropic without key",
			cfg: Config{
				Tavily: TavilyConfig{Key: "t"},
				LLM:    LLMConfig{Provider: "anthropic"},
			},
			want: []string{"ANTHROPIC_API_KEY"},
		},
		{
			name: "nothing configured",
			cfg:  Config{},
			want: []string{"TAVILY_API_KEY or FIRECRAWL_API_KEY", "OPENROUTER_API_KEY"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.MissingKeys())
		})
	}
}

func TestInitLogger(t *testing.T) {
	orig := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(orig) })

	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "loud"}))
}
