package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Firecrawl  FirecrawlConfig  `mapstructure:"firecrawl"`
	Tavily     TavilyConfig     `mapstructure:"tavily"`
	LLM        LLMConfig        `mapstructure:"llm"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig HTTP服务配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	// IncludeContent 是否在结果里带上聚合后的原始内容（调试用）
	IncludeContent bool `mapstructure:"include_content"`
}

// FirecrawlConfig Firecrawl抓取/搜索配置
type FirecrawlConfig struct {
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
}

// TavilyConfig Tavily搜索配置
type TavilyConfig struct {
	Key     string `mapstructure:"key"`
	BaseURL string `mapstructure:"base_url"`
}

// LLMConfig 选择LLM提供方
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // openrouter | anthropic
}

// OpenRouterConfig OpenRouter配置
type OpenRouterConfig struct {
	Key     string `mapstructure:"key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// AnthropicConfig Anthropic配置
type AnthropicConfig struct {
	Key       string `mapstructure:"key"`
	Model     string `mapstructure:"model"`
	MaxTokens int64  `mapstructure:"max_tokens"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | console
}

// 兼容旧部署里不带前缀的环境变量
var envAliases = map[string]string{
	"server.port":    "PORT",
	"firecrawl.key":  "FIRECRAWL_API_KEY",
	"tavily.key":     "TAVILY_API_KEY",
	"openrouter.key": "OPENROUTER_API_KEY",
	"anthropic.key":  "ANTHROPIC_API_KEY",
}

// Load 加载配置：.env -> config.yaml -> 环境变量 -> 默认值
func Load() (*Config, error) {
	// 加载 .env 文件（如果存在）
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("LANDING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envAliases {
		if err := v.BindEnv(key, "LANDING_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", env)
		}
	}

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.include_content", false)
	v.SetDefault("firecrawl.base_url", "https://api.firecrawl.dev/v1")
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("llm.provider", "openrouter")
	v.SetDefault("openrouter.model", "google/gemini-3-flash-preview")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 8192)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// MissingKeys 返回未配置的provider key（只用于启动时告警）
func (c *Config) MissingKeys() []string {
	var missing []string
	// 没有Firecrawl时抓取会退回直连，但搜索至少需要一个key
	if c.Tavily.Key == "" && c.Firecrawl.Key == "" {
		missing = append(missing, "TAVILY_API_KEY or FIRECRAWL_API_KEY")
	}
	switch c.LLM.Provider {
	case "anthropic":
		if c.Anthropic.Key == "" {
			missing = append(missing, "ANTHROPIC_API_KEY")
		}
	default:
		if c.OpenRouter.Key == "" {
			missing = append(missing, "OPENROUTER_API_KEY")
		}
	}
	return missing
}

// InitLogger 初始化全局zap logger
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
