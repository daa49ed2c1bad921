package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Provider names accepted by research.provider and reconcile.provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderPerplexity = "perplexity"
	ProviderGemini     = "gemini"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Perplexity PerplexityConfig `yaml:"perplexity" mapstructure:"perplexity"`
	Gemini     GeminiConfig     `yaml:"gemini" mapstructure:"gemini"`
	Tavily     TavilyConfig     `yaml:"tavily" mapstructure:"tavily"`
	SerpAPI    SerpAPIConfig    `yaml:"serpapi" mapstructure:"serpapi"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Research   ResearchConfig   `yaml:"research" mapstructure:"research"`
	Reconcile  ReconcileConfig  `yaml:"reconcile" mapstructure:"reconcile"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Scrape     ScrapeConfig     `yaml:"scrape" mapstructure:"scrape"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// PerplexityConfig holds Perplexity API settings.
type PerplexityConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
	// SearchContext is the grounding search depth: low, medium or high.
	SearchContext string `yaml:"search_context" mapstructure:"search_context"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// TavilyConfig holds Tavily web search settings.
type TavilyConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	SearchDepth string  `yaml:"search_depth" mapstructure:"search_depth"`
	MaxResults  int     `yaml:"max_results" mapstructure:"max_results"`
	RatePerSec  float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
}

// SerpAPIConfig holds SerpAPI settings.
type SerpAPIConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	BaseURL  string `yaml:"base_url" mapstructure:"base_url"`
	Engine   string `yaml:"engine" mapstructure:"engine"`
	Country  string `yaml:"country" mapstructure:"country"`
	Language string `yaml:"language" mapstructure:"language"`
	Num      int    `yaml:"num" mapstructure:"num"`
}

// LLMConfig bounds every text-generation call.
type LLMConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// ResearchConfig selects the AI-search backend.
type ResearchConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// ReconcileConfig selects the adjudication backend.
type ReconcileConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"`
}

// SearchConfig bounds the web-search adapter.
type SearchConfig struct {
	Budget      int    `yaml:"budget" mapstructure:"budget"`
	PlanPath    string `yaml:"plan_path" mapstructure:"plan_path"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Retries     int    `yaml:"retries" mapstructure:"retries"`
}

// HTTPConfig configures generic HTTP calls to business websites.
type HTTPConfig struct {
	ValidateTimeoutSecs int    `yaml:"validate_timeout_secs" mapstructure:"validate_timeout_secs"`
	ScrapeTimeoutSecs   int    `yaml:"scrape_timeout_secs" mapstructure:"scrape_timeout_secs"`
	UserAgent           string `yaml:"user_agent" mapstructure:"user_agent"`
}

// ScrapeConfig configures the direct-site scraper.
type ScrapeConfig struct {
	LinkKeywords []string `yaml:"link_keywords" mapstructure:"link_keywords"`
	MaxBodyKB    int      `yaml:"max_body_kb" mapstructure:"max_body_kb"`
	MaxPages     int      `yaml:"max_pages" mapstructure:"max_pages"`
}

// OutputConfig configures the output table and side logs.
type OutputConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	FailureLog string `yaml:"failure_log" mapstructure:"failure_log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// ValidateTimeout returns the URL liveness check timeout.
func (c HTTPConfig) ValidateTimeout() time.Duration {
	return secs(c.ValidateTimeoutSecs, 5)
}

// ScrapeTimeout returns the per-page scrape timeout.
func (c HTTPConfig) ScrapeTimeout() time.Duration {
	return secs(c.ScrapeTimeoutSecs, 10)
}

// Timeout returns the per-call text-generation timeout.
func (c LLMConfig) Timeout() time.Duration {
	return secs(c.TimeoutSecs, 120)
}

// Timeout returns the per-query web search timeout.
func (c SearchConfig) Timeout() time.Duration {
	return secs(c.TimeoutSecs, 10)
}

func secs(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

// Load reads configuration from .env, file and environment.
func Load() (*Config, error) {
	// Keys may live in a local .env; a missing file is fine.
	_ = godotenv.Load(".env")

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SCRAPER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("perplexity.base_url", "https://api.perplexity.ai")
	v.SetDefault("perplexity.model", "sonar-pro")
	v.SetDefault("perplexity.search_context", "high")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("tavily.base_url", "https://api.tavily.com")
	v.SetDefault("tavily.search_depth", "advanced")
	v.SetDefault("tavily.max_results", 3)
	v.SetDefault("tavily.rate_per_sec", 2.0)
	v.SetDefault("serpapi.base_url", "https://serpapi.com")
	v.SetDefault("serpapi.engine", "google")
	v.SetDefault("serpapi.country", "in")
	v.SetDefault("serpapi.language", "en")
	v.SetDefault("serpapi.num", 10)
	v.SetDefault("llm.timeout_secs", 120)
	v.SetDefault("research.provider", ProviderPerplexity)
	v.SetDefault("reconcile.provider", ProviderAnthropic)
	v.SetDefault("search.budget", 15)
	v.SetDefault("search.timeout_secs", 10)
	v.SetDefault("search.retries", 2)
	v.SetDefault("http.validate_timeout_secs", 5)
	v.SetDefault("http.scrape_timeout_secs", 10)
	v.SetDefault("http.user_agent", "Mozilla/5.0")
	v.SetDefault("scrape.link_keywords", []string{"contact", "about", "team"})
	v.SetDefault("scrape.max_body_kb", 2048)
	v.SetDefault("scrape.max_pages", 10)
	v.SetDefault("output.path", "interior_firm_contacts.xlsx")
	v.SetDefault("output.failure_log", "reconcile_failures.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "scraper.log")

	// Read config file (optional)
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

// Validate checks that every provider the enrich command will call has
// credentials and that numeric bounds are usable.
func (c *Config) Validate() error {
	var problems []string

	for _, p := range []struct{ role, name string }{
		{"research.provider", c.Research.Provider},
		{"reconcile.provider", c.Reconcile.Provider},
	} {
		switch p.name {
		case ProviderAnthropic:
			if c.Anthropic.Key == "" {
				problems = append(problems, "anthropic.key is required")
			}
		case ProviderPerplexity:
			if c.Perplexity.Key == "" {
				problems = append(problems, "perplexity.key is required")
			}
		case ProviderGemini:
			if c.Gemini.Key == "" {
				problems = append(problems, "gemini.key is required")
			}
		default:
			problems = append(problems, p.role+" must be one of anthropic, perplexity, gemini")
		}
	}
	if c.Tavily.Key == "" {
		problems = append(problems, "tavily.key is required")
	}
	if c.SerpAPI.Key == "" {
		problems = append(problems, "serpapi.key is required")
	}
	if c.Search.Budget < 1 {
		problems = append(problems, "search.budget must be at least 1")
	}
	if c.Output.Path == "" {
		problems = append(problems, "output.path is required")
	}

	if len(problems) == 0 {
		return nil
	}
	return eris.Errorf("config: %s", strings.Join(dedupe(problems), "; "))
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// InitLogger initializes the global zap logger.
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

	if cfg.File != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, cfg.File)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
