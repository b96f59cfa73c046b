package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Finder     FinderConfig     `yaml:"finder" mapstructure:"finder"`
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	DuckDuckGo DuckDuckGoConfig `yaml:"duckduckgo" mapstructure:"duckduckgo"`
	Jina       JinaConfig       `yaml:"jina" mapstructure:"jina"`
	Semantic   SemanticConfig   `yaml:"semantic" mapstructure:"semantic"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Groq       GroqConfig       `yaml:"groq" mapstructure:"groq"`
	Gemini     GeminiConfig     `yaml:"gemini" mapstructure:"gemini"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// FinderConfig tunes profile resolution.
type FinderConfig struct {
	DelayBetweenRequests       float64  `yaml:"delay_between_requests" mapstructure:"delay_between_requests"`
	CompanySimilarityThreshold float64  `yaml:"company_similarity_threshold" mapstructure:"company_similarity_threshold"`
	NameSimilarityThreshold    float64  `yaml:"name_similarity_threshold" mapstructure:"name_similarity_threshold"`
	MaxWorkers                 int      `yaml:"max_workers" mapstructure:"max_workers"`
	UseSemanticValidation      bool     `yaml:"use_semantic_validation" mapstructure:"use_semantic_validation"`
	Keywords                   []string `yaml:"keywords" mapstructure:"keywords"`
	TopK                       int      `yaml:"top_k" mapstructure:"top_k"`
	SiteFilter                 string   `yaml:"site_filter" mapstructure:"site_filter"`
	ProfileURLPattern          string   `yaml:"profile_url_pattern" mapstructure:"profile_url_pattern"`
	IncludeCompanyVariants     bool     `yaml:"include_company_variants" mapstructure:"include_company_variants"`
}

// SearchConfig selects and tunes the web search backend.
type SearchConfig struct {
	Backend                 string `yaml:"backend" mapstructure:"backend"`
	MaxResults              int    `yaml:"max_results" mapstructure:"max_results"`
	TimeoutSecs             int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Region                  string `yaml:"region" mapstructure:"region"`
	CacheTTLMins            int    `yaml:"cache_ttl_mins" mapstructure:"cache_ttl_mins"`
	CircuitFailureThreshold int    `yaml:"circuit_failure_threshold" mapstructure:"circuit_failure_threshold"`
	CircuitResetSecs        int    `yaml:"circuit_reset_secs" mapstructure:"circuit_reset_secs"`
}

// DuckDuckGoConfig configures the DuckDuckGo HTML backend.
type DuckDuckGoConfig struct {
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// JinaConfig holds Jina AI Search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// SemanticConfig selects the name judge used when semantic validation is on.
type SemanticConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// GroqConfig holds Groq (OpenAI-compatible) API settings.
type GroqConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// GeminiConfig holds Gemini API settings.
type GeminiConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	Model   string `yaml:"model" mapstructure:"model"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver           string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL      string `yaml:"database_url" mapstructure:"database_url"`
	HitCacheTTLHours int    `yaml:"hit_cache_ttl_hours" mapstructure:"hit_cache_ttl_hours"`
	MaxConns         int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns         int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from .env, config.yaml, and environment variables.
func Load() (*Config, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROFILE_FINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Every key needs one so AutomaticEnv can override it.
	v.SetDefault("finder.delay_between_requests", 1.0)
	v.SetDefault("finder.company_similarity_threshold", 0.6)
	v.SetDefault("finder.name_similarity_threshold", 0.7)
	v.SetDefault("finder.max_workers", 3)
	v.SetDefault("finder.use_semantic_validation", false)
	v.SetDefault("finder.keywords", []string{})
	v.SetDefault("finder.top_k", 5)
	v.SetDefault("finder.site_filter", "linkedin.com/in")
	v.SetDefault("finder.profile_url_pattern", "linkedin.com/in/")
	v.SetDefault("finder.include_company_variants", false)
	v.SetDefault("search.backend", "duckduckgo")
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.timeout_secs", 30)
	v.SetDefault("search.region", "us-en")
	v.SetDefault("search.cache_ttl_mins", 60)
	v.SetDefault("search.circuit_failure_threshold", 5)
	v.SetDefault("search.circuit_reset_secs", 60)
	v.SetDefault("duckduckgo.base_url", "https://html.duckduckgo.com/html")
	v.SetDefault("duckduckgo.user_agent", "Mozilla/5.0 (compatible; profile-finder/1.0)")
	v.SetDefault("jina.key", "")
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("semantic.provider", "groq")
	v.SetDefault("semantic.timeout_secs", 10)
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.base_url", "")
	v.SetDefault("groq.key", "")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.model", "llama-3.1-8b-instant")
	v.SetDefault("gemini.key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("store.driver", "none")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.hit_cache_ttl_hours", 168)
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks the fields required by the given command mode
// ("find", "batch", "serve", "runs").
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "find", "batch", "serve":
		errs = append(errs, c.validateFinder()...)
		if mode == "serve" && c.Server.Port <= 0 {
			errs = append(errs, "server.port must be > 0")
		}
	case "runs":
		if c.Store.Driver == "none" || c.Store.Driver == "" {
			errs = append(errs, "store.driver must be sqlite or postgres")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	switch c.Store.Driver {
	case "", "none", "sqlite":
	case "postgres":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for postgres")
		}
	default:
		errs = append(errs, "store.driver must be one of none, sqlite, postgres")
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateFinder() []string {
	var errs []string
	f := c.Finder

	if f.DelayBetweenRequests < 0 {
		errs = append(errs, "finder.delay_between_requests must be >= 0")
	}
	if f.CompanySimilarityThreshold < 0 || f.CompanySimilarityThreshold > 1 {
		errs = append(errs, "finder.company_similarity_threshold must be between 0 and 1")
	}
	if f.NameSimilarityThreshold < 0 || f.NameSimilarityThreshold > 1 {
		errs = append(errs, "finder.name_similarity_threshold must be between 0 and 1")
	}
	if f.MaxWorkers < 1 || f.MaxWorkers > 50 {
		errs = append(errs, "finder.max_workers must be between 1 and 50")
	}
	if f.TopK < 0 {
		errs = append(errs, "finder.top_k must be >= 0")
	}

	switch c.Search.Backend {
	case "duckduckgo":
	case "jina":
		if c.Jina.Key == "" {
			errs = append(errs, "jina.key is required for the jina backend")
		}
	default:
		errs = append(errs, "search.backend must be duckduckgo or jina")
	}

	if f.UseSemanticValidation {
		switch c.Semantic.Provider {
		case "anthropic":
			if c.Anthropic.Key == "" {
				errs = append(errs, "anthropic.key is required")
			}
		case "groq":
			if c.Groq.Key == "" {
				errs = append(errs, "groq.key is required")
			}
		case "gemini":
			if c.Gemini.Key == "" {
				errs = append(errs, "gemini.key is required")
			}
		default:
			errs = append(errs, "semantic.provider must be anthropic, groq, or gemini")
		}
	}
	return errs
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

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
