// Package config loads screener settings from a config file, environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/pipeline"
	"github.com/jonathan/candidate-screener/internal/scoring"
)

// EnvPrefix is prepended to every environment variable derived from a config key
const EnvPrefix = "SCREENER"

// Config is the full application configuration
type Config struct {
	LLM         LLMConfig      `mapstructure:"llm"`
	Pipeline    PipelineConfig `mapstructure:"pipeline"`
	Scoring     ScoringConfig  `mapstructure:"scoring"`
	Skills      SkillsConfig   `mapstructure:"skills"`
	DatabaseURL string         `mapstructure:"database_url"`
	RedisURL    string         `mapstructure:"redis_url"`
	Debug       bool           `mapstructure:"debug"`
	JSON        bool           `mapstructure:"json"`
}

// LLMConfig selects and tunes the judgment oracle
type LLMConfig struct {
	Provider    string       `mapstructure:"provider"`
	APIKey      string       `mapstructure:"api_key"`
	BaseURL     string       `mapstructure:"base_url"`
	Models      ModelsConfig `mapstructure:"models"`
	Temperature float64      `mapstructure:"temperature"`
	MaxTokens   int          `mapstructure:"max_tokens"`
	// RequestsPerMinute throttles oracle calls; 0 disables throttling
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// ModelsConfig overrides the provider's model per tier; empty keeps the provider default
type ModelsConfig struct {
	Lite     string `mapstructure:"lite"`
	Standard string `mapstructure:"standard"`
	Advanced string `mapstructure:"advanced"`
}

// PipelineConfig tunes orchestration
type PipelineConfig struct {
	SpecialistFailurePolicy string        `mapstructure:"specialist_failure_policy"`
	ConcurrentSpecialists   bool          `mapstructure:"concurrent_specialists"`
	StageTimeout            time.Duration `mapstructure:"stage_timeout"`
	CandidateTimeout        time.Duration `mapstructure:"candidate_timeout"`
	BatchConcurrency        int           `mapstructure:"batch_concurrency"`
	OracleRetries           int           `mapstructure:"oracle_retries"`
	ParseCacheTTL           time.Duration `mapstructure:"parse_cache_ttl"`
}

// ScoringConfig holds the synthesis weights
type ScoringConfig struct {
	Weights scoring.Weights `mapstructure:"weights"`
}

// SkillsConfig points at an optional catalog replacing the embedded one
type SkillsConfig struct {
	CatalogPath string `mapstructure:"catalog_path"`
}

// SetDefaults registers the default value of every key on v
func SetDefaults(v *viper.Viper) {
	weights := scoring.DefaultWeights()
	pc := pipeline.DefaultConfig()

	v.SetDefault("llm.provider", string(llm.ProviderGemini))
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.models.lite", "")
	v.SetDefault("llm.models.standard", "")
	v.SetDefault("llm.models.advanced", "")
	v.SetDefault("llm.temperature", llm.DefaultTemperature)
	v.SetDefault("llm.max_tokens", llm.DefaultMaxTokens)
	v.SetDefault("llm.requests_per_minute", 0)
	v.SetDefault("llm.burst", 3)

	v.SetDefault("pipeline.specialist_failure_policy", string(pc.FailurePolicy))
	v.SetDefault("pipeline.concurrent_specialists", pc.ConcurrentSpecialists)
	v.SetDefault("pipeline.stage_timeout", pc.StageTimeout)
	v.SetDefault("pipeline.candidate_timeout", pc.CandidateTimeout)
	v.SetDefault("pipeline.batch_concurrency", pc.BatchConcurrency)
	v.SetDefault("pipeline.oracle_retries", pc.OracleRetries)
	v.SetDefault("pipeline.parse_cache_ttl", pc.ParseCacheTTL)

	v.SetDefault("scoring.weights.skills", weights.Skills)
	v.SetDefault("scoring.weights.experience", weights.Experience)
	v.SetDefault("scoring.weights.cultural_fit", weights.CulturalFit)

	v.SetDefault("skills.catalog_path", "")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("debug", false)
	v.SetDefault("json", false)
}

// Bind wires environment variables into v: SCREENER_<KEY> for every key, plus the
// conventional unprefixed names for credentials and connection strings.
func Bind(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	binds := map[string][]string{
		"database_url":   {EnvPrefix + "_DATABASE_URL", "DATABASE_URL"},
		"redis_url":      {EnvPrefix + "_REDIS_URL", "REDIS_URL"},
		"gemini_api_key": {"GEMINI_API_KEY"},
		"openai_api_key": {"OPENAI_API_KEY"},
	}
	for key, envs := range binds {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("binding %s: %w", key, err)
		}
	}
	return nil
}

// Load reads configuration from v, which must already have defaults and env bindings.
// When path is set the file is read first; its values sit below env vars and flags.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		switch llm.Provider(cfg.LLM.Provider) {
		case llm.ProviderOpenAI:
			cfg.LLM.APIKey = v.GetString("openai_api_key")
		default:
			cfg.LLM.APIKey = v.GetString("gemini_api_key")
		}
	}
	return &cfg, nil
}

// New returns a viper instance with defaults and env bindings applied
func New() (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	if err := Bind(v); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks that the configuration has usable values
func (c *Config) Validate() error {
	var errs []error

	switch llm.Provider(c.LLM.Provider) {
	case llm.ProviderGemini, llm.ProviderOpenAI:
	default:
		errs = append(errs, fmt.Errorf("llm.provider must be gemini or openai, got %q", c.LLM.Provider))
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature must be between 0 and 2"))
	}
	if c.LLM.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("llm.max_tokens must be non-negative"))
	}
	if c.LLM.RequestsPerMinute < 0 || c.LLM.Burst < 0 {
		errs = append(errs, fmt.Errorf("llm.requests_per_minute and llm.burst must be non-negative"))
	}

	switch pipeline.FailurePolicy(c.Pipeline.SpecialistFailurePolicy) {
	case pipeline.PolicyAbort, pipeline.PolicyDegrade:
	default:
		errs = append(errs, fmt.Errorf("pipeline.specialist_failure_policy must be abort or degrade, got %q", c.Pipeline.SpecialistFailurePolicy))
	}
	if c.Pipeline.StageTimeout < 0 {
		errs = append(errs, fmt.Errorf("pipeline.stage_timeout must be non-negative"))
	}
	if c.Pipeline.CandidateTimeout < 0 {
		errs = append(errs, fmt.Errorf("pipeline.candidate_timeout must be non-negative"))
	}
	if c.Pipeline.ParseCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("pipeline.parse_cache_ttl must be non-negative"))
	}
	if c.Pipeline.BatchConcurrency < 1 {
		errs = append(errs, fmt.Errorf("pipeline.batch_concurrency must be at least 1"))
	}
	if c.Pipeline.OracleRetries < 0 {
		errs = append(errs, fmt.Errorf("pipeline.oracle_retries must be non-negative"))
	}

	w := c.Scoring.Weights
	if w.Skills < 0 || w.Experience < 0 || w.CulturalFit < 0 {
		errs = append(errs, fmt.Errorf("scoring.weights must be non-negative"))
	}

	return errors.Join(errs...)
}

// RequireAPIKey reports an error when no oracle credentials are configured
func (c *Config) RequireAPIKey() error {
	if c.LLM.APIKey != "" {
		return nil
	}
	if llm.Provider(c.LLM.Provider) == llm.ProviderOpenAI {
		return errors.New("missing API key: set OPENAI_API_KEY or llm.api_key")
	}
	return errors.New("missing API key: set GEMINI_API_KEY or llm.api_key")
}

// LLMClientConfig converts the settings into a client configuration
func (c *Config) LLMClientConfig() *llm.Config {
	cfg := llm.DefaultConfigFor(llm.Provider(c.LLM.Provider))
	cfg.APIKey = c.LLM.APIKey
	cfg.BaseURL = c.LLM.BaseURL
	if c.LLM.Temperature > 0 {
		cfg.Temperature = c.LLM.Temperature
	}
	if c.LLM.MaxTokens > 0 {
		cfg.MaxTokens = c.LLM.MaxTokens
	}
	overrides := map[llm.ModelTier]string{
		llm.TierLite:     c.LLM.Models.Lite,
		llm.TierStandard: c.LLM.Models.Standard,
		llm.TierAdvanced: c.LLM.Models.Advanced,
	}
	for tier, model := range overrides {
		if model != "" {
			cfg = cfg.WithModel(tier, model)
		}
	}
	return cfg
}

// PipelineSettings converts the settings into an orchestrator configuration
func (c *Config) PipelineSettings() pipeline.Config {
	pc := pipeline.DefaultConfig()
	pc.FailurePolicy = pipeline.FailurePolicy(c.Pipeline.SpecialistFailurePolicy)
	pc.ConcurrentSpecialists = c.Pipeline.ConcurrentSpecialists
	pc.StageTimeout = c.Pipeline.StageTimeout
	pc.CandidateTimeout = c.Pipeline.CandidateTimeout
	pc.BatchConcurrency = c.Pipeline.BatchConcurrency
	pc.OracleRetries = c.Pipeline.OracleRetries
	pc.ParseCacheTTL = c.Pipeline.ParseCacheTTL
	pc.Weights = c.Scoring.Weights
	return pc
}
