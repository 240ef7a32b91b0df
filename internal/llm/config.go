// Package llm provides the judgment-oracle client abstraction and its Gemini and OpenAI-compatible providers.
package llm

// ModelTier picks a model by capability rather than by name
type ModelTier string

const (
	TierLite     ModelTier = "lite"     // keyword-level classification
	TierStandard ModelTier = "standard" // resume parsing and specialist scoring
	TierAdvanced ModelTier = "advanced"
)

// Provider names an oracle backend
type Provider string

const (
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI covers any OpenAI-compatible chat completions endpoint
	ProviderOpenAI Provider = "openai"
)

// Default sampling settings. Low temperature keeps scores stable across re-runs.
const (
	DefaultTemperature = 0.2
	DefaultMaxTokens   = 2048
)

var defaultModels = map[Provider]map[ModelTier]string{
	ProviderGemini: {
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	},
	ProviderOpenAI: {
		TierLite:     "gpt-4o-mini",
		TierStandard: "gpt-4o",
		TierAdvanced: "gpt-4.1",
	},
}

// tierFallback is consulted in order when the requested tier has no model
var tierFallback = []ModelTier{TierStandard, TierLite}

// Config selects the oracle backend and its per-tier models
type Config struct {
	Provider    Provider
	APIKey      string
	BaseURL     string
	Models      map[ModelTier]string
	Temperature float64
	MaxTokens   int
}

// DefaultConfigFor returns the stock configuration for p. Unknown providers get Gemini.
func DefaultConfigFor(p Provider) *Config {
	models, ok := defaultModels[p]
	if !ok {
		p = ProviderGemini
		models = defaultModels[p]
	}
	cfg := &Config{
		Provider:    p,
		Models:      make(map[ModelTier]string, len(models)),
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
	for tier, name := range models {
		cfg.Models[tier] = name
	}
	return cfg
}

// GetModel returns the model for tier, falling back to the standard then lite model
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range append([]ModelTier{tier}, tierFallback...) {
		if name := c.Models[t]; name != "" {
			return name
		}
	}
	return ""
}

// WithModel returns a copy of c that uses model for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for t, name := range c.Models {
		out.Models[t] = name
	}
	out.Models[tier] = model
	return &out
}

// resolve fills per-call options from the configuration defaults
func (c *Config) resolve(opts Options) (model string, temperature float64, maxTokens int) {
	model = opts.Model
	if model == "" {
		tier := opts.Tier
		if tier == "" {
			tier = TierStandard
		}
		model = c.GetModel(tier)
	}

	temperature = c.Temperature
	if opts.Temperature > 0 {
		temperature = opts.Temperature
	}

	maxTokens = DefaultMaxTokens
	switch {
	case opts.MaxTokens > 0:
		maxTokens = opts.MaxTokens
	case c.MaxTokens > 0:
		maxTokens = c.MaxTokens
	}
	return model, temperature, maxTokens
}
