package validator

// Option is a function that configures a validation operation
type Option func(*validateConfig)

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	includeWarnings bool
	strictMode      bool
	examples        bool
}

func applyOptions(opts ...Option) *validateConfig {
	cfg := &validateConfig{
		includeWarnings: true,
		examples:        true,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithIncludeWarnings enables or disables warnings in the result
// Default: true
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) {
		cfg.includeWarnings = enabled
	}
}

// WithStrictMode enables or disables checks beyond the OpenAPI requirements
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *validateConfig) {
		cfg.strictMode = enabled
	}
}

// WithExamples enables or disables validating media type examples against their schemas
// Default: true
func WithExamples(enabled bool) Option {
	return func(cfg *validateConfig) {
		cfg.examples = enabled
	}
}
