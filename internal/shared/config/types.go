package config

import "time"

// StripeConfig configures the API gateway.
type StripeConfig struct {
	APIKey         string        `mapstructure:"api_key" validate:"required"`
	PublishableKey string        `mapstructure:"publishable_key"`
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	Currency       string        `mapstructure:"currency" validate:"required,len=3"`
	UserAgent      string        `mapstructure:"user_agent" validate:"required"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format     string `mapstructure:"format" validate:"omitempty,oneof=console json"`
	OutputPath string `mapstructure:"output_path"`
}

// MockConfig configures the local fake API served by "stripegate mock".
type MockConfig struct {
	Addr      string          `mapstructure:"addr" validate:"required,hostname_port"`
	APIKey    string          `mapstructure:"api_key" validate:"required"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig budgets requests per API key. Limit 0 disables it.
// RedisAddr shares the budget through Redis instead of process memory.
type RateLimitConfig struct {
	Limit     int           `mapstructure:"limit" validate:"gte=0"`
	Window    time.Duration `mapstructure:"window" validate:"required_with=Limit"`
	RedisAddr string        `mapstructure:"redis_addr" validate:"omitempty,hostname_port"`
	RedisDB   int           `mapstructure:"redis_db" validate:"gte=0"`
}
