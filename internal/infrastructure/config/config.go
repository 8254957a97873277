package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/stripegate/internal/shared/config"
	"github.com/orris-inc/stripegate/internal/shared/utils"
	"github.com/orris-inc/stripegate/internal/shared/version"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

// EnvPrefix prefixes every environment override, e.g. STRIPEGATE_STRIPE_API_KEY.
const EnvPrefix = "STRIPEGATE"

type Config struct {
	Mode   string                    `mapstructure:"mode" validate:"oneof=debug release"`
	Stripe sharedConfig.StripeConfig `mapstructure:"stripe"`
	Logger sharedConfig.LoggerConfig `mapstructure:"logger"`
	Mock   sharedConfig.MockConfig   `mapstructure:"mock"`
}

// IsDebug reports whether the process runs in debug mode.
func (c *Config) IsDebug() bool {
	return c.Mode == "debug"
}

// Load reads configs/config.yaml (optional), a .env file found in the
// working directory or one of its parents (optional) and STRIPEGATE_*
// environment variables, in increasing order of precedence.
func Load(env string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override mode if provided
	if env != "" && env != "default" {
		v.Set("mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	currency, err := utils.NormalizeCurrency(config.Stripe.Currency)
	if err != nil {
		return nil, err
	}
	config.Stripe.Currency = currency

	return &config, nil
}

// Validate checks the whole configuration. The API key is only required by
// commands that call the API, so it is checked here rather than in Load.
func (c *Config) Validate() error {
	return utils.ValidateStruct(c)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")

	// Stripe defaults
	v.SetDefault("stripe.api_key", "")
	v.SetDefault("stripe.publishable_key", "")
	v.SetDefault("stripe.base_url", stripe.DefaultBaseURL)
	v.SetDefault("stripe.timeout", stripe.DefaultTimeout)
	v.SetDefault("stripe.currency", stripe.USDCurrency)
	v.SetDefault("stripe.user_agent", version.UserAgent(version.Version))

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	// Mock server defaults
	v.SetDefault("mock.addr", "127.0.0.1:12111")
	v.SetDefault("mock.api_key", "sk_test_mock")
	v.SetDefault("mock.rate_limit.limit", 0)
	v.SetDefault("mock.rate_limit.window", time.Second)
	v.SetDefault("mock.rate_limit.redis_addr", "")
	v.SetDefault("mock.rate_limit.redis_db", 0)
}

// loadDotEnv loads the first .env file found walking up from the working
// directory. Variables already set in the environment win.
func loadDotEnv() error {
	dir, err := os.Getwd()
	if err != nil {
		return nil
	}
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("failed to load .env file: %w", err)
			}
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}
