package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/stripegate/internal/shared/errors"
)

// chdir moves into an empty directory so no config file or .env from the
// repository leaks into the test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "https://api.stripe.com/v1", cfg.Stripe.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Stripe.Timeout)
	assert.Equal(t, "usd", cfg.Stripe.Currency)
	assert.Equal(t, "stripegate go v1", cfg.Stripe.UserAgent)
	assert.Equal(t, "stderr", cfg.Logger.OutputPath)
	assert.Zero(t, cfg.Mock.RateLimit.Limit)
	assert.Equal(t, time.Second, cfg.Mock.RateLimit.Window)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("STRIPEGATE_STRIPE_API_KEY", "sk_test_env")
	t.Setenv("STRIPEGATE_STRIPE_TIMEOUT", "5s")
	t.Setenv("STRIPEGATE_STRIPE_CURRENCY", "EUR")

	cfg, err := Load("debug")
	require.NoError(t, err)

	assert.Equal(t, "sk_test_env", cfg.Stripe.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Stripe.Timeout)
	assert.Equal(t, "eur", cfg.Stripe.Currency)
	assert.True(t, cfg.IsDebug())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ConfigFileAndDotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "configs"), 0o755))
	yaml := "stripe:\n  base_url: http://127.0.0.1:12111/v1\n  currency: gbp\nlogger:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STRIPEGATE_STRIPE_API_KEY=sk_test_dotenv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("STRIPEGATE_STRIPE_API_KEY") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:12111/v1", cfg.Stripe.BaseURL)
	assert.Equal(t, "gbp", cfg.Stripe.Currency)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "sk_test_dotenv", cfg.Stripe.APIKey)
}

func TestLoad_UnknownCurrency(t *testing.T) {
	chdir(t)
	t.Setenv("STRIPEGATE_STRIPE_CURRENCY", "zzz")

	_, err := Load("")
	assert.True(t, errors.IsValidationError(err))
}

func TestValidate_MissingAPIKey(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stripe.api_key is required")
}
