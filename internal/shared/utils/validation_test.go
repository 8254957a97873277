package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedConfig "github.com/orris-inc/stripegate/internal/shared/config"
	"github.com/orris-inc/stripegate/internal/shared/errors"
)

func validStripeConfig() sharedConfig.StripeConfig {
	return sharedConfig.StripeConfig{
		APIKey:    "sk_test_123",
		BaseURL:   "https://api.stripe.com/v1",
		Timeout:   time.Minute,
		Currency:  "usd",
		UserAgent: "stripegate go v1",
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*sharedConfig.StripeConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*sharedConfig.StripeConfig) {}},
		{
			name:    "missing api key",
			mutate:  func(c *sharedConfig.StripeConfig) { c.APIKey = "" },
			wantErr: "api_key is required",
		},
		{
			name:    "bad base url",
			mutate:  func(c *sharedConfig.StripeConfig) { c.BaseURL = "not a url" },
			wantErr: "base_url must be a valid URL",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *sharedConfig.StripeConfig) { c.Timeout = 0 },
			wantErr: "timeout must be greater than 0",
		},
		{
			name:    "currency too long",
			mutate:  func(c *sharedConfig.StripeConfig) { c.Currency = "usdd" },
			wantErr: "currency must be exactly 3 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validStripeConfig()
			tt.mutate(&cfg)

			err := ValidateStruct(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	got, err := NormalizeCurrency("USD")
	require.NoError(t, err)
	assert.Equal(t, "usd", got)

	got, err = NormalizeCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, "eur", got)

	_, err = NormalizeCurrency("zzz")
	assert.True(t, errors.IsValidationError(err))
}

func TestParseKeyValues(t *testing.T) {
	got, err := ParseKeyValues([]string{"order=42", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"order": "42", "note": "a=b"}, got)

	got, err = ParseKeyValues(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseKeyValues([]string{"novalue"})
	assert.True(t, errors.IsBadRequestError(err))
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "sk_test_***p7dc", MaskSecret("sk_test_4eC39HqLyjWDarjtT1zdp7dc"))
	assert.Equal(t, "***abcd", MaskSecret("xyz123abcd"))
	assert.Equal(t, "sk_live_***", MaskSecret("sk_live_ab"))
	assert.Equal(t, "", MaskSecret(""))
}
