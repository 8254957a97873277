// Package common holds what every stripegate subcommand shares: global
// flags, configuration and gateway setup, and output formatting.
package common

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/infrastructure/config"
	"github.com/orris-inc/stripegate/internal/shared/logger"
	"github.com/orris-inc/stripegate/internal/shared/utils"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

// GlobalFlags are the persistent flags of the root command.
type GlobalFlags struct {
	Env     string
	Output  string
	BaseURL string
}

var Flags GlobalFlags

// AddGlobalFlags registers the persistent flags on root.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVarP(&Flags.Env, "env", "e", "", "Mode override (debug, release)")
	root.PersistentFlags().StringVarP(&Flags.Output, "output", "o", FormatJSON, "Output format (json, yaml)")
	root.PersistentFlags().StringVar(&Flags.BaseURL, "base-url", "", "API endpoint, e.g. http://127.0.0.1:12111/v1 for the mock server")
}

// LoadConfig loads the configuration, applies flag overrides and
// initializes the process logger.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(Flags.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if Flags.BaseURL != "" {
		cfg.Stripe.BaseURL = Flags.BaseURL
	}

	if err := logger.Init(&cfg.Logger, cfg.IsDebug()); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// NewGateway validates cfg and builds a gateway from its stripe section.
func NewGateway(cfg *config.Config) (*stripe.Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.WithComponent("cli").Debug("gateway configured",
		"base_url", cfg.Stripe.BaseURL,
		"api_key", utils.MaskSecret(cfg.Stripe.APIKey),
		"timeout", cfg.Stripe.Timeout,
	)

	return stripe.New(cfg.Stripe.APIKey,
		stripe.WithBaseURL(cfg.Stripe.BaseURL),
		stripe.WithTimeout(cfg.Stripe.Timeout),
		stripe.WithCurrency(cfg.Stripe.Currency),
		stripe.WithPublishableKey(cfg.Stripe.PublishableKey),
		stripe.WithUserAgent(cfg.Stripe.UserAgent),
		stripe.WithLogger(logger.WithComponent("gateway")),
	), nil
}

// Setup loads the configuration and builds a gateway from it.
func Setup() (*config.Config, *stripe.Gateway, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	gw, err := NewGateway(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, gw, nil
}

// Send performs req and prints the decoded response.
func Send[T any](cmd *cobra.Command, c stripe.Caller, req stripe.Request[T]) error {
	out, err := stripe.Send[T](cmd.Context(), c, req)
	if err != nil {
		return err
	}
	return Print(cmd.OutOrStdout(), Flags.Output, out)
}

// Call sends req through a freshly configured gateway and prints the result.
func Call[T any](cmd *cobra.Command, req stripe.Request[T]) error {
	_, gw, err := Setup()
	if err != nil {
		return err
	}
	return Send[T](cmd, gw, req)
}

// Currency returns flag when set, otherwise the configured default.
func Currency(cfg *config.Config, flag string) (string, error) {
	if flag != "" {
		return utils.NormalizeCurrency(flag)
	}
	return cfg.Stripe.Currency, nil
}

// Metadata parses repeated --metadata key=value flags.
func Metadata(pairs []string) (map[string]string, error) {
	return utils.ParseKeyValues(pairs)
}

// ParseTime accepts RFC 3339 or Unix epoch seconds. An empty string is nil.
func ParseTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	var sec int64
	if _, err := fmt.Sscan(s, &sec); err != nil {
		return nil, fmt.Errorf("invalid time %q: use RFC 3339 or Unix seconds", s)
	}
	t := time.Unix(sec, 0).UTC()
	return &t, nil
}

// Int64Flag returns a pointer to the flag's value when it was set.
func Int64Flag(cmd *cobra.Command, name string) *int64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt64(name)
	return &v
}

// IntFlag returns a pointer to the flag's value when it was set.
func IntFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// BoolFlag returns a pointer to the flag's value when it was set.
func BoolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

// AddListFlags registers --count and --offset.
func AddListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("count", 10, "Number of objects to return")
	cmd.Flags().Int("offset", 0, "Number of objects to skip")
}

// ListParams reads the flags registered by AddListFlags.
func ListParams(cmd *cobra.Command) stripe.ListParams {
	return stripe.ListParams{Count: IntFlag(cmd, "count"), Offset: IntFlag(cmd, "offset")}
}

// CardFlags are the flags describing a new card.
type CardFlags struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
	Name     string
	Zip      string
	Country  string
}

// AddCardFlags registers the card flags on cmd.
func AddCardFlags(cmd *cobra.Command, f *CardFlags) {
	cmd.Flags().StringVar(&f.Number, "card-number", "", "Card number")
	cmd.Flags().IntVar(&f.ExpMonth, "exp-month", 0, "Card expiration month")
	cmd.Flags().IntVar(&f.ExpYear, "exp-year", 0, "Card expiration year")
	cmd.Flags().StringVar(&f.CVC, "cvc", "", "Card security code")
	cmd.Flags().StringVar(&f.Name, "card-name", "", "Cardholder name")
	cmd.Flags().StringVar(&f.Zip, "card-zip", "", "Billing ZIP or postal code")
	cmd.Flags().StringVar(&f.Country, "card-country", "", "Billing country")
}

// Params returns nil when no card number was given.
func (f *CardFlags) Params() *stripe.CardParams {
	if f.Number == "" {
		return nil
	}
	return &stripe.CardParams{
		Number:         f.Number,
		ExpMonth:       f.ExpMonth,
		ExpYear:        f.ExpYear,
		CVC:            f.CVC,
		Name:           f.Name,
		AddressZip:     f.Zip,
		AddressCountry: f.Country,
	}
}
