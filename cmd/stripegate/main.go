package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/card"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/charge"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/coupon"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/customer"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/invoice"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/mock"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/plan"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/routes"
	"github.com/orris-inc/stripegate/internal/interfaces/cli/subscription"
	"github.com/orris-inc/stripegate/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "stripegate",
		Short:        "Stripegate - a typed client for the Stripe payment API",
		Long:         `Stripegate calls the Stripe REST API with typed requests: charges, customers, cards, subscriptions, plans, coupons and invoices. The mock command serves a local fake of the API.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	common.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(
		charge.NewCommand(),
		customer.NewCommand(),
		card.NewCommand(),
		subscription.NewCommand(),
		plan.NewCommand(),
		coupon.NewCommand(),
		invoice.NewCommand(),
		routes.NewCommand(),
		mock.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
