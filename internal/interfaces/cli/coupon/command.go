package coupon

import (
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/internal/shared/utils"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupon",
		Short: "Manage coupons",
	}

	cmd.AddCommand(
		newCreateCommand(),
		newGetCommand(),
		newDeleteCommand(),
		newListCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	var (
		id       string
		duration string
		currency string
		redeemBy string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a percent or amount off coupon",
		Example: `  stripegate coupon create --id HALF --percent-off 50 --duration once
  stripegate coupon create --amount-off 500 --currency usd --duration repeating --duration-in-months 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			redeem, err := common.ParseTime(redeemBy)
			if err != nil {
				return err
			}
			if currency != "" {
				if currency, err = utils.NormalizeCurrency(currency); err != nil {
					return err
				}
			}
			return common.Call[stripe.Coupon](cmd, stripe.CreateCoupon{
				ID:               id,
				Duration:         stripe.CouponDuration(duration),
				AmountOff:        common.Int64Flag(cmd, "amount-off"),
				Currency:         currency,
				DurationInMonths: common.IntFlag(cmd, "duration-in-months"),
				MaxRedemptions:   common.IntFlag(cmd, "max-redemptions"),
				PercentOff:       common.IntFlag(cmd, "percent-off"),
				RedeemBy:         redeem,
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Coupon code (generated when empty)")
	cmd.Flags().StringVar(&duration, "duration", string(stripe.CouponDurationOnce), "How long the discount applies (forever, once, repeating)")
	cmd.Flags().Int64("amount-off", 0, "Amount off in the currency's smallest unit")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency of --amount-off")
	cmd.Flags().Int("duration-in-months", 0, "Months a repeating coupon applies for")
	cmd.Flags().Int("max-redemptions", 0, "Maximum number of redemptions")
	cmd.Flags().Int("percent-off", 0, "Percent off, 1 to 100")
	cmd.Flags().StringVar(&redeemBy, "redeem-by", "", "Last time the coupon can be redeemed (RFC 3339 or Unix seconds)")
	cmd.MarkFlagsOneRequired("percent-off", "amount-off")
	cmd.MarkFlagsMutuallyExclusive("percent-off", "amount-off")

	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <coupon-id>",
		Short: "Retrieve a coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Coupon](cmd, stripe.GetCoupon{ID: args[0]})
		},
	}
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <coupon-id>",
		Short: "Delete a coupon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Reference](cmd, stripe.DeleteCoupon{ID: args[0]})
		},
	}
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List coupons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Collection[stripe.Coupon]](cmd, stripe.ListCoupons{ListParams: common.ListParams(cmd)})
		},
	}

	common.AddListFlags(cmd)

	return cmd
}
