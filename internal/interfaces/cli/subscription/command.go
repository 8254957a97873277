package subscription

import (
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscription",
		Short: "Subscribe customers to plans and cancel subscriptions",
	}

	cmd.AddCommand(
		newCreateCommand(),
		newCancelCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	var (
		plan     string
		coupon   string
		card     string
		trialEnd string
	)

	cmd := &cobra.Command{
		Use:   "create <customer-id>",
		Short: "Create or replace a customer's subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trial, err := common.ParseTime(trialEnd)
			if err != nil {
				return err
			}
			return common.Call[stripe.Subscription](cmd, stripe.SubscribeCustomer{
				CustomerID:            args[0],
				Plan:                  plan,
				Coupon:                coupon,
				Prorate:               common.BoolFlag(cmd, "prorate"),
				TrialEnd:              trial,
				Card:                  card,
				Quantity:              common.IntFlag(cmd, "quantity"),
				ApplicationFeePercent: common.IntFlag(cmd, "application-fee-percent"),
			})
		},
	}

	cmd.Flags().StringVar(&plan, "plan", "", "Plan ID")
	cmd.Flags().StringVar(&coupon, "coupon", "", "Coupon to apply")
	cmd.Flags().StringVar(&card, "card", "", "Card token to store as the default card")
	cmd.Flags().StringVar(&trialEnd, "trial-end", "", "End of the trial (RFC 3339 or Unix seconds)")
	cmd.Flags().Bool("prorate", true, "Prorate when replacing a subscription")
	cmd.Flags().Int("quantity", 1, "Quantity")
	cmd.Flags().Int("application-fee-percent", 0, "Application fee percent")
	_ = cmd.MarkFlagRequired("plan")

	return cmd
}

func newCancelCommand() *cobra.Command {
	var atPeriodEnd bool

	cmd := &cobra.Command{
		Use:   "cancel <customer-id>",
		Short: "Cancel a customer's subscription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Subscription](cmd, stripe.CancelSubscription{
				CustomerID:  args[0],
				AtPeriodEnd: atPeriodEnd,
			})
		},
	}

	cmd.Flags().BoolVar(&atPeriodEnd, "at-period-end", false, "Keep the subscription active until the end of the current period")

	return cmd
}
