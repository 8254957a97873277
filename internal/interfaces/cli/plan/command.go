package plan

import (
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage subscription plans",
	}

	cmd.AddCommand(
		newCreateCommand(),
		newGetCommand(),
		newUpdateCommand(),
		newDeleteCommand(),
		newListCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	var (
		currency string
		interval string
		name     string
	)

	cmd := &cobra.Command{
		Use:     "create <plan-id>",
		Short:   "Create a plan",
		Args:    cobra.ExactArgs(1),
		Example: `  stripegate plan create gold --amount 2000 --interval month --name "Gold"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gw, err := common.Setup()
			if err != nil {
				return err
			}
			cur, err := common.Currency(cfg, currency)
			if err != nil {
				return err
			}
			amount, _ := cmd.Flags().GetInt64("amount")

			return common.Send[stripe.Plan](cmd, gw, stripe.CreatePlan{
				ID:              args[0],
				Amount:          amount,
				Currency:        cur,
				Interval:        stripe.PlanInterval(interval),
				IntervalCount:   common.IntFlag(cmd, "interval-count"),
				Name:            name,
				TrialPeriodDays: common.IntFlag(cmd, "trial-period-days"),
			})
		},
	}

	cmd.Flags().Int64("amount", 0, "Amount per interval in the currency's smallest unit")
	cmd.Flags().StringVar(&currency, "currency", "", "Three-letter ISO currency code (defaults to the configured currency)")
	cmd.Flags().StringVar(&interval, "interval", string(stripe.PlanIntervalMonth), "Billing interval (day, week, month, year)")
	cmd.Flags().Int("interval-count", 1, "Number of intervals between billings")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().Int("trial-period-days", 0, "Trial length in days")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <plan-id>",
		Short: "Retrieve a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Plan](cmd, stripe.GetPlan{ID: args[0]})
		},
	}
}

func newUpdateCommand() *cobra.Command {
	var (
		name     string
		metadata []string
	)

	cmd := &cobra.Command{
		Use:   "update <plan-id>",
		Short: "Rename a plan or change its metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := common.Metadata(metadata)
			if err != nil {
				return err
			}
			return common.Call[stripe.Plan](cmd, stripe.UpdatePlan{ID: args[0], Name: name, Metadata: meta})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "Metadata as key=value (repeatable)")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <plan-id>",
		Short: "Delete a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Reference](cmd, stripe.DeletePlan{ID: args[0]})
		},
	}
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Collection[stripe.Plan]](cmd, stripe.ListPlans{ListParams: common.ListParams(cmd)})
		},
	}

	common.AddListFlags(cmd)

	return cmd
}
