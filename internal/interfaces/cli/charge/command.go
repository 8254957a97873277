package charge

import (
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charge",
		Short: "Create, capture, refund and list charges",
	}

	cmd.AddCommand(
		newCreateCommand(),
		newGetCommand(),
		newUpdateCommand(),
		newRefundCommand(),
		newCaptureCommand(),
		newListCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	var (
		currency    string
		customer    string
		card        string
		description string
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Charge a customer or a card token",
		Example: `  stripegate charge create --amount 1000 --card tok_visa
  stripegate charge create --amount 2500 --customer cus_123 --capture=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gw, err := common.Setup()
			if err != nil {
				return err
			}
			cur, err := common.Currency(cfg, currency)
			if err != nil {
				return err
			}
			meta, err := common.Metadata(metadata)
			if err != nil {
				return err
			}
			amount, _ := cmd.Flags().GetInt64("amount")

			return common.Send[stripe.Charge](cmd, gw, stripe.CreateCharge{
				Amount:         amount,
				Currency:       cur,
				Customer:       customer,
				Card:           card,
				Description:    description,
				Capture:        common.BoolFlag(cmd, "capture"),
				ApplicationFee: common.Int64Flag(cmd, "application-fee"),
				Metadata:       meta,
			})
		},
	}

	cmd.Flags().Int64("amount", 0, "Amount in the currency's smallest unit")
	cmd.Flags().StringVar(&currency, "currency", "", "Three-letter ISO currency code (defaults to the configured currency)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer to charge")
	cmd.Flags().StringVar(&card, "card", "", "Card token to charge")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().Bool("capture", true, "Capture immediately; false only authorizes")
	cmd.Flags().Int64("application-fee", 0, "Application fee amount")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "Metadata as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <charge-id>",
		Short: "Retrieve a charge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Charge](cmd, stripe.GetCharge{ChargeID: args[0]})
		},
	}
}

func newUpdateCommand() *cobra.Command {
	var (
		description string
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:   "update <charge-id>",
		Short: "Update a charge's description or metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := common.Metadata(metadata)
			if err != nil {
				return err
			}
			return common.Call[stripe.Charge](cmd, stripe.UpdateCharge{
				ChargeID:    args[0],
				Description: description,
				Metadata:    meta,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "Metadata as key=value (repeatable)")

	return cmd
}

func newRefundCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refund <charge-id>",
		Short: "Refund a charge, fully or partially",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Charge](cmd, stripe.RefundCharge{
				ChargeID:             args[0],
				Amount:               common.Int64Flag(cmd, "amount"),
				RefundApplicationFee: common.BoolFlag(cmd, "refund-application-fee"),
			})
		},
	}

	cmd.Flags().Int64("amount", 0, "Amount to refund (defaults to the whole charge)")
	cmd.Flags().Bool("refund-application-fee", false, "Also refund the application fee")

	return cmd
}

func newCaptureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture <charge-id>",
		Short: "Capture an authorized charge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Charge](cmd, stripe.CaptureCharge{
				ChargeID:       args[0],
				Amount:         common.Int64Flag(cmd, "amount"),
				ApplicationFee: common.Int64Flag(cmd, "application-fee"),
			})
		},
	}

	cmd.Flags().Int64("amount", 0, "Amount to capture (defaults to the authorized amount)")
	cmd.Flags().Int64("application-fee", 0, "Application fee amount")

	return cmd
}

func newListCommand() *cobra.Command {
	var (
		customer string
		after    string
		before   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List charges, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := stripe.ListCharges{
				ListParams: common.ListParams(cmd),
				Customer:   customer,
			}

			gt, err := common.ParseTime(after)
			if err != nil {
				return err
			}
			lt, err := common.ParseTime(before)
			if err != nil {
				return err
			}
			if gt != nil || lt != nil {
				req.Created = &stripe.DateRange{Gt: gt, Lt: lt}
			}

			return common.Call[stripe.Collection[stripe.Charge]](cmd, req)
		},
	}

	common.AddListFlags(cmd)
	cmd.Flags().StringVar(&customer, "customer", "", "Only charges for this customer")
	cmd.Flags().StringVar(&after, "created-after", "", "Only charges created after this time (RFC 3339 or Unix seconds)")
	cmd.Flags().StringVar(&before, "created-before", "", "Only charges created before this time (RFC 3339 or Unix seconds)")

	return cmd
}
