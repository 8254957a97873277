package invoice

import (
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create, pay and preview invoices",
	}

	cmd.AddCommand(
		newCreateCommand(),
		newPayCommand(),
		newUpcomingCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <customer-id>",
		Short: "Invoice a customer's pending items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Invoice](cmd, stripe.CreateInvoice{
				Customer:       args[0],
				ApplicationFee: common.Int64Flag(cmd, "application-fee"),
			})
		},
	}

	cmd.Flags().Int64("application-fee", 0, "Application fee amount")

	return cmd
}

func newPayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <invoice-id>",
		Short: "Pay an open invoice now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Invoice](cmd, stripe.PayInvoice{ID: args[0]})
		},
	}
}

func newUpcomingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upcoming <customer-id>",
		Short: "Preview a customer's next invoice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Invoice](cmd, stripe.GetUpcomingInvoice{Customer: args[0]})
		},
	}
}
