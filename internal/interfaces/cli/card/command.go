package card

import (
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage a customer's stored cards",
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
	var card common.CardFlags

	cmd := &cobra.Command{
		Use:   "create <customer-id>",
		Short: "Add a card to a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Card](cmd, stripe.CreateCard{
				CustomerID: args[0],
				Card:       card.Params(),
			})
		},
	}

	common.AddCardFlags(cmd, &card)
	_ = cmd.MarkFlagRequired("card-number")

	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <customer-id> <card-id>",
		Short: "Retrieve a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Card](cmd, stripe.GetCard{CustomerID: args[0], CardID: args[1]})
		},
	}
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <customer-id> <card-id>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Reference](cmd, stripe.DeleteCard{CustomerID: args[0], CardID: args[1]})
		},
	}
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <customer-id>",
		Short: "List a customer's cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Collection[stripe.Card]](cmd, stripe.ListCards{
				ListParams: common.ListParams(cmd),
				CustomerID: args[0],
			})
		},
	}

	common.AddListFlags(cmd)

	return cmd
}
