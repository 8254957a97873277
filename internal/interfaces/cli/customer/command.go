package customer

import (
	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/internal/interfaces/cli/common"
	"github.com/orris-inc/stripegate/sdk/stripe"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers and their discounts",
	}

	cmd.AddCommand(
		newCreateCommand(),
		newGetCommand(),
		newUpdateCommand(),
		newDeleteCommand(),
		newListCommand(),
		newRemoveDiscountCommand(),
	)

	return cmd
}

func newCreateCommand() *cobra.Command {
	var (
		card        common.CardFlags
		coupon      string
		description string
		email       string
		plan        string
		trialEnd    string
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a customer, optionally with a card and a plan",
		Example: `  stripegate customer create --email jane@example.com --card-number 4242424242424242 --exp-month 12 --exp-year 2030`,
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := common.Metadata(metadata)
			if err != nil {
				return err
			}
			trial, err := common.ParseTime(trialEnd)
			if err != nil {
				return err
			}
			return common.Call[stripe.Customer](cmd, stripe.CreateCustomer{
				AccountBalance: common.Int64Flag(cmd, "account-balance"),
				Card:           card.Params(),
				Coupon:         coupon,
				Description:    description,
				Email:          email,
				Plan:           plan,
				Quantity:       common.IntFlag(cmd, "quantity"),
				TrialEnd:       trial,
				Metadata:       meta,
			})
		},
	}

	common.AddCardFlags(cmd, &card)
	cmd.Flags().Int64("account-balance", 0, "Starting account balance")
	cmd.Flags().StringVar(&coupon, "coupon", "", "Coupon to apply")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&plan, "plan", "", "Plan to subscribe the customer to")
	cmd.Flags().Int("quantity", 1, "Subscription quantity")
	cmd.Flags().StringVar(&trialEnd, "trial-end", "", "End of the trial (RFC 3339 or Unix seconds)")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "Metadata as key=value (repeatable)")

	return cmd
}

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <customer-id>",
		Short: "Retrieve a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Customer](cmd, stripe.GetCustomer{ID: args[0]})
		},
	}
}

func newUpdateCommand() *cobra.Command {
	var (
		card        common.CardFlags
		coupon      string
		defaultCard string
		description string
		email       string
		metadata    []string
	)

	cmd := &cobra.Command{
		Use:   "update <customer-id>",
		Short: "Update a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := common.Metadata(metadata)
			if err != nil {
				return err
			}
			return common.Call[stripe.Customer](cmd, stripe.UpdateCustomer{
				ID:             args[0],
				AccountBalance: common.Int64Flag(cmd, "account-balance"),
				Card:           card.Params(),
				Coupon:         coupon,
				DefaultCard:    defaultCard,
				Description:    description,
				Email:          email,
				Metadata:       meta,
			})
		},
	}

	common.AddCardFlags(cmd, &card)
	cmd.Flags().Int64("account-balance", 0, "Account balance")
	cmd.Flags().StringVar(&coupon, "coupon", "", "Coupon to apply")
	cmd.Flags().StringVar(&defaultCard, "default-card", "", "Card to charge by default")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringArrayVar(&metadata, "metadata", nil, "Metadata as key=value (repeatable)")

	return cmd
}

func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <customer-id>",
		Short: "Delete a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Reference](cmd, stripe.DeleteCustomer{ID: args[0]})
		},
	}
}

func newListCommand() *cobra.Command {
	var after string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := stripe.ListCustomers{ListParams: common.ListParams(cmd)}
			gt, err := common.ParseTime(after)
			if err != nil {
				return err
			}
			if gt != nil {
				req.Created = &stripe.DateRange{Gt: gt}
			}
			return common.Call[stripe.Collection[stripe.Customer]](cmd, req)
		},
	}

	common.AddListFlags(cmd)
	cmd.Flags().StringVar(&after, "created-after", "", "Only customers created after this time (RFC 3339 or Unix seconds)")

	return cmd
}

func newRemoveDiscountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-discount <customer-id>",
		Short: "Remove the customer's discount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Call[stripe.Reference](cmd, stripe.DeleteDiscount{CustomerID: args[0]})
		},
	}
}
