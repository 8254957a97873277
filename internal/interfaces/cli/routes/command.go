package routes

import (
	"fmt"
	"reflect"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orris-inc/stripegate/sdk/stripe"
)

// NewCommand prints the request catalog: every operation with its verb and path.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List every supported API operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "OPERATION\tMETHOD\tPATH")
			for _, req := range stripe.Catalog() {
				route := req.Route()
				fmt.Fprintf(w, "%s\t%s\t%s\n", reflect.TypeOf(req).Name(), route.Method, route.Path)
			}
			return w.Flush()
		},
	}
}
