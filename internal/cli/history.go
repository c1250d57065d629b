package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHistoryCommand creates the history command: list a customer's orders
// newest first.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <email>",
		Short: "List a customer's orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAgent()
			if err != nil {
				return err
			}
			all := a.Orders.ByCustomer(args[0])
			if len(all) == 0 {
				fmt.Println("no orders")
				return nil
			}
			for _, o := range all {
				fmt.Printf("%s  %s  %-16s  Rs.%d  (%d items)\n",
					o.OrderID, o.Timestamp.Format("2006-01-02 15:04"), o.Status, o.Total, len(o.Items))
			}
			return nil
		},
	}
}
