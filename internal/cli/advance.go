package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grocymate/core/internal/orders"
)

// NewAdvanceCommand creates the advance command: move an order one step
// along its status lifecycle.
func NewAdvanceCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "advance <order-id>",
		Short: "Advance an order to its next status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAgent()
			if err != nil {
				return err
			}
			o, err := a.Orders.Advance(args[0])
			switch {
			case errors.Is(err, orders.ErrNotFound):
				return fmt.Errorf("order %s not found", args[0])
			case errors.Is(err, orders.ErrAlreadyDelivered):
				return fmt.Errorf("order %s is already delivered", args[0])
			case err != nil:
				return err
			}
			fmt.Printf("order %s is now %s\n", o.OrderID, o.Status)
			return nil
		},
	}
}
