package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCatalogCommand creates the catalog command: list categories, or the
// items of one category.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [category]",
		Short: "Show catalog categories or one category's items",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAgent()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				for _, name := range a.Catalog.CategoryNames() {
					fmt.Println(name)
				}
				return nil
			}
			cat, ok := a.Catalog.Category(args[0])
			if !ok {
				return fmt.Errorf("category %q not found", args[0])
			}
			fmt.Printf("%s:\n", cat.Name)
			for _, it := range cat.Items {
				fmt.Printf("  %-10s %-30s Rs.%-6d %s %s\n", it.ID, it.Name, it.Price, it.Brand, it.Size)
			}
			return nil
		},
	}
}
