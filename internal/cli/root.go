// Package cli wires the ops/demo commands around one constructed Agent. It
// stands in for the conversational layer, which is not part of this module.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/grocymate/core/internal/agent"
	"github.com/grocymate/core/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the grocymate CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "grocymate",
		Short: "GrocyMate grocery order engine",
		Long:  "Cart, pricing, and order lifecycle engine backing the GrocyMate assistant.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewAdvanceCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

// newAgent builds the process-wide Agent: .env, config, stores, catalog.
func newAgent() (*agent.Agent, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	return agent.New(cfg)
}
