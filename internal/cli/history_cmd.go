package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/cli/formatter"
)

func newHistoryCmd(app *App) *cobra.Command {
	var limit int
	var failed bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently interpreted queries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Pipeline.History(context.Background(), limit, failed)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(entries))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum entries to show")
	cmd.Flags().BoolVar(&failed, "failed", false, "Show only failed requests")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print history as JSON")

	return cmd
}
