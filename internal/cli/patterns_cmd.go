package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/cli/formatter"
)

func newPatternsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the recognized query patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.Dim(
				fmt.Sprintf("catalog revision %d", app.Library.Revision())))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPatterns(app.Library.Lookup()))
			return nil
		},
	}
}
