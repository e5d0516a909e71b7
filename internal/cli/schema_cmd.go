package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/cli/formatter"
)

func newSchemaCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Show the warehouse tables and analytics views",
		RunE: func(cmd *cobra.Command, args []string) error {
			schema := app.Pipeline.Schema()

			if asJSON {
				out, err := json.MarshalIndent(schema, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding schema: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchema(schema))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the schema as JSON")

	return cmd
}
