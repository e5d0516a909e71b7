package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/cli/formatter"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/orchestrator"
)

func newAskCmd(app *App) *cobra.Command {
	var noFallback bool
	var asJSON bool
	var lang string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question in Portuguese or English",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			req := domain.NewQueryRequest(text, "", domain.Language(lang))

			res := app.Pipeline.Run(context.Background(), req, orchestrator.Options{
				Fallback: app.Fallback && !noFallback,
			})

			if asJSON {
				out, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding result: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noFallback, "no-fallback", false, "Never use the generation adapter for this question")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw result as JSON")
	cmd.Flags().StringVar(&lang, "lang", "", "Language hint (pt or en)")

	return cmd
}
