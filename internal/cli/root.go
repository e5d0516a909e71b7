package cli

import (
	"github.com/spf13/cobra"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/mcp"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/orchestrator"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
)

// App holds the wired services the CLI commands run against.
type App struct {
	Pipeline *orchestrator.Pipeline
	Handler  *mcp.Handler
	Library  *pattern.Library

	// Fallback is the server-wide default for the generation adapter.
	Fallback bool
}

// NewRootCmd creates the top-level "bmw-agent" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "bmw-agent",
		Short: "Natural-language analytics over the BMW sales warehouse",
	}

	root.AddCommand(
		newAskCmd(app),
		newSchemaCmd(app),
		newHistoryCmd(app),
		newPatternsCmd(app),
		newServeCmd(app),
	)

	return root
}
