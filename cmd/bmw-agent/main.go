package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/classify"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/cli"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/cli/formatter"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/config"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/history"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/llm"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/mcp"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/orchestrator"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/synth"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/warehouse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	logger := config.NewLogger(cfg.Log, os.Stderr)

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		formatter.SetPlain()
	}

	ctx := context.Background()

	wh, err := warehouse.Open(ctx, cfg.Warehouse)
	if err != nil {
		return fmt.Errorf("connecting to warehouse: %w", err)
	}
	defer wh.Close()

	schema, err := wh.Schema(ctx)
	if err != nil {
		return fmt.Errorf("reading warehouse schema: %w", err)
	}

	histDB, err := history.OpenDB(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer histDB.Close()
	store := history.NewStore(histDB, cfg.History)

	library := pattern.BuiltinLibrary()
	classifier := classify.New(library, classify.DefaultLookupContext(), cfg.Classifier)
	validator := synth.NewValidator(schema, cfg.Warehouse.RowLimit)

	var gen llm.Client
	if cfg.LLM.Enabled {
		gen = llm.NewOllamaClient(cfg.LLM, llm.NewLogObserver(os.Stderr))
	}
	synthesizer := synth.New(library, validator, gen, cfg.Classifier.ConfidenceFloor, logger)

	pipe := orchestrator.New(classifier, synthesizer, wh, store, schema, logger)
	handler := mcp.NewHandler(pipe, cfg.LLM.Enabled, logger)

	app := &cli.App{
		Pipeline: pipe,
		Handler:  handler,
		Library:  library,
		Fallback: cfg.LLM.Enabled,
	}

	return cli.NewRootCmd(app).Execute()
}
