package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/orchestrator"
)

// Handler routes protocol requests onto the pipeline.
type Handler struct {
	pipe     *orchestrator.Pipeline
	fallback bool
	logger   *slog.Logger
}

// NewHandler creates a Handler. fallback controls whether query requests
// may use the generation adapter by default.
func NewHandler(pipe *orchestrator.Pipeline, fallback bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{pipe: pipe, fallback: fallback, logger: logger}
}

// Handle processes one request and always produces a response; protocol
// errors are reported on the response, never as a Go error.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	h.logger.Info("handling request",
		slog.String("id", req.ID), slog.String("type", req.Type))

	switch req.Type {
	case TypeQuery:
		return h.handleQuery(ctx, req)
	case TypeSchema:
		return h.handleSchema(req)
	case TypeHistory:
		return h.handleHistory(ctx, req)
	case TypeStats:
		return h.handleStats(ctx, req)
	default:
		return errorResponse(req.ID, fmt.Sprintf("unknown request type: %q", req.Type))
	}
}

func (h *Handler) handleQuery(ctx context.Context, req Request) Response {
	if req.Query == "" {
		return errorResponse(req.ID, "no query provided")
	}

	qr := domain.NewQueryRequest(req.Query, req.Context, domain.Language(req.Language))
	res := h.pipe.Run(ctx, qr, orchestrator.Options{Fallback: h.fallback && !req.NoFallback})

	data := QueryData{
		Intent:          res.Intent,
		SQLPlan:         res.Plan,
		ResultSummary:   res.Summary,
		ChartSpec:       res.Chart,
		NoVisualization: res.NoVisualization,
		FailedStage:     string(res.FailedStage),
		Timings:         res.Timings,
	}
	if res.ResultSet != nil {
		data.Rows = res.ResultSet.Rows
	}

	resp := Response{
		ID:        req.ID,
		Type:      "query_response",
		Success:   res.Success,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
	if !res.Success {
		resp.Error = domain.NewStageError(res.FailedStage, errors.New(res.ErrorDetail)).Error()
	}
	return resp
}

func (h *Handler) handleSchema(req Request) Response {
	return Response{
		ID:        req.ID,
		Type:      "schema_response",
		Success:   true,
		Data:      h.pipe.Schema(),
		Timestamp: time.Now().UTC(),
	}
}

func (h *Handler) handleHistory(ctx context.Context, req Request) Response {
	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	entries, err := h.pipe.History(ctx, limit, req.FailedOnly)
	if err != nil {
		return errorResponse(req.ID, err.Error())
	}
	return Response{
		ID:        req.ID,
		Type:      "history_response",
		Success:   true,
		Data:      HistoryData{Queries: entries, TotalCount: len(entries)},
		Timestamp: time.Now().UTC(),
	}
}

func (h *Handler) handleStats(ctx context.Context, req Request) Response {
	stats, err := h.pipe.Stats(ctx)
	if err != nil {
		return errorResponse(req.ID, err.Error())
	}
	return Response{
		ID:        req.ID,
		Type:      "stats_response",
		Success:   true,
		Data:      stats,
		Timestamp: time.Now().UTC(),
	}
}

func errorResponse(id, msg string) Response {
	return Response{
		ID:        id,
		Type:      "error_response",
		Success:   false,
		Error:     msg,
		Timestamp: time.Now().UTC(),
	}
}
