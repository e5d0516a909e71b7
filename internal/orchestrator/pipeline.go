package orchestrator

import (
	"context"
	"log/slog"
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/classify"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/history"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/synth"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/viz"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/warehouse"
)

// Pipeline drives a request through classification, synthesis, execution
// and visualization, recording every terminal outcome to history.
type Pipeline struct {
	classifier  *classify.Classifier
	synthesizer *synth.Synthesizer
	executor    warehouse.Executor
	store       *history.Store
	schema      *domain.SchemaSummary
	logger      *slog.Logger
}

// Options adjusts how a single request is processed.
type Options struct {
	// Fallback enables the generation adapter when no template candidate
	// clears the confidence floor.
	Fallback bool
}

// New creates a Pipeline. The schema snapshot is taken at startup; the
// dataset is fixed, so it does not change under a running agent.
func New(
	classifier *classify.Classifier,
	synthesizer *synth.Synthesizer,
	executor warehouse.Executor,
	store *history.Store,
	schema *domain.SchemaSummary,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		classifier:  classifier,
		synthesizer: synthesizer,
		executor:    executor,
		store:       store,
		schema:      schema,
		logger:      logger,
	}
}

// Run processes one request to a terminal state. It never returns an error:
// failures are encoded on the result, which is appended to history either
// way. A request that fails at a stage keeps everything produced by the
// stages before it.
func (p *Pipeline) Run(ctx context.Context, req domain.QueryRequest, opts Options) *domain.PipelineResult {
	res := &domain.PipelineResult{
		RequestID: req.ID,
		RawText:   req.RawText,
		CreatedAt: req.CreatedAt,
	}

	p.logger.Info("request received",
		slog.String("request_id", req.ID),
		slog.String("stage", string(domain.StageReceived)),
		slog.String("text", req.RawText))

	// Classifying.
	start := time.Now()
	intents := p.classifier.Classify(req.RawText, req.Language)
	p.recordTiming(res, domain.StageClassifying, 1, time.Since(start))
	if len(intents) > 0 {
		top := intents[0]
		res.Intent = &top
	}

	// Synthesizing.
	start = time.Now()
	plan, genDurations, err := p.synthesizer.Synthesize(ctx, req, intents, p.schema, opts.Fallback)
	elapsed := time.Since(start)
	if len(genDurations) > 0 {
		for i, d := range genDurations {
			p.recordTiming(res, domain.StageSynthesizing, i+1, d)
		}
	} else {
		p.recordTiming(res, domain.StageSynthesizing, 1, elapsed)
	}
	if err != nil {
		return p.fail(ctx, res, domain.StageSynthesizing, err)
	}
	res.Plan = plan
	res.Intent = p.resolveIntent(intents, plan)

	// Executing.
	start = time.Now()
	rs, err := p.executor.Execute(ctx, plan)
	p.recordTiming(res, domain.StageExecuting, 1, time.Since(start))
	if err != nil {
		return p.fail(ctx, res, domain.StageExecuting, err)
	}
	res.ResultSet = rs
	res.Summary = &domain.ResultSummary{Columns: rs.Columns, RowCount: rs.RowCount()}

	// Visualizing. The selector is total: a nil spec is the valid
	// "no chart applies" outcome, not a failure.
	start = time.Now()
	chart, ok := viz.Select(rs, res.Intent)
	p.recordTiming(res, domain.StageVisualizing, 1, time.Since(start))
	res.Chart = chart
	res.NoVisualization = !ok

	res.Success = true
	requestsTotal.WithLabelValues("success", string(domain.StageCompleted)).Inc()
	p.append(ctx, res)

	p.logger.Info("request completed",
		slog.String("request_id", req.ID),
		slog.Int("rows", res.Summary.RowCount),
		slog.Bool("chart", chart != nil))
	return res
}

// History returns recent terminal results, optionally only failed ones.
func (p *Pipeline) History(ctx context.Context, limit int, failedOnly bool) ([]*domain.PipelineResult, error) {
	if failedOnly {
		return p.store.ListBySuccess(ctx, false, limit)
	}
	return p.store.ListRecent(ctx, limit)
}

// Schema returns the warehouse schema snapshot the pipeline works over.
func (p *Pipeline) Schema() *domain.SchemaSummary {
	return p.schema
}

// Stats summarizes the history log by outcome.
type Stats struct {
	TotalQueries      int `json:"total_queries"`
	SuccessfulQueries int `json:"successful_queries"`
	FailedQueries     int `json:"failed_queries"`
}

// Stats returns aggregate counts over the history log.
func (p *Pipeline) Stats(ctx context.Context) (*Stats, error) {
	total, err := p.store.Count(ctx)
	if err != nil {
		return nil, err
	}
	succeeded, err := p.store.CountBySuccess(ctx, true)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalQueries:      total,
		SuccessfulQueries: succeeded,
		FailedQueries:     total - succeeded,
	}, nil
}

// resolveIntent picks the intent the plan was actually synthesized from.
// Generated plans get a synthetic intent so history still records how the
// answer was produced.
func (p *Pipeline) resolveIntent(intents []domain.Intent, plan *domain.QueryPlan) *domain.Intent {
	if plan.PatternID != "" {
		for i := range intents {
			if intents[i].PatternID == plan.PatternID {
				chosen := intents[i]
				return &chosen
			}
		}
	}
	gen := &domain.Intent{Source: domain.SourceGenerated}
	if len(intents) > 0 {
		if chart := intents[0].Param("chart"); chart != "" {
			gen.Parameters = map[string]string{"chart": chart}
		}
	}
	return gen
}

func (p *Pipeline) fail(ctx context.Context, res *domain.PipelineResult, stage domain.Stage, err error) *domain.PipelineResult {
	res.Success = false
	res.FailedStage = stage
	res.ErrorDetail = err.Error()

	requestsTotal.WithLabelValues("failure", string(stage)).Inc()
	p.append(ctx, res)

	p.logger.Warn("request failed",
		slog.String("request_id", res.RequestID),
		slog.Any("error", domain.NewStageError(stage, err)))
	return res
}

// append records the terminal result. The write is detached from the
// request context so an abandoned request is still recorded.
func (p *Pipeline) append(ctx context.Context, res *domain.PipelineResult) {
	if p.store == nil {
		return
	}
	appendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.store.Append(appendCtx, res); err != nil {
		p.logger.Error("appending history entry",
			slog.String("request_id", res.RequestID),
			slog.Any("error", err))
	}
}

func (p *Pipeline) recordTiming(res *domain.PipelineResult, stage domain.Stage, attempt int, d time.Duration) {
	res.Timings = append(res.Timings, domain.StageTiming{Stage: stage, Attempt: attempt, Duration: d})
	stageDurationSeconds.WithLabelValues(string(stage)).Observe(d.Seconds())
}
