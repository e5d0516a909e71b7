package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/llm"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
)

var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// Synthesizer turns ranked intents into a validated QueryPlan, falling back
// to the generation adapter when no template candidate is usable.
type Synthesizer struct {
	library   *pattern.Library
	validator *Validator
	gen       llm.Client
	floor     float64
	logger    *slog.Logger
}

// New creates a Synthesizer. gen may be nil when the generation fallback is
// disabled.
func New(library *pattern.Library, validator *Validator, gen llm.Client, floor float64, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Synthesizer{
		library:   library,
		validator: validator,
		gen:       gen,
		floor:     floor,
		logger:    logger,
	}
}

// Synthesize produces a QueryPlan from the ranked intents. Template
// candidates above the confidence floor are tried in order; if none renders
// into a valid plan and fallback is enabled, the generation adapter is
// consulted. The returned durations cover the generation attempts, if any.
func (s *Synthesizer) Synthesize(ctx context.Context, req domain.QueryRequest, intents []domain.Intent, schema *domain.SchemaSummary, fallback bool) (*domain.QueryPlan, []time.Duration, error) {
	var lastErr error
	for i := range intents {
		intent := &intents[i]
		if intent.Confidence < s.floor {
			break // ranked descending, nothing further can clear the floor
		}
		plan, err := s.render(intent)
		if err != nil {
			s.logger.Warn("template candidate rejected",
				slog.String("pattern", intent.PatternID), slog.Any("error", err))
			lastErr = err
			continue
		}
		return plan, nil, nil
	}

	if !fallback || s.gen == nil {
		if lastErr != nil {
			return nil, nil, lastErr
		}
		return nil, nil, domain.ErrNoViableIntent
	}

	return s.generate(ctx, req, schema)
}

// render substitutes the intent's parameters into its pattern template and
// validates the result. Only pre-declared placeholders are ever filled;
// user text never reaches the query body directly.
func (s *Synthesizer) render(intent *domain.Intent) (*domain.QueryPlan, error) {
	def := s.findDefinition(intent.PatternID)
	if def == nil {
		return nil, fmt.Errorf("%w: unknown pattern %q", domain.ErrValidationFailed, intent.PatternID)
	}

	bindings := map[string]string{}
	sql := def.Template
	for _, name := range placeholders(def.Template) {
		slot := findSlot(def, name)
		if slot == nil {
			return nil, fmt.Errorf("%w: template references undeclared slot %q", domain.ErrValidationFailed, name)
		}
		value := intent.Param(name)
		if value == "" {
			value = slot.Default
		}
		if value == "" {
			return nil, fmt.Errorf("%w: missing value for slot %q", domain.ErrValidationFailed, name)
		}
		safe, err := sanitizeSlotValue(slot.Type, value)
		if err != nil {
			return nil, err
		}
		bindings[name] = safe
		sql = strings.ReplaceAll(sql, "{"+name+"}", safe)
	}

	validated, err := s.validator.Validate(sql)
	if err != nil {
		return nil, err
	}

	return &domain.QueryPlan{
		SQL:       validated,
		Bindings:  bindings,
		Risk:      domain.RiskReadOnly,
		Source:    domain.SourceTemplate,
		PatternID: intent.PatternID,
	}, nil
}

func (s *Synthesizer) generate(ctx context.Context, req domain.QueryRequest, schema *domain.SchemaSummary) (*domain.QueryPlan, []time.Duration, error) {
	resp, attempts, err := s.gen.GenerateSQL(ctx, req.RawText, schema)
	if err != nil {
		if errors.Is(err, llm.ErrTimeout) {
			return nil, attempts, domain.ErrGenerationTimeout
		}
		return nil, attempts, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}

	validated, err := s.validator.Validate(resp.SQL)
	if err != nil {
		// A generated plan that fails validation is discarded, never
		// executed and never persisted verbatim.
		s.logger.Warn("generated plan rejected", slog.Any("error", err))
		return nil, attempts, err
	}

	return &domain.QueryPlan{
		SQL:    validated,
		Risk:   domain.RiskReadOnly,
		Source: domain.SourceGenerated,
	}, attempts, nil
}

func (s *Synthesizer) findDefinition(id string) *pattern.Definition {
	defs := s.library.Lookup()
	for i := range defs {
		if defs[i].ID == id {
			return &defs[i]
		}
	}
	return nil
}

func findSlot(def *pattern.Definition, name string) *pattern.Slot {
	for i := range def.Slots {
		if def.Slots[i].Name == name {
			return &def.Slots[i]
		}
	}
	return nil
}

func placeholders(template string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		names = append(names, m[1])
	}
	return names
}

// sanitizeSlotValue checks a slot value against its declared type before it
// may be substituted into a template.
func sanitizeSlotValue(t pattern.SlotType, value string) (string, error) {
	switch t {
	case pattern.SlotInt, pattern.SlotYear:
		for _, r := range value {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("%w: %q is not a number", domain.ErrValidationFailed, value)
			}
		}
		return value, nil
	case pattern.SlotRegion, pattern.SlotModel:
		// Canonical values come from the known-value lists, but escape
		// quotes anyway so a bad lookup table cannot break out of the
		// string literal.
		return strings.ReplaceAll(value, "'", "''"), nil
	default:
		return "", fmt.Errorf("%w: unknown slot type %q", domain.ErrValidationFailed, t)
	}
}
