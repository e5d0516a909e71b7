package classify

import (
	"math"
	"sort"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/config"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/pattern"
)

// Classifier scores free text against a pattern library snapshot and
// extracts parameters. It is a pure function over that snapshot and the
// lookup context: no side effects, deterministic output.
type Classifier struct {
	library *pattern.Library
	lookup  LookupContext
	cfg     config.ClassifierConfig
}

// New creates a Classifier over the given library snapshot.
func New(library *pattern.Library, lookup LookupContext, cfg config.ClassifierConfig) *Classifier {
	return &Classifier{library: library, lookup: lookup, cfg: cfg}
}

// Classify returns candidate intents ordered by descending confidence.
// Patterns with no required-trigger hit are excluded entirely. A pattern
// whose required slot cannot be extracted is capped below the confidence
// floor, since it cannot be synthesized into a valid query.
func (c *Classifier) Classify(text string, hint domain.Language) []domain.Intent {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	chartFamily := extractChartFamily(normalized)

	var intents []domain.Intent
	for order, def := range c.library.Lookup() {
		intent, ok := c.score(def, order, normalized, hint)
		if !ok {
			continue
		}
		if chartFamily != "" {
			intent.Parameters["chart"] = string(chartFamily)
		}
		intents = append(intents, intent)
	}

	sort.SliceStable(intents, func(i, j int) bool {
		if intents[i].Confidence != intents[j].Confidence {
			return intents[i].Confidence > intents[j].Confidence
		}
		if intents[i].RequiredSatisfied != intents[j].RequiredSatisfied {
			return intents[i].RequiredSatisfied > intents[j].RequiredSatisfied
		}
		return intents[i].CatalogOrder < intents[j].CatalogOrder
	})
	return intents
}

// score evaluates one definition. The boolean result is false when the
// required-trigger gate failed in every language.
func (c *Classifier) score(def pattern.Definition, order int, normalized string, hint domain.Language) (domain.Intent, bool) {
	langs := languageOrder(hint)

	gatePassed := false
	bestOptional := 0.0
	for _, lang := range langs {
		ts, ok := def.Triggers[lang]
		if !ok {
			continue
		}
		if !requiredGate(ts.Required, normalized) {
			continue
		}
		gatePassed = true
		if p := optionalProportion(ts.Optional, normalized); p > bestOptional {
			bestOptional = p
		}
	}
	if !gatePassed {
		return domain.Intent{}, false
	}

	params := map[string]string{}
	requiredTotal := 0
	requiredExtracted := 0
	slotsComplete := true
	for _, slot := range def.Slots {
		value, ok := c.extractSlot(slot, normalized)
		if ok {
			params[slot.Name] = value
			if slot.Required {
				requiredTotal++
				requiredExtracted++
			}
			continue
		}
		if slot.Required {
			requiredTotal++
			slotsComplete = false
			continue
		}
		if slot.Default != "" {
			params[slot.Name] = slot.Default
		}
	}

	slotScore := 1.0
	if requiredTotal > 0 {
		slotScore = float64(requiredExtracted) / float64(requiredTotal)
	}

	weightSum := c.cfg.RequiredWeight + c.cfg.OptionalWeight + c.cfg.SlotWeight
	raw := c.cfg.RequiredWeight + c.cfg.OptionalWeight*bestOptional + c.cfg.SlotWeight*slotScore
	confidence := raw / weightSum

	// An un-parameterizable match can never be usable, regardless of how
	// well its keywords matched.
	if !slotsComplete {
		ceiling := math.Max(c.cfg.ConfidenceFloor-0.05, 0)
		confidence = math.Min(confidence, ceiling)
	}
	confidence = math.Min(math.Max(confidence, 0), 1)

	return domain.Intent{
		PatternID:         def.ID,
		Confidence:        confidence,
		Parameters:        params,
		Source:            domain.SourceTemplate,
		RequiredSatisfied: requiredExtracted,
		CatalogOrder:      order,
	}, true
}

func requiredGate(groups [][]string, normalized string) bool {
	if len(groups) == 0 {
		return false
	}
	for _, group := range groups {
		hit := false
		for _, term := range group {
			if containsTerm(normalized, term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func optionalProportion(terms []string, normalized string) float64 {
	if len(terms) == 0 {
		return 1
	}
	matched := 0
	for _, term := range terms {
		if containsTerm(normalized, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

// languageOrder puts the hinted language first; both are always tried.
func languageOrder(hint domain.Language) []domain.Language {
	if hint == domain.LangEnglish {
		return []domain.Language{domain.LangEnglish, domain.LangPortuguese}
	}
	return []domain.Language{domain.LangPortuguese, domain.LangEnglish}
}
