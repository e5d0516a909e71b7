package pattern

import "github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"

// SlotType identifies the extractor used to fill a parameter slot.
type SlotType string

const (
	SlotInt    SlotType = "int"
	SlotYear   SlotType = "year"
	SlotRegion SlotType = "region"
	SlotModel  SlotType = "model"
)

// Slot declares one parameter of a pattern's query template.
type Slot struct {
	Name     string
	Type     SlotType
	Required bool
	Default  string
}

// TriggerSet holds the trigger terms for one language. Required is a
// conjunction of synonym groups: every group must have at least one hit for
// the pattern to be considered at all. Optional terms only raise the score.
// All terms are stored normalized (lowercase, diacritics folded).
type TriggerSet struct {
	Required [][]string
	Optional []string
}

// Definition is one recognized query intent. Pure data: the classifier
// never special-cases individual patterns.
type Definition struct {
	ID       string
	Triggers map[domain.Language]TriggerSet
	Slots    []Slot

	// Template is the SQL rendered for this intent. Placeholders use
	// {name} syntax and only ever receive validated slot values.
	Template string

	Description string
}

// RequiredSlots returns the slots that must be extracted for the pattern
// to be synthesizable.
func (d *Definition) RequiredSlots() []Slot {
	var req []Slot
	for _, s := range d.Slots {
		if s.Required {
			req = append(req, s)
		}
	}
	return req
}

// Library is a versioned, read-only catalog of definitions. Safe for
// concurrent reads after construction.
type Library struct {
	revision int
	defs     []Definition
}

// NewLibrary builds a library from the given definitions.
func NewLibrary(revision int, defs []Definition) *Library {
	return &Library{revision: revision, defs: defs}
}

// Revision returns the catalog revision, so callers can cache compiled
// matchers keyed to it.
func (l *Library) Revision() int { return l.revision }

// Lookup returns the definitions in stable catalog order.
func (l *Library) Lookup() []Definition { return l.defs }
