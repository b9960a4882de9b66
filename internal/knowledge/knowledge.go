// Package knowledge holds reference data about US business entity types
// and the registration forms each state agency publishes. The data ships
// embedded in the binary so lookups never require a network call.
package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed entity_types.json
var entityTypesJSON []byte

//go:embed state_forms.json
var stateFormsJSON []byte

// EntityType describes a legal business structure.
type EntityType struct {
	Name         string   `json:"name"`
	Abbreviation string   `json:"abbreviation"`
	Aliases      []string `json:"aliases"`
	Description  string   `json:"description"`
}

// StateForm describes one registration form offered by a state agency.
type StateForm struct {
	FormID      string   `json:"form_id"`
	Name        string   `json:"name"`
	Agency      string   `json:"agency"`
	EntityTypes []string `json:"entity_types"`
	URL         string   `json:"url"`
}

// Base provides lookups over the embedded reference data.
type Base struct {
	entityTypes []EntityType
	stateForms  map[string][]StateForm
}

// New parses the embedded data files and returns a ready Base.
func New() (*Base, error) {
	var entityTypes []EntityType
	if err := json.Unmarshal(entityTypesJSON, &entityTypes); err != nil {
		return nil, fmt.Errorf("failed to parse entity types: %w", err)
	}

	stateForms := make(map[string][]StateForm)
	if err := json.Unmarshal(stateFormsJSON, &stateForms); err != nil {
		return nil, fmt.Errorf("failed to parse state forms: %w", err)
	}

	return &Base{
		entityTypes: entityTypes,
		stateForms:  stateForms,
	}, nil
}

// EntityTypes returns all known entity types.
func (b *Base) EntityTypes() []EntityType {
	out := make([]EntityType, len(b.entityTypes))
	copy(out, b.entityTypes)
	return out
}

// FormsByState returns the registration forms for a two-letter state code.
// The lookup is case-insensitive. The second return value reports whether
// the state has any forms on record.
func (b *Base) FormsByState(code string) ([]StateForm, bool) {
	forms, ok := b.stateForms[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, false
	}
	out := make([]StateForm, len(forms))
	copy(out, forms)
	return out, true
}

// States returns the sorted list of state codes with forms on record.
func (b *Base) States() []string {
	codes := make([]string, 0, len(b.stateForms))
	for code := range b.stateForms {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
