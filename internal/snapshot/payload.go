package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/jonesrussell/formsight/internal/domain"
)

type capturePayload struct {
	Text    string         `json:"text"`
	HasForm bool           `json:"has_form"`
	Fields  []captureField `json:"fields"`
}

type captureField struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Placeholder string `json:"placeholder"`
	Tag         string `json:"tag"`
}

// parseCapturePayload converts the JSON emitted by the in-page script into
// a snapshot. Fields with unrecognised tags are treated as plain inputs so
// a newer script never drops data on an older binary.
func parseCapturePayload(raw []byte) (*domain.PageSnapshot, error) {
	var payload capturePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("snapshot: parse capture payload: %w", err)
	}

	fields := make([]domain.FieldDescriptor, 0, len(payload.Fields))
	for _, f := range payload.Fields {
		fields = append(fields, domain.FieldDescriptor{
			Name:        f.Name,
			ID:          f.ID,
			Placeholder: f.Placeholder,
			Tag:         fieldTagFromString(f.Tag),
		})
	}

	return &domain.PageSnapshot{
		VisibleText:      payload.Text,
		Fields:           fields,
		HasFormContainer: payload.HasForm,
	}, nil
}

func fieldTagFromString(tag string) domain.FieldTag {
	switch tag {
	case "select":
		return domain.FieldTagSelect
	case "textarea":
		return domain.FieldTagTextarea
	case "contenteditable":
		return domain.FieldTagContentEditable
	default:
		return domain.FieldTagInput
	}
}
