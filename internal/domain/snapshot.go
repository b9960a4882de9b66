package domain

import "time"

// FieldTag identifies the kind of form control a field descriptor was
// derived from.
type FieldTag string

// Field tag constants.
const (
	FieldTagInput           FieldTag = "input"
	FieldTagSelect          FieldTag = "select"
	FieldTagTextarea        FieldTag = "textarea"
	FieldTagContentEditable FieldTag = "contenteditable"
)

// FieldDescriptor describes a single form control at capture time.
// Any of the identifying attributes may be empty; the field analyzer
// treats them uniformly.
type FieldDescriptor struct {
	Name        string   `json:"name,omitempty"`
	ID          string   `json:"id,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Tag         FieldTag `json:"tag"`
}

// PageSnapshot is a read-only view of one page at classification time.
// It is assembled by a DOM-observing collaborator (the snapshot collector
// or an external caller); the classification engine never touches a live
// page tree and never mutates a snapshot.
type PageSnapshot struct {
	// PageID identifies the page/tab for result caching. Callers that
	// omit it get one assigned at the API boundary.
	PageID string `json:"page_id,omitempty"`

	URL         string `json:"url"`
	VisibleText string `json:"visible_text"`

	// Fields lists the page's form controls in document order.
	Fields []FieldDescriptor `json:"fields,omitempty"`

	// HasFormContainer reports whether a structural <form> wrapper exists.
	// Loose fields without a container still count as form-like when
	// numerous enough.
	HasFormContainer bool `json:"has_form_container"`

	CapturedAt time.Time `json:"captured_at,omitempty"`
}
