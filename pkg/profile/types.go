// Package profile defines the profile-card data model: the base form
// submission, persisted field overrides, hidden-field flags, and the
// schema snapshot the card is rendered against.
package profile

import (
	"sort"

	"github.com/caseline/profilectl/pkg/answers"
)

// FieldType enumerates the form field types the render layer formats.
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeTextarea    FieldType = "textarea"
	FieldTypeNumber      FieldType = "number"
	FieldTypeBoolean     FieldType = "boolean"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiselect FieldType = "multiselect"
	FieldTypeTable       FieldType = "table"
)

// Field is one question in a form schema. Key is unique within the
// schema.
type Field struct {
	Key        string                 `json:"key"`
	Label      string                 `json:"label"`
	Type       FieldType              `json:"type"`
	Required   bool                   `json:"required,omitempty"`
	Options    []string               `json:"options,omitempty"`
	Validation map[string]interface{} `json:"validation,omitempty"`
	HelpText   string                 `json:"help_text,omitempty"`
	ShowIf     map[string]interface{} `json:"show_if,omitempty"`
	Columns    []string               `json:"columns,omitempty"`
	MinRows    int                    `json:"min_rows,omitempty"`
	MaxRows    int                    `json:"max_rows,omitempty"`
}

// Page groups fields under an optional title.
type Page struct {
	Title  string  `json:"title,omitempty"`
	Fields []Field `json:"fields"`
}

// Schema is the immutable form snapshot associated with a submission.
// The editor never mutates it.
type Schema struct {
	Pages []Page `json:"pages"`
}

// FieldByKey returns the field with the given key, or nil if the schema
// has no such field.
func (s *Schema) FieldByKey(key string) *Field {
	if s == nil {
		return nil
	}
	for pi := range s.Pages {
		for fi := range s.Pages[pi].Fields {
			if s.Pages[pi].Fields[fi].Key == key {
				return &s.Pages[pi].Fields[fi]
			}
		}
	}
	return nil
}

// FieldKeys returns every field key in page order.
func (s *Schema) FieldKeys() []string {
	if s == nil {
		return nil
	}
	var keys []string
	for _, page := range s.Pages {
		for _, field := range page.Fields {
			keys = append(keys, field.Key)
		}
	}
	return keys
}

// StagedChange is one field update discovered by syncing against a
// newer submission, pending acceptance via save.
type StagedChange struct {
	FieldKey string      `json:"field_key"`
	OldValue interface{} `json:"old_value"`
	NewValue interface{} `json:"new_value"`
}

// Data is the aggregate the server returns for one entity's profile
// card. MergedView is server-computed and treated as the authoritative
// display baseline; the client only recomputes the overlay transiently
// during local edits.
type Data struct {
	BaseSubmissionID string      `json:"base_submission_id,omitempty"`
	BaseAnswers      answers.Map `json:"base_answers"`
	Overrides        answers.Map `json:"overrides"`
	HiddenFields     []string    `json:"hidden_fields"`
	MergedView       answers.Map `json:"merged_view"`
	Schema           *Schema     `json:"schema_snapshot,omitempty"`
}

// Empty reports whether no submission exists yet for the entity.
func (d *Data) Empty() bool {
	return d == nil || d.BaseSubmissionID == ""
}

// Merged recomputes base answers overlaid with overrides. Used for
// cross-checking and local display math; the server's MergedView stays
// the source of truth for what the card showed before editing began.
func (d *Data) Merged() answers.Map {
	if d == nil {
		return answers.Map{}
	}
	return answers.MergedView(d.BaseAnswers, d.Overrides)
}

// ValidateOverrides reports override keys that do not exist in the
// schema snapshot. The merge engine tolerates unknown keys; the
// persistence layer uses this to enforce the schema invariant before a
// save.
func (d *Data) ValidateOverrides(overrides answers.Map) []string {
	if d == nil || d.Schema == nil {
		return nil
	}
	known := make(map[string]bool)
	for _, key := range d.Schema.FieldKeys() {
		known[key] = true
	}

	var unknown []string
	for key := range overrides {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
