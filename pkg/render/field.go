// Package render derives the read-view presentation of a profile card:
// per-field display values, override/staged highlighting, hidden-field
// masking, and value formatting.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caseline/profilectl/pkg/answers"
	"github.com/caseline/profilectl/pkg/profile"
	"github.com/caseline/profilectl/pkg/session"
)

// Mask is the fixed-width placeholder shown for hidden fields.
const Mask = "••••••••"

// emptyPlaceholder renders for nil, empty-string, and empty-list
// values.
const emptyPlaceholder = "—"

// DisplayValue is the value a field row shows: the edit-buffer value
// when the key is present there, else the merged view's.
func DisplayValue(key string, edited, merged answers.Map) interface{} {
	if v, ok := edited[key]; ok {
		return v
	}
	return merged[key]
}

// Row is one field's derived presentation state.
type Row struct {
	Key   string
	Label string
	// Value is the formatted display value, already masked if the
	// field is hidden and not revealed.
	Value string
	// Overridden means the display value differs from the base
	// submission's answer.
	Overridden bool
	// Staged means the last sync staged a change for this field.
	Staged bool
	Hidden bool
	// Highlight marks rows the UI emphasizes: overridden or staged.
	Highlight bool
}

// FieldRow derives one field's row from the loaded profile and the
// current session.
func FieldRow(field profile.Field, data *profile.Data, sess *session.Session) Row {
	display := DisplayValue(field.Key, sess.EditedFields, data.MergedView)
	base := data.BaseAnswers[field.Key]

	row := Row{
		Key:        field.Key,
		Label:      field.Label,
		Overridden: !answers.Equal(base, display),
		Staged:     sess.IsStaged(field.Key),
		Hidden:     sess.IsHidden(field.Key),
	}
	row.Highlight = row.Overridden || row.Staged

	if row.Hidden && !sess.IsRevealed(field.Key) {
		row.Value = Mask
	} else {
		row.Value = FormatValue(&field, display)
	}
	return row
}

// Section is one schema page's rows.
type Section struct {
	Title string
	Open  bool
	Rows  []Row
}

// Sections assembles the full card: one section per schema page, in
// page order. A profile without a schema yields nothing to render.
func Sections(data *profile.Data, sess *session.Session) []Section {
	if data == nil || data.Schema == nil {
		return nil
	}

	sections := make([]Section, 0, len(data.Schema.Pages))
	for i, page := range data.Schema.Pages {
		section := Section{
			Title: page.Title,
			Open:  sess.IsSectionOpen(i),
		}
		for _, field := range page.Fields {
			section.Rows = append(section.Rows, FieldRow(field, data, sess))
		}
		sections = append(sections, section)
	}
	return sections
}

// FormatValue renders an answer value for display. Dates format as
// "Jan 2, 2006", booleans as Yes/No, arrays join with ", ", table
// values summarize as a row count, and empty values render as an
// em-dash.
func FormatValue(field *profile.Field, value interface{}) string {
	if value == nil {
		return emptyPlaceholder
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case string:
		if v == "" {
			return emptyPlaceholder
		}
		if field != nil && field.Type == profile.FieldTypeDate {
			return formatDate(v)
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		if len(v) == 0 {
			return emptyPlaceholder
		}
		if field != nil && field.Type == profile.FieldTypeTable {
			return formatRowCount(len(v))
		}
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = FormatValue(nil, elem)
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		// No schema-defined rendering for loose objects; compact JSON
		// is at least unambiguous
		data, err := json.Marshal(v)
		if err != nil {
			return emptyPlaceholder
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatDate(raw string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	// Unparseable dates display as received
	return raw
}

func formatRowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
