package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseline/profilectl/pkg/answers"
	"github.com/caseline/profilectl/pkg/profile"
	"github.com/caseline/profilectl/pkg/session"
)

func cardProfile() *profile.Data {
	return &profile.Data{
		BaseSubmissionID: "sub-1",
		BaseAnswers: answers.Map{
			"name":    "Jane",
			"phone":   "555-0100",
			"ssn":     "123-45-6789",
			"smoker":  false,
			"dob":     "1992-04-17",
			"emails":  []interface{}{"jane@example.com", "j@example.com"},
			"history": []interface{}{map[string]interface{}{"year": "2020"}},
		},
		Overrides:    answers.Map{"phone": "555-0199"},
		HiddenFields: []string{"ssn"},
		MergedView: answers.Map{
			"name":    "Jane",
			"phone":   "555-0199",
			"ssn":     "123-45-6789",
			"smoker":  false,
			"dob":     "1992-04-17",
			"emails":  []interface{}{"jane@example.com", "j@example.com"},
			"history": []interface{}{map[string]interface{}{"year": "2020"}},
		},
		Schema: &profile.Schema{
			Pages: []profile.Page{
				{Title: "Basics", Fields: []profile.Field{
					{Key: "name", Label: "Name", Type: profile.FieldTypeText},
					{Key: "dob", Label: "Date of Birth", Type: profile.FieldTypeDate},
					{Key: "ssn", Label: "SSN", Type: profile.FieldTypeText},
					{Key: "smoker", Label: "Smoker", Type: profile.FieldTypeBoolean},
				}},
				{Title: "Contact", Fields: []profile.Field{
					{Key: "phone", Label: "Phone", Type: profile.FieldTypeText},
					{Key: "emails", Label: "Emails", Type: profile.FieldTypeMultiselect},
					{Key: "history", Label: "History", Type: profile.FieldTypeTable},
				}},
			},
		},
	}
}

func TestDisplayValue_EditBufferWins(t *testing.T) {
	edited := answers.Map{"phone": "555-0300"}
	merged := answers.Map{"phone": "555-0199", "name": "Jane"}

	assert.Equal(t, "555-0300", DisplayValue("phone", edited, merged))
	assert.Equal(t, "Jane", DisplayValue("name", edited, merged))
}

func TestFieldRow_OverriddenHighlight(t *testing.T) {
	data := cardProfile()
	sess := session.New("ent-1", data)

	phone := data.Schema.FieldByKey("phone")
	require.NotNil(t, phone)
	row := FieldRow(*phone, data, sess)

	assert.Equal(t, "555-0199", row.Value)
	assert.True(t, row.Overridden, "override differs from base answer")
	assert.True(t, row.Highlight)

	name := data.Schema.FieldByKey("name")
	row = FieldRow(*name, data, sess)
	assert.False(t, row.Overridden)
	assert.False(t, row.Highlight)
}

func TestFieldRow_StagedHighlight(t *testing.T) {
	data := cardProfile()
	sess := session.New("ent-1", data)
	sess.StagedChanges = []profile.StagedChange{{FieldKey: "name", NewValue: "Janet"}}
	sess.SetFieldValue("name", "Janet")

	row := FieldRow(*data.Schema.FieldByKey("name"), data, sess)

	assert.Equal(t, "Janet", row.Value)
	assert.True(t, row.Staged)
	assert.True(t, row.Highlight)
}

func TestFieldRow_HiddenMasked(t *testing.T) {
	data := cardProfile()
	sess := session.New("ent-1", data)

	row := FieldRow(*data.Schema.FieldByKey("ssn"), data, sess)
	assert.Equal(t, Mask, row.Value)
	assert.True(t, row.Hidden)

	sess.ToggleReveal("ssn")
	row = FieldRow(*data.Schema.FieldByKey("ssn"), data, sess)
	assert.Equal(t, "123-45-6789", row.Value)
}

func TestSections_PageOrderAndOpenState(t *testing.T) {
	data := cardProfile()
	sess := session.New("ent-1", data)
	sess.SetSectionOpen(1, false)

	sections := Sections(data, sess)

	require.Len(t, sections, 2)
	assert.Equal(t, "Basics", sections[0].Title)
	assert.True(t, sections[0].Open)
	assert.Equal(t, "Contact", sections[1].Title)
	assert.False(t, sections[1].Open)
	assert.Len(t, sections[1].Rows, 3)
}

func TestSections_NoSchema(t *testing.T) {
	sess := session.New("ent-1", &profile.Data{})
	assert.Nil(t, Sections(&profile.Data{}, sess))
}

func TestFormatValue_Booleans(t *testing.T) {
	assert.Equal(t, "Yes", FormatValue(nil, true))
	assert.Equal(t, "No", FormatValue(nil, false))
}

func TestFormatValue_Empty(t *testing.T) {
	assert.Equal(t, "—", FormatValue(nil, nil))
	assert.Equal(t, "—", FormatValue(nil, ""))
	assert.Equal(t, "—", FormatValue(nil, []interface{}{}))
}

func TestFormatValue_Dates(t *testing.T) {
	dateField := &profile.Field{Type: profile.FieldTypeDate}

	assert.Equal(t, "Apr 17, 1992", FormatValue(dateField, "1992-04-17"))
	assert.Equal(t, "Apr 17, 1992", FormatValue(dateField, "1992-04-17T00:00:00Z"))
	// Unparseable input falls back to the raw string
	assert.Equal(t, "spring 1992", FormatValue(dateField, "spring 1992"))
	// Non-date fields never date-format
	assert.Equal(t, "1992-04-17", FormatValue(&profile.Field{Type: profile.FieldTypeText}, "1992-04-17"))
}

func TestFormatValue_ArrayJoin(t *testing.T) {
	value := []interface{}{"jane@example.com", "j@example.com"}
	assert.Equal(t, "jane@example.com, j@example.com", FormatValue(nil, value))
}

func TestFormatValue_TableRowCount(t *testing.T) {
	tableField := &profile.Field{Type: profile.FieldTypeTable}
	one := []interface{}{map[string]interface{}{"year": "2020"}}
	two := []interface{}{map[string]interface{}{}, map[string]interface{}{}}

	assert.Equal(t, "1 row", FormatValue(tableField, one))
	assert.Equal(t, "2 rows", FormatValue(tableField, two))
}

func TestFormatValue_Numbers(t *testing.T) {
	assert.Equal(t, "3000", FormatValue(nil, 3000.0))
	assert.Equal(t, "2.5", FormatValue(nil, 2.5))
}
