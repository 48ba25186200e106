package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caseline/profilectl/pkg/answers"
)

func testSchema() *Schema {
	return &Schema{
		Pages: []Page{
			{
				Title: "Basics",
				Fields: []Field{
					{Key: "name", Label: "Full Name", Type: FieldTypeText, Required: true},
					{Key: "dob", Label: "Date of Birth", Type: FieldTypeDate},
				},
			},
			{
				Title: "Contact",
				Fields: []Field{
					{Key: "phone", Label: "Phone", Type: FieldTypeText},
					{Key: "emails", Label: "Emails", Type: FieldTypeMultiselect},
				},
			},
		},
	}
}

func TestSchema_FieldByKey(t *testing.T) {
	schema := testSchema()

	field := schema.FieldByKey("phone")
	require.NotNil(t, field)
	assert.Equal(t, "Phone", field.Label)

	assert.Nil(t, schema.FieldByKey("missing"))

	var nilSchema *Schema
	assert.Nil(t, nilSchema.FieldByKey("name"))
}

func TestSchema_FieldKeys_PageOrder(t *testing.T) {
	keys := testSchema().FieldKeys()
	assert.Equal(t, []string{"name", "dob", "phone", "emails"}, keys)
}

func TestData_Empty(t *testing.T) {
	var nilData *Data
	assert.True(t, nilData.Empty())
	assert.True(t, (&Data{}).Empty())
	assert.False(t, (&Data{BaseSubmissionID: "sub-1"}).Empty())
}

func TestData_Merged(t *testing.T) {
	data := &Data{
		BaseAnswers: answers.Map{"name": "Jane", "phone": "555-0100"},
		Overrides:   answers.Map{"phone": "555-0199"},
	}

	merged := data.Merged()

	assert.Equal(t, "Jane", merged["name"])
	assert.Equal(t, "555-0199", merged["phone"])
}

func TestData_ValidateOverrides(t *testing.T) {
	data := &Data{Schema: testSchema()}

	unknown := data.ValidateOverrides(answers.Map{
		"phone":   "555-0199",
		"zzz":     "?",
		"unknown": "?",
	})

	assert.Equal(t, []string{"unknown", "zzz"}, unknown)
}

func TestData_ValidateOverrides_NoSchema(t *testing.T) {
	data := &Data{}
	assert.Nil(t, data.ValidateOverrides(answers.Map{"anything": 1.0}))
}

func TestData_JSONWireNames(t *testing.T) {
	payload := `{
		"base_submission_id": "sub-42",
		"base_answers": {"name": "Jane"},
		"overrides": {"phone": "555-0199"},
		"hidden_fields": ["dob"],
		"merged_view": {"name": "Jane", "phone": "555-0199"},
		"schema_snapshot": {"pages": [{"title": "Basics", "fields": [{"key": "name", "label": "Full Name", "type": "text"}]}]}
	}`

	var data Data
	require.NoError(t, json.Unmarshal([]byte(payload), &data))

	assert.Equal(t, "sub-42", data.BaseSubmissionID)
	assert.Equal(t, "Jane", data.BaseAnswers["name"])
	assert.Equal(t, []string{"dob"}, data.HiddenFields)
	require.NotNil(t, data.Schema)
	assert.Equal(t, "Full Name", data.Schema.Pages[0].Fields[0].Label)
}
