package cli

import (
	"testing"
)

func TestParseFieldAssignment_PlainString(t *testing.T) {
	key, value, err := parseFieldAssignment("phone=555-0199")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "phone" {
		t.Errorf("expected key 'phone', got %q", key)
	}
	if value != "555-0199" {
		t.Errorf("expected raw string value, got %#v", value)
	}
}

func TestParseFieldAssignment_JSONValues(t *testing.T) {
	cases := []struct {
		arg  string
		want interface{}
	}{
		{"smoker=false", false},
		{"age=34", 34.0},
		{"note=null", nil},
		{`name="Janet"`, "Janet"},
	}

	for _, tc := range cases {
		_, value, err := parseFieldAssignment(tc.arg)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.arg, err)
		}
		if value != tc.want {
			t.Errorf("%s: expected %#v, got %#v", tc.arg, tc.want, value)
		}
	}
}

func TestParseFieldAssignment_JSONArray(t *testing.T) {
	_, value, err := parseFieldAssignment(`emails=["a@x.com","b@x.com"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	list, ok := value.([]interface{})
	if !ok {
		t.Fatalf("expected array, got %#v", value)
	}
	if len(list) != 2 || list[0] != "a@x.com" {
		t.Errorf("unexpected array contents: %#v", list)
	}
}

func TestParseFieldAssignment_ValueWithEquals(t *testing.T) {
	// Only the first '=' splits
	_, value, err := parseFieldAssignment("note=a=b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "a=b" {
		t.Errorf("expected 'a=b', got %#v", value)
	}
}

func TestParseFieldAssignment_Invalid(t *testing.T) {
	for _, arg := range []string{"noequals", "=value"} {
		if _, _, err := parseFieldAssignment(arg); err == nil {
			t.Errorf("expected error for %q", arg)
		}
	}
}
