package lexicon

import "testing"

func ptrInt(n int) *int { return &n }
func ptrFloat(f float64) *float64 { return &f }

func profileSchema() *Schema {
	return &Schema{
		Type:     "object",
		Required: []string{"handle", "profile"},
		Properties: map[string]*Schema{
			"handle": {Type: "string", MaxLength: ptrInt(253)},
			"age":    {Type: "integer", Minimum: ptrFloat(0), Maximum: ptrFloat(150)},
			"profile": {
				Type:     "object",
				Required: []string{"email"},
				Properties: map[string]*Schema{
					"email": {Type: "string", MinLength: ptrInt(3)},
				},
			},
		},
	}
}

func TestValidateValidObjectPasses(t *testing.T) {
	value := map[string]any{
		"handle":  "alice.example.com",
		"age":     float64(30),
		"profile": map[string]any{"email": "alice@example.com"},
	}
	if errs := Validate(profileSchema(), value); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateReportsMissingRequiredFields(t *testing.T) {
	value := map[string]any{"age": float64(10)}
	errs := Validate(profileSchema(), value)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors (handle, profile missing), got %d: %v", len(errs), errs)
	}
}

func TestValidateReportsNestedRequiredField(t *testing.T) {
	value := map[string]any{
		"handle":  "alice.example.com",
		"profile": map[string]any{},
	}
	errs := Validate(profileSchema(), value)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "profile.email: required property is missing" {
		t.Errorf("Error() = %q", errs[0].Error())
	}
}

func TestValidateIntegerRange(t *testing.T) {
	schema := &Schema{Type: "integer", Minimum: ptrFloat(0), Maximum: ptrFloat(10)}
	if errs := Validate(schema, float64(20)); len(errs) != 1 {
		t.Errorf("expected 1 error for an out-of-range integer, got %d", len(errs))
	}
	if errs := Validate(schema, float64(5)); len(errs) != 0 {
		t.Errorf("expected no errors for an in-range integer, got %v", errs)
	}
}

func TestValidateArrayItems(t *testing.T) {
	schema := &Schema{Type: "array", Items: &Schema{Type: "string", MaxLength: ptrInt(3)}}
	errs := Validate(schema, []any{"ok", "toolong"})
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Error() != "[1]: string longer than maxLength 3" {
		t.Errorf("Error() = %q", errs[0].Error())
	}
}

func TestValidateStringEnum(t *testing.T) {
	schema := &Schema{Type: "string", Enum: []any{"a", "b", "c"}}
	if errs := Validate(schema, "d"); len(errs) != 1 {
		t.Errorf("expected 1 error for a value outside the enum, got %d", len(errs))
	}
}

func TestValidateWrongType(t *testing.T) {
	schema := &Schema{Type: "integer"}
	if errs := Validate(schema, "not a number"); len(errs) != 1 {
		t.Errorf("expected 1 error for a type mismatch, got %d", len(errs))
	}
}
