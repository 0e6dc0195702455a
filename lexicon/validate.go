package lexicon

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// Validate checks value against schema, returning every violation found.
// A nil/empty result means value is valid. Validation never short-circuits
// across the properties of a single object, or the items of a single
// array: every sibling is checked so the caller sees every problem at
// once.
func Validate(schema *Schema, value any) []*ValidationError {
	if schema == nil {
		return leaf("lexicon: schema is nil")
	}

	switch schema.Type {
	case "null":
		if value != nil {
			return leaf("expected null")
		}
		return nil

	case "boolean":
		if _, ok := value.(bool); !ok {
			return leaf("expected boolean")
		}
		return nil

	case "integer":
		return validateInteger(schema, value)

	case "string":
		return validateString(schema, value)

	case "object":
		return validateObject(schema, value)

	case "array":
		return validateArray(schema, value)

	case "unknown", "bytes", "cid-link", "blob":
		return nil

	case "const":
		return nil

	default:
		return leaf(fmt.Sprintf("unrecognized schema type %q", schema.Type))
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// validateInteger, validateString: leaf nodes report at most one error,
// even when more than one constraint fails — the first violated
// constraint, in a fixed order, is reported.
func validateInteger(schema *Schema, value any) []*ValidationError {
	f, ok := asFloat(value)
	if !ok {
		return leaf("expected integer")
	}
	if f != float64(int64(f)) {
		return leaf("expected integer")
	}
	if schema.Minimum != nil && f < *schema.Minimum {
		return leaf(fmt.Sprintf("value %v is below minimum %v", f, *schema.Minimum))
	}
	if schema.Maximum != nil && f > *schema.Maximum {
		return leaf(fmt.Sprintf("value %v is above maximum %v", f, *schema.Maximum))
	}
	if len(schema.Enum) > 0 && !enumContains(schema.Enum, f) {
		return leaf("value is not one of the allowed enum values")
	}
	return nil
}

func validateString(schema *Schema, value any) []*ValidationError {
	s, ok := value.(string)
	if !ok {
		return leaf("expected string")
	}
	length := utf8.RuneCountInString(s)
	if schema.MinLength != nil && length < *schema.MinLength {
		return leaf(fmt.Sprintf("string shorter than minLength %d", *schema.MinLength))
	}
	if schema.MaxLength != nil && length > *schema.MaxLength {
		return leaf(fmt.Sprintf("string longer than maxLength %d", *schema.MaxLength))
	}
	if schema.MaxGraphemes != nil {
		if graphemeCount(s) > *schema.MaxGraphemes {
			return leaf(fmt.Sprintf("string longer than maxGraphemes %d", *schema.MaxGraphemes))
		}
	}
	if len(schema.Enum) > 0 && !enumContains(schema.Enum, s) {
		return leaf("value is not one of the allowed enum values")
	}
	return nil
}

func graphemeCount(s string) int {
	seg := graphemes.FromString(s)
	n := 0
	for seg.Next() {
		n++
	}
	return n
}

func enumContains(enum []any, v any) bool {
	for _, e := range enum {
		if e == v {
			return true
		}
		if ef, ok := asFloat(e); ok {
			if vf, ok := asFloat(v); ok && ef == vf {
				return true
			}
		}
	}
	return false
}

func validateObject(schema *Schema, value any) []*ValidationError {
	obj, ok := value.(map[string]any)
	if !ok {
		return leaf("expected object")
	}

	var errs []*ValidationError
	for _, req := range schema.Required {
		if _, present := obj[req]; !present {
			errs = append(errs, &ValidationError{Path: []string{req}, Message: "required property is missing"})
		}
	}

	// Declared properties are validated in a stable (sorted) order so
	// diagnostics are reproducible; unknown properties are accepted
	// without comment.
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v, present := obj[name]
		if !present {
			continue
		}
		sub := Validate(schema.Properties[name], v)
		errs = append(errs, withPrefix(sub, name)...)
	}

	return errs
}

func validateArray(schema *Schema, value any) []*ValidationError {
	arr, ok := value.([]any)
	if !ok {
		return leaf("expected array")
	}

	var errs []*ValidationError
	if schema.MinLength != nil && len(arr) < *schema.MinLength {
		errs = append(errs, &ValidationError{Message: fmt.Sprintf("array shorter than minLength %d", *schema.MinLength)})
	}
	if schema.MaxLength != nil && len(arr) > *schema.MaxLength {
		errs = append(errs, &ValidationError{Message: fmt.Sprintf("array longer than maxLength %d", *schema.MaxLength)})
	}

	if schema.Items != nil {
		for i, item := range arr {
			sub := Validate(schema.Items, item)
			errs = append(errs, withPrefix(sub, fmt.Sprintf("[%d]", i))...)
		}
	}

	return errs
}
