package grid

import (
	"fmt"
	"strings"
)

// FieldKind is the wire type expected for a schema field.
type FieldKind string

const (
	KindString FieldKind = "string"
	KindNumber FieldKind = "number"
	KindBool   FieldKind = "bool"
	KindDate   FieldKind = "date" // YYYY-MM-DD string
)

// FieldSpec describes one column of a grid resource.
type FieldSpec struct {
	Name     string
	Kind     FieldKind
	Required bool
	// OmitIfEmpty drops the field from update payloads when it is empty
	// (e.g. a password column that should only be sent when explicitly set).
	OmitIfEmpty bool
}

// Schema describes the editable fields of one grid resource. Each editor
// screen declares its schema once; batch payloads are validated against it at
// the boundary instead of trusting ad hoc row shapes.
type Schema struct {
	Resource string
	Fields   []FieldSpec
	// RemoveAddedOnDelete is the per-resource policy for delete-flagging a
	// never-persisted row: drop it immediately (true) or keep it until save.
	RemoveAddedOnDelete bool
}

// ToggleOptions derives the delete-flag options for this resource from its
// declared policy plus the caller's clean predicate.
func (s Schema) ToggleOptions(pred CleanPredicate) ToggleOptions {
	return ToggleOptions{ShouldBeClean: pred, RemoveAddedRow: s.RemoveAddedOnDelete}
}

// ToggleDeleted applies the delete checkbox to the row with the given id under
// this resource's policy.
func (s Schema) ToggleDeleted(rows []TrackedRow, rowID int64, checked bool, pred CleanPredicate) []TrackedRow {
	return ToggleDeletedStatus(rows, rowID, checked, s.ToggleOptions(pred))
}

// Field returns the descriptor for the named field.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// Validate checks the given field values against the schema: required fields
// must be present and non-empty, and every value must match its declared kind.
// Unknown fields are rejected so that client-only bookkeeping never leaks into
// a payload.
func (s Schema) Validate(fields map[string]any) error {
	for name := range fields {
		if _, ok := s.Field(name); !ok {
			return fmt.Errorf("%s: unknown field %q", s.Resource, name)
		}
	}
	for _, f := range s.Fields {
		v, present := fields[f.Name]
		if f.Required && (!present || isEmpty(v)) {
			return fmt.Errorf("%s: field %q is required", s.Resource, f.Name)
		}
		if present && v != nil {
			if err := checkKind(f, v); err != nil {
				return fmt.Errorf("%s: %w", s.Resource, err)
			}
		}
	}
	return nil
}

func checkKind(f FieldSpec, v any) error {
	switch f.Kind {
	case KindString, KindDate:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("field %q expects a string, got %T", f.Name, v)
		}
	case KindNumber:
		switch v.(type) {
		case float64, int, int64:
		default:
			return fmt.Errorf("field %q expects a number, got %T", f.Name, v)
		}
	case KindBool:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("field %q expects a bool, got %T", f.Name, v)
		}
	}
	return nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
