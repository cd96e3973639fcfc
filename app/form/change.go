package form

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned for a change to a field the form does not have.
	ErrUnknownField = errors.New("form: unknown field")
	// ErrInvalidChoice is returned when a gender or role is outside its enum.
	ErrInvalidChoice = errors.New("form: invalid choice")
)

// Kind is the type attribute of the input that produced a change.
type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindPassword Kind = "password"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
	KindSelect   Kind = "select-one"
)

// Change is one input event: the triggering input's name, type, value and
// checked state.
type Change struct {
	Field   string `json:"name"`
	Kind    Kind   `json:"type"`
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

// Apply merges c into data and returns the new state.
//
// Checkbox changes take their value from Checked and, unlike every other
// kind, do not mark the field touched. A change without a field name is
// ignored. On error the inputs are returned unchanged.
func Apply(data Data, touched Touched, c Change) (Data, Touched, error) {
	if c.Field == "" {
		return data, touched, nil
	}

	next := data
	if c.Kind == KindCheckbox {
		if c.Field != FieldSave {
			return data, touched, fmt.Errorf("%w: %q is not a checkbox", ErrUnknownField, c.Field)
		}
		next.Save = c.Checked
		return next, touched, nil
	}

	switch c.Field {
	case FieldName:
		next.Name = c.Value
	case FieldEmail:
		next.Email = c.Value
	case FieldPassword:
		next.Password = c.Value
	case FieldSave:
		// Non-checkbox event for the checkbox field: coerce the raw value.
		next.Save = c.Value == "true" || c.Value == "on"
	case FieldGender:
		g := Gender(c.Value)
		if !g.Valid() {
			return data, touched, fmt.Errorf("%w: gender %q", ErrInvalidChoice, c.Value)
		}
		next.Gender = g
	case FieldRole:
		r := Role(c.Value)
		if !r.Valid() {
			return data, touched, fmt.Errorf("%w: role %q", ErrInvalidChoice, c.Value)
		}
		next.Role = r
	default:
		return data, touched, fmt.Errorf("%w: %q", ErrUnknownField, c.Field)
	}

	return next, touched.With(c.Field), nil
}
