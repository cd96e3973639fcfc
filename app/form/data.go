// Package form holds the registration form's state and the rules derived
// from it: the field values, which fields have been touched, validation
// messages and whether the form may be submitted.
//
// State is never mutated in place. Every input event produces a new Data and
// a new Touched; a Store owns the current pair and notifies subscribers after
// each replacement.
package form

import "fmt"

// Gender is the value of the gender radio group.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the radio options in display order.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// Valid reports whether g is one of the enumerated values.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// Role is the value of the role select.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Roles lists the select options in display order.
var Roles = []Role{RoleUser, RoleAdmin}

// Valid reports whether r is one of the enumerated values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Field names as they appear in the rendered markup.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldSave     = "save"
	FieldGender   = "gender"
	FieldRole     = "role"
)


// Data is the single record holding every field value of the form.
type Data struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Save     bool   `json:"save"`
	Gender   Gender `json:"gender"`
	Role     Role   `json:"role"`
}

// Defaults returns the initial form values.
func Defaults() Data {
	return Data{
		Gender: GenderOther,
		Role:   RoleUser,
	}
}

// Value returns the string form of a field, as it would be bound to the
// input's value attribute.
func (d Data) Value(field string) (string, error) {
	switch field {
	case FieldName:
		return d.Name, nil
	case FieldEmail:
		return d.Email, nil
	case FieldPassword:
		return d.Password, nil
	case FieldSave:
		return fmt.Sprint(d.Save), nil
	case FieldGender:
		return string(d.Gender), nil
	case FieldRole:
		return string(d.Role), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Touched records the fields the user has edited at least once.
// A field's validation messages are only shown once it is touched.
type Touched map[string]bool

// InitialTouched returns the initial touched template: only name is tracked.
func InitialTouched() Touched {
	return Touched{FieldName: false}
}

// Has reports whether field has been touched.
func (t Touched) Has(field string) bool { return t[field] }

// With returns a copy of t with field marked touched.
func (t Touched) With(field string) Touched {
	out := make(Touched, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[field] = true
	return out
}

// Clone returns a copy of t.
func (t Touched) Clone() Touched {
	out := make(Touched, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
