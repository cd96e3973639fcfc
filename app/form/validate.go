package form

import (
	"fmt"

	"github.com/km-arc/controlled-form/framework/http/validation"
)

// User-facing validation messages.
const (
	MsgNameTooShort     = "Name must be at least 3 characters long."
	MsgPasswordTooShort = "Password must be at least 8 characters long."
	MsgPasswordNoLetter = "Password must contain at least 1 letter"
)

const (
	NameMinLength = 3

	// PasswordMinLength is the enforced threshold. It does not match the
	// number in MsgPasswordTooShort; both must change together.
	PasswordMinLength = 3
)

var rules = validation.Rules{
	FieldName:     fmt.Sprintf("min:%d", NameMinLength),
	FieldPassword: fmt.Sprintf("min:%d|letter", PasswordMinLength),
}

var messages = validation.Messages{
	FieldName + ".min":        MsgNameTooShort,
	FieldPassword + ".min":    MsgPasswordTooShort,
	FieldPassword + ".letter": MsgPasswordNoLetter,
}

// Errors are the validation messages derived from Data, per field.
type Errors struct {
	Name     []string `json:"nameError"`
	Password []string `json:"passwordError"`
}

// Empty reports whether there are no messages at all.
func (e Errors) Empty() bool {
	return len(e.Name) == 0 && len(e.Password) == 0
}

// Validate computes the validation messages for d. Messages for a field
// accumulate independently and keep rule order.
func Validate(d Data) Errors {
	v := validation.Make(map[string]string{
		FieldName:     d.Name,
		FieldPassword: d.Password,
	}, rules, messages)

	bag := v.Errors()
	return Errors{
		Name:     nonNil(bag.Get(FieldName)),
		Password: nonNil(bag.Get(FieldPassword)),
	}
}

// Visible returns the subset of e that should be displayed given touched.
func Visible(e Errors, touched Touched) Errors {
	out := Errors{Name: []string{}, Password: []string{}}
	if touched.Has(FieldName) {
		out.Name = e.Name
	}
	if touched.Has(FieldPassword) {
		out.Password = e.Password
	}
	return out
}

// CanSubmit reports whether name, email and password are all non-empty.
// Content rules are not checked here.
func CanSubmit(d Data) bool {
	for _, v := range []string{d.Email, d.Name, d.Password} {
		if !validation.MinLength(v, 1) {
			return false
		}
	}
	return true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
