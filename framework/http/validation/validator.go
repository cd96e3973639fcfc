package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors holds validation messages keyed by field.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

// Add appends a message for field.
func (e *Errors) Add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs, ok := e.Bag[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Get returns a copy of all messages for field, in the order they were added.
func (e *Errors) Get(field string) []string {
	msgs := e.Bag[field]
	if len(msgs) == 0 {
		return nil
	}
	return append([]string(nil), msgs...)
}

// ── Validator ────────────────────────────────────────────────────────────────

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"email": "required|email", "password": "min:3|letter"}
type Rules map[string]string

// Messages overrides the default message of a rule, keyed "field.rule".
// e.g. Messages{"name.min": "Name must be at least 3 characters long."}
type Messages map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data     map[string]string
	rules    Rules
	messages Messages
	errors   *Errors
	ran      bool
}

// Make creates a new Validator. Mirrors Validator::make($data, $rules).
func Make(data map[string]string, rules Rules, messages ...Messages) *Validator {
	v := &Validator{
		data:   data,
		rules:  rules,
		errors: &Errors{},
	}
	if len(messages) > 0 {
		v.messages = messages[0]
	}
	return v
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag, running validation if needed.
func (v *Validator) Errors() *Errors {
	v.validate()
	return v.errors
}

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	if v.ran {
		return
	}
	v.ran = true

	fields := make([]string, 0, len(v.rules))
	for field := range v.rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]
		rules := strings.Split(v.rules[field], "|")
		bail := false

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}

			// min:3 → name=min, param=3
			name, param, _ := strings.Cut(rule, ":")

			if name == "bail" {
				bail = true
				continue
			}
			if name == "sometimes" && value == "" {
				break
			}

			msg, ok := v.applyRule(field, value, name, param)
			if ok {
				continue
			}
			if custom, found := v.messages[field+"."+name]; found {
				msg = custom
			}
			v.errors.Add(field, msg)
			if bail {
				break
			}
		}
	}
}

var (
	letterRe    = regexp.MustCompile(`[a-zA-Z]`)
	alphaRe     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// applyRule reports whether the rule passes, and the default message if not.
func (v *Validator) applyRule(field, value, rule, param string) (string, bool) {
	switch rule {
	case "required":
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("The %s field is required.", field), false
		}

	case "filled":
		// Unlike required, whitespace counts as content.
		if value == "" {
			return fmt.Sprintf("The %s field must have a value.", field), false
		}

	case "boolean":
		switch strings.ToLower(value) {
		case "true", "false", "1", "0", "yes", "no", "on", "off", "":
		default:
			return fmt.Sprintf("The %s field must be true or false.", field), false
		}

	case "email":
		if _, err := mail.ParseAddress(value); err != nil {
			return fmt.Sprintf("The %s must be a valid email address.", field), false
		}

	case "min":
		n, _ := strconv.Atoi(param)
		if !MinLength(value, n) {
			return fmt.Sprintf("The %s must be at least %d characters.", field, n), false
		}

	case "max":
		n, _ := strconv.Atoi(param)
		if MinLength(value, n+1) {
			return fmt.Sprintf("The %s may not be greater than %d characters.", field, n), false
		}

	case "in":
		for _, a := range strings.Split(param, ",") {
			if strings.TrimSpace(a) == value {
				return "", true
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", field), false

	case "letter":
		if !ContainsLetter(value) {
			return fmt.Sprintf("The %s must contain at least one letter.", field), false
		}

	case "alpha":
		if !alphaRe.MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters.", field), false
		}

	case "alpha_num":
		if !alphaNumRe.MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters and numbers.", field), false
		}

	case "alpha_dash":
		if !alphaDashRe.MatchString(value) {
			return fmt.Sprintf("The %s may only contain letters, numbers, dashes and underscores.", field), false
		}

	case "same":
		if v.data[param] != value {
			return fmt.Sprintf("The %s and %s must match.", field, param), false
		}

	case "regex":
		re, err := regexp.Compile(param)
		if err != nil || !re.MatchString(value) {
			return fmt.Sprintf("The %s format is invalid.", field), false
		}

	case "nullable", "string":
		// Always passes.
	}

	return "", true
}
