// Package validation provides Laravel-style input validation for form fields.
//
// # Basic Usage
//
//	v := validation.Make(map[string]string{
//	    "name":     "Al",
//	    "password": "12",
//	}, validation.Rules{
//	    "name":     "min:3",
//	    "password": "min:3|letter",
//	}, validation.Messages{
//	    "name.min": "Name must be at least 3 characters long.",
//	})
//
//	if v.Fails() {
//	    v.Errors().Get("password") // both password messages, in rule order
//	}
//
// Every failing rule of a field adds a message. Put "bail" first in a rule
// string to stop at the first failure for that field.
//
// # Available Rules
//
//   - required: non-empty after trimming whitespace
//   - filled: non-empty; whitespace counts
//   - min:n: at least n characters (runes)
//   - max:n: at most n characters (runes)
//   - letter: contains at least one [a-zA-Z]
//   - alpha, alpha_num, alpha_dash
//   - email: RFC 5322 address
//   - boolean: true/false/1/0/yes/no/on/off, or empty
//   - in:a,b,c: one of the listed values
//   - same:other: equals data[other]
//   - regex:pattern
//   - nullable, string: always pass
//   - sometimes: skip the remaining rules when the value is empty
//   - bail: stop at the first failing rule
//
// MinLength and ContainsLetter are the two primitive checks the length and
// letter rules are built on; they are exported for direct use.
package validation
