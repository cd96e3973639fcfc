package validation

import "unicode/utf8"

// MinLength reports whether value has at least n characters.
// Characters are counted as runes, so "日本語" has length 3. This differs
// from a JavaScript string length, which counts UTF-16 code units: "😀"
// is one rune here but length 2 in a browser, so a browser-side check can
// accept input that MinLength rejects.
func MinLength(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// ContainsLetter reports whether value contains at least one ASCII letter.
func ContainsLetter(value string) bool {
	return letterRe.MatchString(value)
}
