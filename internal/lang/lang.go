// Package lang resolves the translation language used by hint level 3.
package lang

import (
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Fallback is used when nothing else matches.
const Fallback = "en"

// Supported lists the selectable language codes in display order.
var Supported = []string{"en", "uk", "ro", "ar"}

// Normalize maps a language code such as "RO" or "uk-UA" to its supported
// base code.
func Normalize(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	return supportedBase(tag)
}

// Match returns the first declared preference whose base language is
// supported.
func Match(declared []string) (string, bool) {
	for _, d := range declared {
		if code, ok := Normalize(d); ok {
			return code, true
		}
	}
	return "", false
}

// Declared lists the languages of an Accept-Language header, highest
// q-value first.
func Declared(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return nil
	}
	declared := make([]string, len(tags))
	for i, tag := range tags {
		declared[i] = tag.String()
	}
	return declared
}

// Resolve picks the initial language: a previously saved choice, then the
// best match among the declared preferences, then Fallback.
func Resolve(saved string, declared []string) string {
	if code, ok := Normalize(saved); ok {
		return code
	}
	if code, ok := Match(declared); ok {
		return code
	}
	return Fallback
}

func supportedBase(tag language.Tag) (string, bool) {
	// Only a declared base counts; "und-RO" would otherwise guess "ro".
	base, conf := tag.Base()
	if conf != language.Exact {
		return "", false
	}
	code := base.String()
	if !slices.Contains(Supported, code) {
		return "", false
	}
	return code, true
}
