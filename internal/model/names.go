package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var unsafeNameCharacters = strings.NewReplacer(" ", "", "&", "")

// SafeName removes the characters that cannot appear in a generated
// identifier (spaces and ampersands). All other characters pass through.
func SafeName(name string) string {
	return unsafeNameCharacters.Replace(name)
}

// DefaultInterfaceName prefixes a composition class name with "I".
func DefaultInterfaceName(className string) string {
	return "I" + className
}

// Capitalize upper-cases the first rune of value.
func Capitalize(value string) string {
	if value == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + value[size:]
}

// MemberName derives the member name of a property: the capitalized alias,
// prefixed with "_" when it would collide with the enclosing class name.
func MemberName(alias, className string) string {
	name := Capitalize(alias)
	if name == className {
		return "_" + name
	}
	return name
}
