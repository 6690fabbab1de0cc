package textutil

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleCase converts a phrase to English title casing ("go tips" -> "Go Tips").
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
