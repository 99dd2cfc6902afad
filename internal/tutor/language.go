package tutor

import (
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Languages the tutor can detect and answer in.
var (
	English   = language.MustParse("en-US")
	Hindi     = language.MustParse("hi-IN")
	Tamil     = language.MustParse("ta-IN")
	Malayalam = language.MustParse("ml-IN")
)

var scripts = []struct {
	table *unicode.RangeTable
	lang  language.Tag
}{
	{unicode.Devanagari, Hindi},
	{unicode.Tamil, Tamil},
	{unicode.Malayalam, Malayalam},
}

// Detect picks the reply language from the script of text. The first script
// checked that appears anywhere wins: Devanagari, then Tamil, then
// Malayalam. Anything else is English.
func Detect(text string) language.Tag {
	for _, s := range scripts {
		for _, r := range text {
			if unicode.Is(s.table, r) {
				return s.lang
			}
		}
	}
	return English
}

// LanguageName is the English display name of tag, e.g. "Hindi (India)".
func LanguageName(tag language.Tag) string {
	return display.English.Tags().Name(tag)
}
