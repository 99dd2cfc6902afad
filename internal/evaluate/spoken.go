package evaluate

import (
	"strconv"
	"strings"
)

// MatchSpoken resolves a voice transcript to one of the options. It tries
// the option text case-insensitively, then a choice letter ("b") or number
// ("2"). The returned option is the exact option text, ready for IsCorrect.
func MatchSpoken(options []string, transcript string) (string, bool) {
	said := strings.ToLower(strings.TrimSpace(transcript))
	if said == "" {
		return "", false
	}
	for _, o := range options {
		if strings.ToLower(strings.TrimSpace(o)) == said {
			return o, true
		}
	}

	said = strings.TrimPrefix(said, "option ")
	if idx, err := strconv.Atoi(said); err == nil && idx >= 1 && idx <= len(options) {
		return options[idx-1], true
	}
	if len(said) == 1 && said[0] >= 'a' && int(said[0]-'a') < len(options) {
		return options[said[0]-'a'], true
	}
	return "", false
}

// ChoiceLetter returns the display letter for a 0-based option index.
func ChoiceLetter(i int) string {
	return string(rune('A' + i))
}
