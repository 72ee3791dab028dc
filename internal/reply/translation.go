package reply

import (
	"regexp"
	"strings"
)

// TranslationMarker starts a translation line, directly after a newline.
const TranslationMarker = "⧉"

var translationSplit = regexp.MustCompile(`\n` + regexp.QuoteMeta(TranslationMarker) + `\s*`)

// Translation is the result of separating a bilingual reply.
type Translation struct {
	HasTranslation bool   `json:"hasTranslation"`
	Original       string `json:"original"`
	Translation    string `json:"translation"`
}

// ParseTranslation splits content on every "newline + marker" occurrence.
// The text before the first occurrence is the original; everything after is
// rejoined with newlines and trimmed into the translation.
func ParseTranslation(content string) Translation {
	if !strings.Contains(content, TranslationMarker) {
		return Translation{Original: content}
	}
	parts := translationSplit.Split(content, -1)
	if len(parts) < 2 {
		return Translation{Original: content}
	}
	return Translation{
		HasTranslation: true,
		Original:       parts[0],
		Translation:    strings.TrimSpace(strings.Join(parts[1:], "\n")),
	}
}
