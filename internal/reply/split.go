// Package reply turns raw completion text into display bubbles and separates
// bilingual replies into original text and translation.
package reply

import "strings"

// Delimiter is the literal token the model inserts between bubbles.
// It is matched exactly and case-sensitively; there is no escaping.
const Delimiter = "[SPLIT]"

// Split breaks raw completion text into bubbles on Delimiter.
// Segments are trimmed and empty ones dropped, so the result never contains
// blank bubbles. Text without a delimiter yields one bubble.
func Split(raw string) []string {
	parts := strings.Split(raw, Delimiter)
	bubbles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			bubbles = append(bubbles, p)
		}
	}
	return bubbles
}

// Join is the inverse of Split for bubbles that do not contain the delimiter.
func Join(bubbles []string) string {
	return strings.Join(bubbles, Delimiter)
}
