package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the value at maxLen
// runes. Labels and locations arrive as free text in Spanish, so truncation
// counts runes rather than bytes to avoid splitting accented characters.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}
