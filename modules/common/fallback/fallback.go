package fallback

import (
	"fmt"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultHex is used when a color name has no known swatch.
const DefaultHex = "#808080"

// placeholder values the model uses for slots that do not apply (dresses, etc)
var placeholders = map[string]struct{}{
	"":               {},
	"-":              {},
	"n/a":            {},
	"na":             {},
	"none":           {},
	"null":           {},
	"not applicable": {},
}

// SafeString returns a trimmed string or the provided fallback.
func SafeString(value interface{}, fallback string) string {
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s != "" {
			return s
		}
	}
	return fallback
}

// IsPlaceholder reports whether an outfit slot carries no real garment.
func IsPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimSuffix(v, ".")
	_, ok := placeholders[v]
	return ok
}

// TitleColor normalizes a color name for display ("navy blue" -> "Navy Blue").
func TitleColor(name string) string {
	// Caser is stateful, one per call
	return cases.Title(language.English).String(strings.Join(strings.Fields(name), " "))
}

// ColorHex resolves a color name to #RRGGBB using the SVG 1.1 named colors.
// Multi-word names are tried joined ("navy blue" -> "navyblue"), then by
// their last word ("burnt orange" -> "orange").
func ColorHex(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return DefaultHex
	}

	candidates := []string{strings.Join(words, "")}
	if len(words) > 1 {
		candidates = append(candidates, words[len(words)-1])
	}
	for _, c := range candidates {
		if rgba, ok := colornames.Map[c]; ok {
			return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
		}
	}
	return DefaultHex
}
