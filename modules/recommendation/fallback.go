package recommendation

import (
	"strings"

	"stylo-server/modules/common/fallback"
)

const fallbackPlaceholder = "N/A"

var (
	fallbackNeutrals = []ColorSwatch{
		{Name: "White", Hex: "#FFFFFF"},
		{Name: "Black", Hex: "#000000"},
		{Name: "Gray", Hex: "#808080"},
		{Name: "Navy", Hex: "#000080"},
	}
	fallbackStyles = []string{"Casual", "Elegant", "Sporty"}
)

// FallbackResult - upstream 실패 시 고정 응답 (항상 5/3/3)
func FallbackResult(in Input) *Result {
	lead := "Red"
	if in.Color != "" {
		lead = fallback.TitleColor(in.Color)
	}
	palette := make([]ColorSwatch, 0, PaletteSize)
	palette = append(palette, ColorSwatch{Name: lead, Hex: fallback.ColorHex(lead)})
	palette = append(palette, fallbackNeutrals...)

	res := &Result{
		ColorPalette:      palette,
		StyleInspirations: fallbackStyleInspirations(in),
		Outfits:           make([]Outfit, OutfitCount),
	}
	for i := range res.Outfits {
		res.Outfits[i] = Outfit{Top: fallbackPlaceholder, Pants: fallbackPlaceholder, Shoes: fallbackPlaceholder}
	}
	synthesizeImagePrompts(in, res)
	return res
}

// fallbackStyleInspirations uses the caller's tags in order (at most 3),
// padded with stock styles not already present.
func fallbackStyleInspirations(in Input) []StyleInspiration {
	names := make([]string, 0, StyleCount)
	seen := map[string]bool{}
	for _, tag := range in.Style {
		if len(names) == StyleCount {
			break
		}
		names = append(names, tag)
		seen[strings.ToLower(tag)] = true
	}
	for _, s := range fallbackStyles {
		if len(names) == StyleCount {
			break
		}
		if !seen[strings.ToLower(s)] {
			names = append(names, s)
			seen[strings.ToLower(s)] = true
		}
	}

	out := make([]StyleInspiration, len(names))
	for i, name := range names {
		out[i] = StyleInspiration{
			Description: name + " look built around the " + in.PrimaryItem() + ".",
		}
	}
	return out
}
