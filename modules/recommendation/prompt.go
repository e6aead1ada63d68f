package recommendation

import (
	"fmt"
	"strings"

	"stylo-server/modules/common/chat"
	"stylo-server/modules/common/fallback"
)

const (
	maxTokens   = 1500
	temperature = 0.7
)

// ChatRequest builds the chat call shared by Recommend and Stream.
func ChatRequest(in Input) chat.Request {
	return chat.Request{
		System:      chat.StylistSystemPrompt,
		Prompt:      BuildPrompt(in),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		JSON:        true,
	}
}

func styleInstruction(in Input) string {
	if len(in.Style) == 0 {
		return fmt.Sprintf(
			"No style preferences were given. Invent %d distinct, complementary style directions that suit %s and work well with a %s.",
			StyleCount, in.Gender, in.PrimaryItem())
	}
	return fmt.Sprintf(
		"The user asked for these styles: %s. Follow them strictly, one style_inspirations entry per requested style in the same order. "+
			"Only if fewer than %d styles can be derived from them, complete the list with common styles that fit the %s.",
		strings.Join(in.Style, ", "), StyleCount, in.PrimaryItem())
}

func paletteInstruction(in Input) string {
	if in.Color == "" {
		return fmt.Sprintf("Suggest %d colors that pair well with the %s.", PaletteSize, in.ClothingItem)
	}
	return fmt.Sprintf(
		"Suggest %d colors. The first color MUST be %q (the color of the item itself), followed by %d colors that pair well with it.",
		PaletteSize, fallback.TitleColor(in.Color), PaletteSize-1)
}

// BuildPrompt - 스타일리스트 프롬프트 생성
func BuildPrompt(in Input) string {
	primary := in.PrimaryItem()

	var b strings.Builder
	fmt.Fprintf(&b, "You are styling outfits for %s around one key piece: a %s.\n\n", in.Gender, primary)

	b.WriteString("COLOR PALETTE:\n")
	b.WriteString(paletteInstruction(in))
	b.WriteString(" Give every color a human readable name and a #RRGGBB hex code.\n\n")

	b.WriteString("STYLE INSPIRATIONS:\n")
	b.WriteString(styleInstruction(in))
	fmt.Fprintf(&b, " Return exactly %d entries, each with a one or two sentence description.\n\n", StyleCount)

	b.WriteString("OUTFITS:\n")
	fmt.Fprintf(&b, "Create exactly %d complete outfits, one per style inspiration, in the same order.\n", OutfitCount)
	fmt.Fprintf(&b, "- Every outfit MUST include the %s in the slot it belongs to (top, pants or shoes), described with its color.\n", primary)
	b.WriteString("- Fill the remaining slots with specific garments (color, fabric, cut).\n")
	b.WriteString("- If the key piece is a dress or jumpsuit, put it in \"top\" and set \"pants\" to \"not applicable\".\n")
	b.WriteString("- Shoes are always required.\n\n")

	b.WriteString("Respond with a single JSON object and nothing else, using exactly this shape:\n")
	b.WriteString(`{
  "color_palette": [{"name": "...", "hex": "#RRGGBB"}],
  "style_inspirations": [{"description": "...", "main_image_prompt": "..."}],
  "outfits": [{"top": "...", "pants": "...", "shoes": "...", "image_prompt": "..."}]
}`)
	return b.String()
}

func personNoun(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "men", "man", "male":
		return "man"
	case "women", "woman", "female":
		return "woman"
	default:
		return "person"
	}
}

const photoQualifiers = "Clean neutral studio background, soft editorial lighting, sharp fabric detail, full body visible from head to toe with shoes in frame."

// OutfitImagePrompt - outfit 이미지 프롬프트 재생성
func OutfitImagePrompt(in Input, o Outfit, styleDescription string) string {
	var parts []string
	for _, p := range []string{o.Top, o.Pants, o.Shoes} {
		if !fallback.IsPlaceholder(p) {
			parts = append(parts, strings.TrimSpace(p))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Full-body fashion photograph of a %s", personNoun(in.Gender))
	if len(parts) > 0 {
		fmt.Fprintf(&b, " wearing %s", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, ". The outfit is built around the %s", in.PrimaryItem())
	if s := strings.TrimSpace(styleDescription); s != "" {
		fmt.Fprintf(&b, ", styled as: %s", strings.TrimSuffix(s, "."))
	}
	b.WriteString(". ")
	b.WriteString(photoQualifiers)
	return b.String()
}

// StyleImagePrompt - style inspiration 대표 이미지 프롬프트
func StyleImagePrompt(in Input, styleDescription string) string {
	return fmt.Sprintf("Editorial fashion photograph of a %s wearing the %s in this look: %s. %s",
		personNoun(in.Gender), in.PrimaryItem(), strings.TrimSuffix(strings.TrimSpace(styleDescription), "."), photoQualifiers)
}
