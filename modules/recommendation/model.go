package recommendation

import (
	"errors"
	"strings"

	"stylo-server/modules/common/fallback"
)

const (
	PaletteSize = 5
	StyleCount  = 3
	OutfitCount = 3

	DefaultGender = "men"
)

var ErrInvalidInput = errors.New("clothing_item is required")

// Input - 추천 요청 바디
type Input struct {
	ClothingItem string   `json:"clothing_item"`
	Color        string   `json:"color"`
	Style        []string `json:"style"`
	Gender       string   `json:"gender"`
}

// Normalize trims fields, drops blank style tags and applies the gender default.
func (in Input) Normalize() Input {
	out := Input{
		ClothingItem: strings.TrimSpace(in.ClothingItem),
		Color:        strings.TrimSpace(in.Color),
		Gender:       strings.ToLower(fallback.SafeString(in.Gender, DefaultGender)),
	}
	for _, s := range in.Style {
		if s = strings.TrimSpace(s); s != "" {
			out.Style = append(out.Style, s)
		}
	}
	return out
}

func (in Input) Validate() error {
	if strings.TrimSpace(in.ClothingItem) == "" {
		return ErrInvalidInput
	}
	return nil
}

// PrimaryItem is the color-qualified garment ("red hoodie").
func (in Input) PrimaryItem() string {
	return strings.TrimSpace(in.Color + " " + in.ClothingItem)
}

type ColorSwatch struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type StyleInspiration struct {
	Description     string `json:"description"`
	MainImagePrompt string `json:"main_image_prompt"`
}

type Outfit struct {
	Top         string `json:"top"`
	Pants       string `json:"pants"`
	Shoes       string `json:"shoes"`
	ImagePrompt string `json:"image_prompt"`
}

// Result - 응답 바디. 길이는 항상 5/3/3
type Result struct {
	ColorPalette      []ColorSwatch      `json:"color_palette"`
	StyleInspirations []StyleInspiration `json:"style_inspirations"`
	Outfits           []Outfit           `json:"outfits"`
}
