package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"stylo-server/modules/common/fallback"
)

var (
	ErrNoJSON        = errors.New("no JSON object in model output")
	ErrMalformedJSON = errors.New("model output is not valid JSON")
	ErrSchemaInvalid = errors.New("model output does not match the recommendation schema")
)

// Extractor pulls the JSON object text out of a raw model reply.
type Extractor func(raw string) (string, error)

// ExtractJSONObject takes everything from the first '{' to the last '}'.
// Chat models sometimes wrap JSON in prose or code fences.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", ErrNoJSON
	}
	return raw[start : end+1], nil
}

const resultSchema = `{
  "type": "object",
  "required": ["color_palette", "style_inspirations", "outfits"],
  "properties": {
    "color_palette": {
      "type": "array",
      "minItems": 5,
      "items": {
        "type": "object",
        "required": ["name", "hex"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "hex": {"type": "string"}
        }
      }
    },
    "style_inspirations": {
      "type": "array",
      "minItems": 3,
      "items": {
        "type": "object",
        "required": ["description"],
        "properties": {
          "description": {"type": "string", "minLength": 1},
          "main_image_prompt": {"type": "string"}
        }
      }
    },
    "outfits": {
      "type": "array",
      "minItems": 3,
      "items": {
        "type": "object",
        "required": ["top", "pants", "shoes"],
        "properties": {
          "top": {"type": "string"},
          "pants": {"type": "string"},
          "shoes": {"type": "string"},
          "image_prompt": {"type": "string"}
        }
      }
    }
  }
}`

var resultSchemaLoader = gojsonschema.NewStringLoader(resultSchema)

// validateResult checks the extracted JSON text against the result schema.
func validateResult(body string) error {
	result, err := gojsonschema.Validate(resultSchemaLoader, gojsonschema.NewStringLoader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %v", ErrSchemaInvalid, errs)
	}
	return nil
}

// decodeResult validates and decodes the JSON body, trimming arrays to 5/3/3.
func decodeResult(body string) (*Result, error) {
	if err := validateResult(body); err != nil {
		return nil, err
	}

	var res Result
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	res.ColorPalette = res.ColorPalette[:PaletteSize]
	res.StyleInspirations = res.StyleInspirations[:StyleCount]
	res.Outfits = res.Outfits[:OutfitCount]
	return &res, nil
}

// anchorPalette makes the requested color the first palette entry.
func anchorPalette(palette []ColorSwatch, color string) []ColorSwatch {
	color = strings.TrimSpace(color)
	if color == "" || len(palette) == 0 {
		return palette
	}
	if strings.EqualFold(strings.TrimSpace(palette[0].Name), color) {
		return palette
	}

	out := make([]ColorSwatch, 0, len(palette))
	for i, sw := range palette {
		if strings.EqualFold(strings.TrimSpace(sw.Name), color) {
			out = append(out, sw)
			out = append(out, palette[:i]...)
			out = append(out, palette[i+1:]...)
			return out
		}
	}

	out = append(out, ColorSwatch{Name: fallback.TitleColor(color), Hex: fallback.ColorHex(color)})
	out = append(out, palette[:len(palette)-1]...)
	return out
}

// normalizeHex fills missing or malformed hex codes from the color name.
func normalizeHex(palette []ColorSwatch) {
	for i := range palette {
		h := strings.TrimSpace(palette[i].Hex)
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		if len(h) != 7 {
			h = fallback.ColorHex(palette[i].Name)
		}
		palette[i].Hex = strings.ToUpper(h)
	}
}

// synthesizeImagePrompts regenerates every image prompt from the outfit
// fields so each render is anchored to the primary item.
func synthesizeImagePrompts(in Input, res *Result) {
	for i := range res.StyleInspirations {
		res.StyleInspirations[i].MainImagePrompt = StyleImagePrompt(in, res.StyleInspirations[i].Description)
	}
	for i := range res.Outfits {
		style := ""
		if n := len(res.StyleInspirations); n > 0 {
			style = res.StyleInspirations[i%n].Description
		}
		res.Outfits[i].ImagePrompt = OutfitImagePrompt(in, res.Outfits[i], style)
	}
}
