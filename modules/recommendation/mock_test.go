package recommendation

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stylo-server/modules/common/chat"
)

type mockChat struct {
	mock.Mock
}

func (m *mockChat) Complete(ctx context.Context, req chat.Request) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// Stream replays the fragments given as the first return value, then returns the error.
func (m *mockChat) Stream(ctx context.Context, req chat.Request, onDelta func(string) error) error {
	args := m.Called(ctx, req)
	for _, f := range args.Get(0).([]string) {
		if err := onDelta(f); err != nil {
			return err
		}
	}
	return args.Error(1)
}

const happyReply = "Sure! Here you go:\n```json\n" + `{
  "color_palette": [
    {"name": "Beige", "hex": "#F5F5DC"},
    {"name": "Red", "hex": "ff0000"},
    {"name": "White", "hex": "#FFFFFF"},
    {"name": "Olive", "hex": "#808000"},
    {"name": "Charcoal", "hex": "#36454F"},
    {"name": "Camel", "hex": "#C19A6B"}
  ],
  "style_inspirations": [
    {"description": "Streetwear with oversized layers.", "main_image_prompt": "x"},
    {"description": "Smart casual for the office."},
    {"description": "Weekend athleisure."},
    {"description": "Extra style that should be trimmed."}
  ],
  "outfits": [
    {"top": "Red hoodie", "pants": "Black cargo pants", "shoes": "White sneakers", "image_prompt": "ignored"},
    {"top": "Red hoodie under a camel coat", "pants": "Grey wool trousers", "shoes": "Brown loafers"},
    {"top": "Red hoodie", "pants": "not applicable", "shoes": "Running shoes"}
  ]
}` + "\n```\nEnjoy!"
