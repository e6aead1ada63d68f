package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptWithColorAndTags(t *testing.T) {
	p := BuildPrompt(Input{ClothingItem: "hoodie", Color: "red", Style: []string{"Streetwear", "Grunge"}, Gender: "men"})

	assert.Contains(t, p, "red hoodie")
	assert.Contains(t, p, `MUST be "Red"`)
	assert.Contains(t, p, "Streetwear, Grunge")
	assert.Contains(t, p, "Follow them strictly")
	assert.Contains(t, p, "not applicable")
	assert.Contains(t, p, `"color_palette"`)
}

func TestBuildPromptInventsStyles(t *testing.T) {
	p := BuildPrompt(Input{ClothingItem: "dress", Gender: "women"})

	assert.Contains(t, p, "Invent 3 distinct")
	assert.Contains(t, p, "women")
	assert.NotContains(t, p, "MUST be")
}

func TestOutfitImagePromptSkipsPlaceholders(t *testing.T) {
	in := Input{ClothingItem: "dress", Color: "green", Gender: "women"}
	got := OutfitImagePrompt(in, Outfit{Top: "Green wrap dress", Pants: "Not applicable", Shoes: "Nude heels"}, "Romantic garden party.")

	assert.Contains(t, got, "woman wearing Green wrap dress, Nude heels")
	assert.Contains(t, got, "green dress")
	assert.Contains(t, got, "Romantic garden party")
	assert.NotContains(t, got, "Not applicable")
}

func TestPersonNoun(t *testing.T) {
	assert.Equal(t, "man", personNoun("men"))
	assert.Equal(t, "woman", personNoun("Women"))
	assert.Equal(t, "person", personNoun("unisex"))
}
