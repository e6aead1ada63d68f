package generateimage

const MaxPromptRunes = 4000

const compositionDirectives = "Full-body shot, subject centered in frame, entire figure visible from head to toe including shoes, " +
	"natural standing pose, accurate garment colors exactly as described, realistic fabric texture, professional fashion photography."

// NegativePrompt is sent with every request.
const NegativePrompt = "cropped, cut off, out of frame, close-up, missing head, missing feet, missing legs, extra limbs, " +
	"deformed hands, distorted body, blurry, low resolution, wrong colors, color mismatch, text, watermark, logo, signature"

// TruncatePrompt cuts a prompt to MaxPromptRunes characters without splitting a rune.
func TruncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= MaxPromptRunes {
		return prompt
	}
	return string(runes[:MaxPromptRunes])
}

// EnhancePrompt - 잘린 프롬프트 + 구도 지시문
func EnhancePrompt(prompt string) string {
	return TruncatePrompt(prompt) + "\n\n" + compositionDirectives
}
