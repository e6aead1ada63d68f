package generateimage

import "errors"

var (
	ErrMissingCredential = errors.New("image generation credential is not configured")
	ErrRetriesExhausted  = errors.New("image generation failed")
	ErrTimeout           = errors.New("image generation timed out")
	ErrEmptyPrompt       = errors.New("prompt is required")
	ErrNoOutput          = errors.New("model returned no image")
)

// ImageRequest - POST /generate-image 바디
type ImageRequest struct {
	Prompt string `json:"prompt"`
}

// ImageResult - 생성된 이미지 URL (외부 호스팅)
type ImageResult struct {
	ImageURL string `json:"image_url"`
}

// Params are the provider-neutral inputs of one generation call.
type Params struct {
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	Guidance       float64
}
