package replicate

import (
	"context"
	"fmt"

	r8 "github.com/replicate/replicate-go"
	"github.com/rs/zerolog/log"

	generateimage "stylo-server/modules/generate-image"
)

// runner is the slice of the Replicate client this backend uses.
type runner interface {
	Run(ctx context.Context, identifier string, input r8.PredictionInput, webhook *r8.Webhook) (r8.PredictionOutput, error)
}

type Service struct {
	client runner
}

// NewService - token이 없으면 client 없이 생성 (요청 시 credential 검사에서 걸러짐)
func NewService(token string) (*Service, error) {
	if token == "" {
		log.Warn().Msg("⚠️ [Replicate] REPLICATE_API_TOKEN not configured")
		return &Service{}, nil
	}
	client, err := r8.NewClient(r8.WithToken(token))
	if err != nil {
		return nil, fmt.Errorf("create replicate client: %w", err)
	}
	log.Info().Msg("✅ [Replicate] Service initialized")
	return &Service{client: client}, nil
}

func (s *Service) Name() string { return "replicate" }

func (s *Service) DefaultModels() []string {
	return []string{generateimage.ReplicateSDXL, generateimage.ReplicateSDXLLightning}
}

func (s *Service) Generate(ctx context.Context, model string, p generateimage.Params) ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("replicate client not configured")
	}

	log.Ctx(ctx).Debug().
		Str("model", model).
		Int("width", p.Width).
		Int("height", p.Height).
		Int("steps", p.Steps).
		Msg("🎨 [Replicate] running prediction")

	out, err := s.client.Run(ctx, model, buildInput(p), nil)
	if err != nil {
		return nil, fmt.Errorf("replicate %s: %w", model, err)
	}
	return outputURLs(out), nil
}

func buildInput(p generateimage.Params) r8.PredictionInput {
	return r8.PredictionInput{
		"prompt":              p.Prompt,
		"negative_prompt":     p.NegativePrompt,
		"width":               p.Width,
		"height":              p.Height,
		"num_inference_steps": p.Steps,
		"guidance_scale":      p.Guidance,
		"num_outputs":         1,
	}
}

// outputURLs accepts the list-of-URLs and single-URL output shapes.
func outputURLs(out r8.PredictionOutput) []string {
	switch v := out.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []interface{}:
		urls := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				urls = append(urls, s)
			}
		}
		return urls
	default:
		return nil
	}
}
