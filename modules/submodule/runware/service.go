package runware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	generateimage "stylo-server/modules/generate-image"
)

// Service calls the Runware REST API. Per-call deadlines come from the context.
type Service struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

func NewService(apiURL, apiKey string) *Service {
	if apiKey == "" {
		log.Warn().Msg("⚠️ [Runware] RUNWARE_API_KEY not configured")
	}
	return &Service{
		httpClient: &http.Client{},
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

func (s *Service) Name() string { return "runware" }

func (s *Service) DefaultModels() []string {
	return []string{generateimage.RunwareFluxDev, generateimage.RunwareFluxSchnell}
}

func (s *Service) Generate(ctx context.Context, model string, p generateimage.Params) ([]string, error) {
	task := TaskRequest{
		TaskType:       "imageInference",
		TaskUUID:       uuid.NewString(),
		PositivePrompt: p.Prompt,
		NegativePrompt: p.NegativePrompt,
		Model:          model,
		Width:          p.Width,
		Height:         p.Height,
		NumberResults:  1,
		OutputType:     "URL",
		OutputFormat:   "JPG",
		Steps:          p.Steps,
		CFGScale:       p.Guidance,
	}

	jsonBody, err := json.Marshal([]TaskRequest{task})
	if err != nil {
		return nil, fmt.Errorf("marshal runware request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("create runware request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	log.Ctx(ctx).Debug().
		Str("model", model).
		Str("task_uuid", task.TaskUUID).
		Int("width", p.Width).
		Int("height", p.Height).
		Int("steps", p.Steps).
		Msg("🎨 [Runware] submitting task")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("runware API error: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read runware response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("runware API error: status=%d, body=%s", resp.StatusCode, truncate(string(bodyBytes), 300))
	}

	var taskResp TaskResponse
	if err := json.Unmarshal(bodyBytes, &taskResp); err != nil {
		return nil, fmt.Errorf("parse runware response: %w", err)
	}
	if taskResp.Error != "" {
		return nil, fmt.Errorf("runware: %s", taskResp.Error)
	}
	if len(taskResp.Errors) > 0 {
		return nil, fmt.Errorf("runware: %s", taskResp.Errors[0].Message)
	}

	urls := make([]string, 0, len(taskResp.Data))
	for _, d := range taskResp.Data {
		if d.ImageURL != "" {
			urls = append(urls, d.ImageURL)
		}
	}
	return urls, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
