package generateimage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"stylo-server/modules/common/metrics"
)

const MaxRetries = 3

// Backend is one image-generation provider.
type Backend interface {
	Name() string
	// DefaultModels lists the built-in candidates, preferred first.
	DefaultModels() []string
	// Generate returns the output image URLs for one model call.
	Generate(ctx context.Context, model string, params Params) ([]string, error)
}

type Config struct {
	// Credential gates every request; empty fails fast without a backend call.
	Credential    string
	ModelOverride string
	CallTimeout   time.Duration
	BaseDelay     time.Duration
}

// Service - 후보 모델 × 재시도 루프
type Service struct {
	backend Backend
	cfg     Config
	sleep   func(ctx context.Context, d time.Duration) error
}

func NewService(backend Backend, cfg Config) *Service {
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 120 * time.Second
	}
	return &Service{backend: backend, cfg: cfg, sleep: sleepCtx}
}

// Candidates returns the override model (if any) followed by the backend defaults.
func (s *Service) Candidates() []string {
	var out []string
	seen := map[string]bool{}
	add := func(m string) {
		if m != "" && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	add(s.cfg.ModelOverride)
	for _, m := range s.backend.DefaultModels() {
		add(m)
	}
	return out
}

// Generate tries every candidate model up to MaxRetries times and returns the
// first image URL. Backoff between attempts is BaseDelay * attempt.
func (s *Service) Generate(ctx context.Context, prompt string) (string, error) {
	logger := log.Ctx(ctx)

	if s.cfg.Credential == "" {
		metrics.ImageResults.WithLabelValues("missing_credential").Inc()
		logger.Error().Msg("❌ [ImageGen] credential not configured")
		return "", ErrMissingCredential
	}

	enhanced := EnhancePrompt(prompt)
	candidates := s.Candidates()
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidate models", ErrRetriesExhausted)
	}

	var lastErr error
	for attempt := 1; attempt <= MaxRetries; attempt++ {
		for _, model := range candidates {
			if err := ctx.Err(); err != nil {
				return "", s.contextErr(err, lastErr)
			}

			logger.Info().
				Str("backend", s.backend.Name()).
				Str("model", model).
				Int("attempt", attempt).
				Msg("🎨 [ImageGen] trying model")

			url, err := s.tryModel(ctx, model, enhanced)
			if err == nil {
				metrics.ImageAttempts.WithLabelValues(model, "success").Inc()
				metrics.ImageResults.WithLabelValues("success").Inc()
				logger.Info().Str("model", model).Int("attempt", attempt).Msg("✅ [ImageGen] image generated")
				return url, nil
			}

			lastErr = err
			metrics.ImageAttempts.WithLabelValues(model, "failure").Inc()
			logger.Warn().Err(err).Str("model", model).Int("attempt", attempt).Msg("⚠️  [ImageGen] model failed")
		}

		if attempt < MaxRetries {
			wait := s.cfg.BaseDelay * time.Duration(attempt)
			metrics.ImageBackoffs.Inc()
			logger.Info().Dur("wait", wait).Msg("⏳ [ImageGen] backing off")
			if err := s.sleep(ctx, wait); err != nil {
				return "", s.contextErr(err, lastErr)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return "", s.contextErr(err, lastErr)
	}
	metrics.ImageResults.WithLabelValues("exhausted").Inc()
	return "", fmt.Errorf("%w after %d retries: %v", ErrRetriesExhausted, MaxRetries, lastErr)
}

func (s *Service) tryModel(ctx context.Context, model, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
	defer cancel()

	urls, err := s.backend.Generate(callCtx, model, ParamsFor(model, prompt, NegativePrompt))
	if err != nil {
		return "", err
	}
	for _, u := range urls {
		if u != "" {
			return u, nil
		}
	}
	return "", ErrNoOutput
}

// contextErr maps a finished parent context to ErrTimeout or the cancellation.
func (s *Service) contextErr(err, lastErr error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		metrics.ImageResults.WithLabelValues("timeout").Inc()
		return fmt.Errorf("%w (last error: %v)", ErrTimeout, lastErr)
	}
	metrics.ImageResults.WithLabelValues("cancelled").Inc()
	return err
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
