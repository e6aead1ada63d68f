package recommendation

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"stylo-server/modules/common/chat"
	"stylo-server/modules/common/metrics"
)

// Service - 추천 오케스트레이터
type Service struct {
	chat    chat.Client
	extract Extractor
}

type Option func(*Service)

// WithExtractor swaps the JSON extraction heuristic.
func WithExtractor(e Extractor) Option {
	return func(s *Service) { s.extract = e }
}

func NewService(client chat.Client, opts ...Option) *Service {
	s := &Service{chat: client, extract: ExtractJSONObject}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recommend returns a full recommendation. Upstream, extraction and schema
// failures are answered with FallbackResult; the only error is ErrInvalidInput.
func (s *Service) Recommend(ctx context.Context, in Input) (*Result, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	logger := log.Ctx(ctx).With().
		Str("item", in.PrimaryItem()).
		Str("gender", in.Gender).
		Strs("style", in.Style).
		Logger()
	logger.Info().Msg("👗 [Recommend] building recommendation")

	res, reason, err := s.fromModel(ctx, in)
	if err != nil {
		metrics.RecommendationFallbacks.WithLabelValues(reason).Inc()
		logger.Warn().Err(err).Str("reason", reason).Msg("⚠️  [Recommend] serving fallback payload")
		return FallbackResult(in), nil
	}

	logger.Info().Msg("✅ [Recommend] recommendation ready")
	return res, nil
}

func (s *Service) fromModel(ctx context.Context, in Input) (*Result, string, error) {
	if s.chat == nil {
		return nil, "upstream", errors.New("chat client not configured")
	}

	raw, err := s.chat.Complete(ctx, ChatRequest(in))
	if err != nil {
		return nil, "upstream", err
	}

	body, err := s.extract(raw)
	if err != nil {
		return nil, "extract", err
	}

	res, err := decodeResult(body)
	if err != nil {
		if errors.Is(err, ErrSchemaInvalid) {
			return nil, "schema", err
		}
		return nil, "decode", err
	}

	res.ColorPalette = anchorPalette(res.ColorPalette, in.Color)
	normalizeHex(res.ColorPalette)
	synthesizeImagePrompts(in, res)
	return res, "", nil
}

// Stream forwards model fragments to emit as they arrive. An upstream
// failure is reported as a single {"error": "..."} fragment; a cancelled
// context or a failing emit (client gone) ends the stream silently.
func (s *Service) Stream(ctx context.Context, in Input, emit func(string) error) error {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}

	logger := log.Ctx(ctx).With().Str("item", in.PrimaryItem()).Logger()
	logger.Info().Msg("🌊 [Recommend] stream started")

	if s.chat == nil {
		metrics.RecommendationStreams.WithLabelValues("upstream_error").Inc()
		return emitError(emit, errors.New("chat client not configured"))
	}

	var emitErr error
	err := s.chat.Stream(ctx, ChatRequest(in), func(fragment string) error {
		if err := emit(fragment); err != nil {
			emitErr = err
			return err
		}
		return nil
	})

	switch {
	case emitErr != nil:
		metrics.RecommendationStreams.WithLabelValues("client_gone").Inc()
		logger.Info().Err(emitErr).Msg("[Recommend] client went away, stream stopped")
		return nil
	case err != nil && ctx.Err() != nil:
		metrics.RecommendationStreams.WithLabelValues("cancelled").Inc()
		logger.Info().Msg("[Recommend] stream cancelled")
		return nil
	case err != nil:
		metrics.RecommendationStreams.WithLabelValues("upstream_error").Inc()
		logger.Error().Err(err).Msg("❌ [Recommend] stream failed")
		return emitError(emit, err)
	}

	metrics.RecommendationStreams.WithLabelValues("completed").Inc()
	logger.Info().Msg("✅ [Recommend] stream completed")
	return nil
}

func emitError(emit func(string) error, err error) error {
	payload, _ := json.Marshal(map[string]string{"error": err.Error()})
	// the client may already be gone; nothing else to report to
	_ = emit(string(payload))
	return nil
}
