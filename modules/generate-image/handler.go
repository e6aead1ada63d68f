package generateimage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"stylo-server/modules/common/httpjson"
)

type Handler struct {
	service *Service
	budget  time.Duration
}

// NewHandler - budget bounds the whole request; exceeding it answers 504.
func NewHandler(service *Service, budget time.Duration) *Handler {
	return &Handler{service: service, budget: budget}
}

// HandleGenerate - POST /generate-image
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	var req ImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn().Err(err).Msg("⚠️  [ImageGen] invalid request")
		httpjson.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		httpjson.WriteError(w, http.StatusBadRequest, ErrEmptyPrompt.Error())
		return
	}

	ctx := r.Context()
	if h.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.budget)
		defer cancel()
	}

	url, err := h.service.Generate(ctx, req.Prompt)
	if err != nil {
		status := statusFor(err)
		logger.Error().Err(err).Int("status", status).Msg("❌ [ImageGen] generation failed")
		httpjson.WriteError(w, status, err.Error())
		return
	}

	httpjson.WriteJSON(w, http.StatusOK, ImageResult{ImageURL: url})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		// client went away; status is never seen
		return 499
	default:
		return http.StatusInternalServerError
	}
}
