package recommendation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"stylo-server/modules/common/httpjson"
)

type Handler struct {
	service  *Service
	upgrader websocket.Upgrader
}

// NewHandler - allowedOrigins empty means any origin may open the websocket.
func NewHandler(service *Service, allowedOrigins []string) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

func decodeInput(r *http.Request) (Input, error) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return Input{}, err
	}
	in = in.Normalize()
	return in, in.Validate()
}

// HandleRecommend - POST /recommendations
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("⚠️  [Recommend] invalid request")
		httpjson.WriteError(w, http.StatusBadRequest, badRequestDetail(err))
		return
	}

	res, err := h.service.Recommend(r.Context(), in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			httpjson.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Ctx(r.Context()).Error().Err(err).Msg("❌ [Recommend] failed")
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	httpjson.WriteJSON(w, http.StatusOK, res)
}

// HandleStream - POST /recommendations/stream (text/event-stream)
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, badRequestDetail(err))
		return
	}

	sse, err := newSSEWriter(w)
	if err != nil {
		httpjson.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.service.Stream(r.Context(), in, sse.Send); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("❌ [Recommend] stream ended with error")
	}
}

const wsWriteWait = 10 * time.Second

// HandleStreamWS - GET /recommendations/ws
// 클라이언트가 Input JSON 한 번 전송 → fragment마다 text message → normal close
func (h *Handler) HandleStreamWS(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️  [Recommend] websocket upgrade failed")
		return
	}
	defer conn.Close()

	var in Input
	if err := conn.ReadJSON(&in); err != nil {
		closeWS(conn, websocket.CloseUnsupportedData, "invalid request")
		return
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		closeWS(conn, websocket.ClosePolicyViolation, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// reads only to notice the client closing
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	send := func(fragment string) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteMessage(websocket.TextMessage, []byte(fragment))
	}

	if err := h.service.Stream(ctx, in, send); err != nil {
		logger.Error().Err(err).Msg("❌ [Recommend] websocket stream ended with error")
	}
	closeWS(conn, websocket.CloseNormalClosure, "done")
}

func closeWS(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsWriteWait))
}

func badRequestDetail(err error) string {
	if errors.Is(err, ErrInvalidInput) {
		return err.Error()
	}
	return "invalid request body"
}
