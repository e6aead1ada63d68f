package generateimage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func serve(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/generate-image", strings.NewReader(body))
	h.HandleGenerate(rec, req)
	return rec
}

func TestHandleGenerateOK(t *testing.T) {
	b := &mockBackend{models: []string{"model-a"}}
	b.On("Generate", mock.Anything, "model-a", mock.Anything).Return([]string{"https://cdn.example/a.png"}, nil).Once()

	svc, _ := newTestService(b, Config{Credential: "tok"})
	rec := serve(NewHandler(svc, time.Minute), `{"prompt":"red hoodie, black jeans"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"image_url":"https://cdn.example/a.png"}`, rec.Body.String())
}

func TestHandleGenerateBadRequest(t *testing.T) {
	b := &mockBackend{models: []string{"model-a"}}
	svc, _ := newTestService(b, Config{Credential: "tok"})
	h := NewHandler(svc, time.Minute)

	assert.Equal(t, http.StatusBadRequest, serve(h, `{"prompt":"   "}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, `nope`).Code)
	b.AssertNumberOfCalls(t, "Generate", 0)
}

func TestHandleGenerateMissingCredentialIs500(t *testing.T) {
	b := &mockBackend{models: []string{"model-a"}}
	svc, _ := newTestService(b, Config{})
	rec := serve(NewHandler(svc, time.Minute), `{"prompt":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "credential")
}

func TestHandleGenerateExhaustedIs500(t *testing.T) {
	b := &mockBackend{models: []string{"model-a"}}
	b.On("Generate", mock.Anything, "model-a", mock.Anything).Return(nil, errors.New("nsfw filter"))

	svc, _ := newTestService(b, Config{Credential: "tok"})
	rec := serve(NewHandler(svc, time.Minute), `{"prompt":"x"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "after 3 retries: nsfw filter")
}

func TestHandleGenerateBudgetIs504(t *testing.T) {
	b := &mockBackend{models: []string{"model-a"}}
	b.On("Generate", mock.Anything, "model-a", mock.Anything).
		Run(func(args mock.Arguments) { <-args.Get(0).(context.Context).Done() }).
		Return(nil, context.DeadlineExceeded)

	svc, _ := newTestService(b, Config{Credential: "tok", CallTimeout: time.Minute})
	rec := serve(NewHandler(svc, 20*time.Millisecond), `{"prompt":"x"}`)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}
