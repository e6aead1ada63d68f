package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylo-server/modules/common/config"
	generateimage "stylo-server/modules/generate-image"
	"stylo-server/modules/recommendation"
)

type noModels struct{}

func (noModels) Name() string            { return "none" }
func (noModels) DefaultModels() []string { return []string{"m"} }
func (noModels) Generate(ctx context.Context, model string, p generateimage.Params) ([]string, error) {
	return nil, nil
}

func testRouter(origins []string) http.Handler {
	cfg := &config.Config{APIPrefix: "/ai", FrontendOrigins: origins}
	rec := recommendation.NewHandler(recommendation.NewService(nil), origins)
	img := generateimage.NewHandler(generateimage.NewService(noModels{}, generateimage.Config{}), time.Minute)
	return newRouter(cfg, rec, img)
}

func TestRootAndHealth(t *testing.T) {
	h := testRouter(nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Stylo API is live!"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRecommendationsWithoutChatCredentialFallsBack(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/recommendations", strings.NewReader(`{"clothing_item":"hoodie","color":"red"}`))
	testRouter(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"color_palette"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestGenerateImageWithoutCredentialIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ai/generate-image", strings.NewReader(`{"prompt":"x"}`))
	testRouter(nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsExposed(t *testing.T) {
	h := testRouter(nil)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stylo_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	h := testRouter([]string{"https://stylo.app"})

	req := httptest.NewRequest(http.MethodOptions, "/ai/recommendations", nil)
	req.Header.Set("Origin", "https://stylo.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://stylo.app", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ai/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
