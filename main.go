package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"stylo-server/modules/common/chat"
	"stylo-server/modules/common/config"
	"stylo-server/modules/common/logger"
	"stylo-server/modules/common/middleware"
	generateimage "stylo-server/modules/generate-image"
	"stylo-server/modules/recommendation"
	"stylo-server/modules/submodule"
)

// 루트 엔드포인트
func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Stylo API is live!",
	})
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
}

func newRouter(cfg *config.Config, rec *recommendation.Handler, img *generateimage.Handler) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger, middleware.Recover)

	r.HandleFunc("/", rootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", healthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix(cfg.APIPrefix).Subrouter()
	if cfg.APIPrefix == "" {
		api = r
	}
	api.HandleFunc("/recommendations", rec.HandleRecommend).Methods(http.MethodPost)
	api.HandleFunc("/recommendations/stream", rec.HandleStream).Methods(http.MethodPost)
	api.HandleFunc("/recommendations/ws", rec.HandleStreamWS).Methods(http.MethodGet)
	api.HandleFunc("/generate-image", img.HandleGenerate).Methods(http.MethodPost)

	return newCORS(cfg.FrontendOrigins).Handler(r)
}

func main() {
	logger.Setup(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	// 환경변수 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)
	cfg.LogSummary()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chatClient, err := chat.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create chat client")
	}
	if chatClient == nil {
		log.Warn().Str("provider", cfg.ChatProvider).Msg("⚠️  chat credential missing, recommendations will use the fallback payload")
	}

	imageService, err := submodule.NewImageService(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create image service")
	}

	recHandler := recommendation.NewHandler(recommendation.NewService(chatClient), cfg.FrontendOrigins)
	imgHandler := generateimage.NewHandler(imageService, cfg.ImageRequestTimeout)

	// 스트리밍/이미지 생성이 길어서 WriteTimeout은 두지 않음
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, recHandler, imgHandler),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msgf("🚀 Stylo API starting on port %s", cfg.Port)
		log.Info().Msgf("👗 Recommendations: http://localhost:%s%s/recommendations", cfg.Port, cfg.APIPrefix)
		log.Info().Msgf("🎨 Generate image: http://localhost:%s%s/generate-image", cfg.Port, cfg.APIPrefix)
		log.Info().Msgf("❤️  Health check: http://localhost:%s/health", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("❌ Graceful shutdown failed")
	}
}
