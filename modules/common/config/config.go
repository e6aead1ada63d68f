package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Chat / image provider names
const (
	ChatProviderOpenAI     = "openai"
	ChatProviderGemini     = "gemini"
	ImageProviderReplicate = "replicate"
	ImageProviderRunware   = "runware"
)

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Server
	Env             string   `env:"ENV" envDefault:"development"`
	Port            string   `env:"PORT" envDefault:"8080"`
	APIPrefix       string   `env:"API_PREFIX" envDefault:"/ai"`
	FrontendOrigins []string `env:"FRONTEND_ORIGINS" envSeparator:","`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Chat
	ChatProvider  string   `env:"CHAT_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey  string   `env:"OPENAI_API_KEY"`
	OpenAIModel   string   `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string   `env:"OPENAI_BASE_URL"`
	GeminiAPIKeys []string `env:"GEMINI_API_KEYS" envSeparator:","`
	GeminiModel   string   `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	// Image generation
	ImageProvider     string `env:"IMAGE_PROVIDER" envDefault:"replicate"`
	ReplicateAPIToken string `env:"REPLICATE_API_TOKEN"`
	ReplicateModel    string `env:"REPLICATE_MODEL"`
	RunwareAPIKey     string `env:"RUNWARE_API_KEY"`
	RunwareAPIURL     string `env:"RUNWARE_API_URL" envDefault:"https://api.runware.ai/v1"`
	RunwareModel      string `env:"RUNWARE_MODEL"`

	ImageCallTimeout    time.Duration `env:"IMAGE_CALL_TIMEOUT" envDefault:"120s"`
	ImageRetryBaseDelay time.Duration `env:"IMAGE_RETRY_BASE_DELAY" envDefault:"2s"`
	ImageRequestTimeout time.Duration `env:"IMAGE_REQUEST_TIMEOUT" envDefault:"10m"`
}

// Load - .env 로드 (production 제외) 후 환경변수 파싱
func Load() (*Config, error) {
	if !isProduction() {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg("⚠️  .env file not found, using environment variables")
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isProduction() bool {
	var probe struct {
		Env string `env:"ENV" envDefault:"development"`
	}
	_ = env.Parse(&probe)
	return strings.EqualFold(probe.Env, "production")
}

func (c *Config) normalize() {
	c.ChatProvider = strings.ToLower(strings.TrimSpace(c.ChatProvider))
	c.ImageProvider = strings.ToLower(strings.TrimSpace(c.ImageProvider))

	prefix := strings.TrimSpace(c.APIPrefix)
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	c.APIPrefix = strings.TrimSuffix(prefix, "/")

	origins := c.FrontendOrigins[:0]
	for _, o := range c.FrontendOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.FrontendOrigins = origins

	keys := c.GeminiAPIKeys[:0]
	for _, k := range c.GeminiAPIKeys {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	c.GeminiAPIKeys = keys
}

// Validate - 설정값 검증. 자격증명은 요청 시점에 확인
func (c *Config) Validate() error {
	switch c.ChatProvider {
	case ChatProviderOpenAI, ChatProviderGemini:
	default:
		return fmt.Errorf("CHAT_PROVIDER must be %q or %q, got %q", ChatProviderOpenAI, ChatProviderGemini, c.ChatProvider)
	}
	switch c.ImageProvider {
	case ImageProviderReplicate, ImageProviderRunware:
	default:
		return fmt.Errorf("IMAGE_PROVIDER must be %q or %q, got %q", ImageProviderReplicate, ImageProviderRunware, c.ImageProvider)
	}
	if c.ImageCallTimeout <= 0 {
		return fmt.Errorf("IMAGE_CALL_TIMEOUT must be positive")
	}
	if c.ImageRetryBaseDelay < 0 {
		return fmt.Errorf("IMAGE_RETRY_BASE_DELAY must not be negative")
	}
	if c.ImageRequestTimeout <= 0 {
		return fmt.Errorf("IMAGE_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// ImageCredential - 선택된 이미지 provider의 API 키
func (c *Config) ImageCredential() string {
	if c.ImageProvider == ImageProviderRunware {
		return c.RunwareAPIKey
	}
	return c.ReplicateAPIToken
}

// ImageModelOverride - 선택된 provider의 우선 모델 (없으면 "")
func (c *Config) ImageModelOverride() string {
	if c.ImageProvider == ImageProviderRunware {
		return strings.TrimSpace(c.RunwareModel)
	}
	return strings.TrimSpace(c.ReplicateModel)
}

// LogSummary prints the non-secret parts of the config.
func (c *Config) LogSummary() {
	log.Info().
		Str("env", c.Env).
		Str("port", c.Port).
		Str("api_prefix", c.APIPrefix).
		Str("chat_provider", c.ChatProvider).
		Str("image_provider", c.ImageProvider).
		Bool("image_credential", c.ImageCredential() != "").
		Strs("frontend_origins", c.FrontendOrigins).
		Msg("✅ Configuration loaded successfully")
}
