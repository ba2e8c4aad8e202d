// Package config loads service settings from flags, environment
// variables, and an optional .env file.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	Online    OnlineConfig
	Local     LocalConfig
	Router    RouterConfig
	STT       STTConfig
	Patients  PatientsConfig
	Knowledge KnowledgeConfig
	Media     MediaConfig
}

// OnlineConfig selects the hosted inference backend. Gemini wins when
// an API key is present; otherwise the OpenAI-compatible endpoint is
// used.
type OnlineConfig struct {
	BaseURL      string
	APIKey       string
	Model        string
	GeminiAPIKey string
	GeminiModel  string
}

// LocalConfig points at an on-device OpenAI-compatible server such as
// LM Studio.
type LocalConfig struct {
	BaseURL   string
	Model     string
	ModelPath string
}

type RouterConfig struct {
	HealthURL string
	Interval  time.Duration
}

type STTConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

type PatientsConfig struct {
	FilePath    string
	PostgresDSN string
}

type KnowledgeConfig struct {
	ProtocolsDir string
}

type MediaConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port := flag.String("port", ":8080", "server port")
	flag.Parse()

	if envPort := os.Getenv("PORT"); envPort != "" {
		if strings.HasPrefix(envPort, ":") {
			*port = envPort
		} else {
			*port = ":" + envPort
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	return &Config{
		Port:      *port,
		Env:       env,
		Online:    loadOnlineConfig(),
		Local:     loadLocalConfig(),
		Router:    loadRouterConfig(),
		STT:       loadSTTConfig(),
		Patients:  loadPatientsConfig(),
		Knowledge: loadKnowledgeConfig(),
		Media:     loadMediaConfig(env),
	}, nil
}

func loadOnlineConfig() OnlineConfig {
	return OnlineConfig{
		BaseURL:      firstNonEmpty(strings.TrimSpace(os.Getenv("ONLINE_BASE_URL")), "https://api.deepinfra.com/v1/openai"),
		APIKey:       strings.TrimSpace(os.Getenv("ONLINE_API_KEY")),
		Model:        firstNonEmpty(strings.TrimSpace(os.Getenv("ONLINE_MODEL")), "google/medgemma-27b-it"),
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  firstNonEmpty(strings.TrimSpace(os.Getenv("GEMINI_MODEL")), "gemini-2.0-flash"),
	}
}

func loadLocalConfig() LocalConfig {
	return LocalConfig{
		BaseURL:   firstNonEmpty(strings.TrimSpace(os.Getenv("LOCAL_BASE_URL")), "http://localhost:1234/v1"),
		Model:     firstNonEmpty(strings.TrimSpace(os.Getenv("LOCAL_MODEL")), "medgemma-4b-it"),
		ModelPath: strings.TrimSpace(os.Getenv("LOCAL_MODEL_PATH")),
	}
}

func loadRouterConfig() RouterConfig {
	interval := 10 * time.Second
	if raw := strings.TrimSpace(os.Getenv("ROUTER_CHECK_INTERVAL_S")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			interval = time.Duration(secs) * time.Second
		}
	}
	return RouterConfig{
		HealthURL: strings.TrimSpace(os.Getenv("ROUTER_HEALTH_URL")),
		Interval:  interval,
	}
}

func loadSTTConfig() STTConfig {
	return STTConfig{
		BaseURL: firstNonEmpty(strings.TrimSpace(os.Getenv("STT_BASE_URL")), "https://api.openai.com/v1"),
		APIKey:  strings.TrimSpace(os.Getenv("STT_API_KEY")),
		Model:   firstNonEmpty(strings.TrimSpace(os.Getenv("STT_MODEL")), "whisper-1"),
	}
}

func loadPatientsConfig() PatientsConfig {
	return PatientsConfig{
		FilePath:    firstNonEmpty(strings.TrimSpace(os.Getenv("PATIENTS_FILE")), "data/patients.json"),
		PostgresDSN: strings.TrimSpace(os.Getenv("PATIENTS_PG_DSN")),
	}
}

func loadKnowledgeConfig() KnowledgeConfig {
	return KnowledgeConfig{
		ProtocolsDir: strings.TrimSpace(os.Getenv("PROTOCOLS_DIR")),
	}
}

func loadMediaConfig(env string) MediaConfig {
	return MediaConfig{
		Endpoint:  strings.TrimSpace(os.Getenv("MEDIA_S3_ENDPOINT")),
		Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("MEDIA_S3_REGION")), "us-east-1"),
		AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("MEDIA_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
		SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("MEDIA_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
		Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("MEDIA_S3_BUCKET")), "paramedai-media"),
		UseSSL:    resolveMediaUseSSL(env),
	}
}

func resolveMediaUseSSL(env string) bool {
	if strings.EqualFold(strings.TrimSpace(env), "local") {
		return false
	}
	raw := strings.TrimSpace(os.Getenv("MEDIA_S3_USE_SSL"))
	if raw == "" {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
