package config

import (
	"testing"
	"time"
)

func TestLoadOnlineConfigDefaults(t *testing.T) {
	t.Setenv("ONLINE_BASE_URL", "")
	t.Setenv("ONLINE_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "gk")

	cfg := loadOnlineConfig()
	if cfg.BaseURL != "https://api.deepinfra.com/v1/openai" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Model != "google/medgemma-27b-it" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.GeminiAPIKey != "gk" {
		t.Errorf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
}

func TestLoadRouterConfigInterval(t *testing.T) {
	t.Setenv("ROUTER_CHECK_INTERVAL_S", "30")
	if got := loadRouterConfig().Interval; got != 30*time.Second {
		t.Errorf("Interval = %v", got)
	}

	t.Setenv("ROUTER_CHECK_INTERVAL_S", "not-a-number")
	if got := loadRouterConfig().Interval; got != 10*time.Second {
		t.Errorf("Interval = %v, want default", got)
	}
}

func TestLoadPatientsConfig(t *testing.T) {
	t.Setenv("PATIENTS_FILE", "")
	t.Setenv("PATIENTS_PG_DSN", "postgres://x")

	cfg := loadPatientsConfig()
	if cfg.FilePath != "data/patients.json" {
		t.Errorf("FilePath = %q", cfg.FilePath)
	}
	if cfg.PostgresDSN != "postgres://x" {
		t.Errorf("PostgresDSN = %q", cfg.PostgresDSN)
	}
}

func TestResolveMediaUseSSL(t *testing.T) {
	if resolveMediaUseSSL("local") {
		t.Error("local env should disable SSL")
	}
	t.Setenv("MEDIA_S3_USE_SSL", "")
	if !resolveMediaUseSSL("prod") {
		t.Error("prod env should default to SSL")
	}
	t.Setenv("MEDIA_S3_USE_SSL", "false")
	if resolveMediaUseSSL("prod") {
		t.Error("explicit false should disable SSL")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "  ", "a", "b"); got != "a" {
		t.Errorf("firstNonEmpty = %q", got)
	}
	if got := firstNonEmpty("", "  "); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
