package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subburn/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TELEGRAM_TOKEN", "BOT_TOKEN", "GROQ_API_KEY", "WORKERS", "MAX_VIDEO_SECONDS", "PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

const minimalConfig = `
[telegram]
token = "tg-token"

[transcription]
api_key = "groq-key"
`

func TestLoadAppliesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, _, exists, err := config.Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("config file not detected")
	}
	if cfg.Pipeline.Workers != 1 {
		t.Fatalf("Workers = %d, want default 1", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.MaxVideoSeconds != 300 {
		t.Fatalf("MaxVideoSeconds = %d, want default 300", cfg.Pipeline.MaxVideoSeconds)
	}
	if cfg.Translation.TargetLanguage != "iw" {
		t.Fatalf("TargetLanguage = %q, want default iw", cfg.Translation.TargetLanguage)
	}
	if cfg.Transcription.Model != "whisper-large-v3-turbo" {
		t.Fatalf("Model = %q", cfg.Transcription.Model)
	}
	if cfg.Paths.HealthBind != "0.0.0.0:8080" {
		t.Fatalf("HealthBind = %q", cfg.Paths.HealthBind)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOT_TOKEN", "env-token")
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("WORKERS", "3")
	t.Setenv("MAX_VIDEO_SECONDS", "120")
	t.Setenv("PORT", "9090")

	cfg, _, _, err := config.Load(writeConfig(t, "[telegram]\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "env-token" {
		t.Fatalf("Token = %q", cfg.Telegram.Token)
	}
	if cfg.Transcription.APIKey != "env-key" {
		t.Fatalf("APIKey = %q", cfg.Transcription.APIKey)
	}
	if cfg.Pipeline.Workers != 3 {
		t.Fatalf("Workers = %d", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.MaxVideoSeconds != 120 {
		t.Fatalf("MaxVideoSeconds = %d", cfg.Pipeline.MaxVideoSeconds)
	}
	if !strings.HasSuffix(cfg.Paths.HealthBind, ":9090") {
		t.Fatalf("HealthBind = %q, want PORT override", cfg.Paths.HealthBind)
	}
}

func TestLoadRejectsMissingCredentials(t *testing.T) {
	clearEnv(t)
	if _, _, _, err := config.Load(writeConfig(t, "[telegram]\n")); err == nil {
		t.Fatal("Load succeeded without telegram token")
	}
	if _, _, _, err := config.Load(writeConfig(t, "[telegram]\ntoken = \"x\"\n")); err == nil {
		t.Fatal("Load succeeded without transcription api key")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"zero workers", minimalConfig + "[pipeline]\nworkers = -1\n"},
		{"bad language", minimalConfig + "[translation]\ntarget_language = \"!!\"\n"},
		{"bad log format", minimalConfig + "[logging]\nformat = \"xml\"\n"},
		{"bad log level", minimalConfig + "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := config.Load(writeConfig(t, tt.content)); err == nil {
				t.Fatalf("Load accepted %s", tt.name)
			}
		})
	}
}

func TestSampleConfigParses(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "t")
	t.Setenv("GROQ_API_KEY", "g")
	if _, _, _, err := config.Load(writeConfig(t, config.SampleConfig())); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
