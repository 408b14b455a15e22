package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Telegram contains the transport credential and endpoint settings.
type Telegram struct {
	Token              string `toml:"token"`
	BaseURL            string `toml:"base_url"`
	PollTimeoutSeconds int    `toml:"poll_timeout_seconds"`
}

// Transcription contains the speech-to-text provider settings.
type Transcription struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// Translation contains the translation provider settings.
type Translation struct {
	BaseURL               string `toml:"base_url"`
	TargetLanguage        string `toml:"target_language"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// Pipeline contains job admission and processing settings.
type Pipeline struct {
	Workers           int    `toml:"workers"`
	MaxVideoSeconds   int    `toml:"max_video_seconds"`
	JobTimeoutSeconds int    `toml:"job_timeout_seconds"`
	WorkDir           string `toml:"work_dir"`
	FontsDir          string `toml:"fonts_dir"`
	FontName          string `toml:"font_name"`
	FFmpegBinary      string `toml:"ffmpeg_binary"`
}

// Paths contains file locations and the health endpoint bind address.
type Paths struct {
	LogDir     string `toml:"log_dir"`
	HistoryDB  string `toml:"history_db"`
	HealthBind string `toml:"health_bind"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for subburn.
type Config struct {
	Telegram      Telegram      `toml:"telegram"`
	Transcription Transcription `toml:"transcription"`
	Translation   Translation   `toml:"translation"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/subburn/config.toml")
}

// SampleConfig returns the embedded sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has env overrides applied and all path fields expanded. The second
// return value is the resolved path; the third reports whether the file
// existed (defaults plus env may be a complete configuration on their own).
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			return home, nil
		}
		return filepath.Join(home, pathValue[2:]), nil
	}
	return filepath.Abs(pathValue)
}
