package config

import (
	"errors"
	"fmt"

	"subburn/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTelegram(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTelegram() error {
	if c.Telegram.Token == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/subburn/config.toml"
		}
		return fmt.Errorf("telegram.token is required. Set TELEGRAM_TOKEN env var or edit %s (create with 'subburn config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateTranscription() error {
	if c.Transcription.APIKey == "" {
		return errors.New("transcription.api_key is required. Set GROQ_API_KEY env var or add it to the config file")
	}
	return nil
}

func (c *Config) validateTranslation() error {
	if _, err := language.ParseTarget(c.Translation.TargetLanguage); err != nil {
		return fmt.Errorf("translation.target_language: %w", err)
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.Workers < 1 {
		return errors.New("pipeline.workers must be a positive integer")
	}
	if c.Pipeline.MaxVideoSeconds < 0 {
		return errors.New("pipeline.max_video_seconds must not be negative")
	}
	if c.Pipeline.JobTimeoutSeconds < 0 {
		return errors.New("pipeline.job_timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
