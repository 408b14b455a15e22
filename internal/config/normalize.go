package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTelegram()
	c.normalizeTranscription()
	c.normalizeTranslation()
	if err := c.normalizePipeline(); err != nil {
		return err
	}
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTelegram() {
	c.Telegram.Token = strings.TrimSpace(c.Telegram.Token)
	if c.Telegram.Token == "" {
		if value, ok := os.LookupEnv("TELEGRAM_TOKEN"); ok {
			c.Telegram.Token = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("BOT_TOKEN"); ok {
			c.Telegram.Token = strings.TrimSpace(value)
		}
	}
	c.Telegram.BaseURL = strings.TrimRight(strings.TrimSpace(c.Telegram.BaseURL), "/")
	if c.Telegram.BaseURL == "" {
		c.Telegram.BaseURL = defaultTelegramBaseURL
	}
	if c.Telegram.PollTimeoutSeconds <= 0 {
		c.Telegram.PollTimeoutSeconds = defaultPollTimeoutSeconds
	}
}

func (c *Config) normalizeTranscription() {
	c.Transcription.APIKey = strings.TrimSpace(c.Transcription.APIKey)
	if c.Transcription.APIKey == "" {
		if value, ok := os.LookupEnv("GROQ_API_KEY"); ok {
			c.Transcription.APIKey = strings.TrimSpace(value)
		}
	}
	c.Transcription.BaseURL = strings.TrimRight(strings.TrimSpace(c.Transcription.BaseURL), "/")
	if c.Transcription.BaseURL == "" {
		c.Transcription.BaseURL = defaultTranscriptionURL
	}
	if strings.TrimSpace(c.Transcription.Model) == "" {
		c.Transcription.Model = defaultTranscriptionModel
	}
}

func (c *Config) normalizeTranslation() {
	c.Translation.BaseURL = strings.TrimRight(strings.TrimSpace(c.Translation.BaseURL), "/")
	if c.Translation.BaseURL == "" {
		c.Translation.BaseURL = defaultTranslationURL
	}
	if strings.TrimSpace(c.Translation.TargetLanguage) == "" {
		c.Translation.TargetLanguage = defaultTargetLanguage
	}
	if c.Translation.RequestTimeoutSeconds <= 0 {
		c.Translation.RequestTimeoutSeconds = defaultTranslationTimeout
	}
}

func (c *Config) normalizePipeline() error {
	if value, ok := os.LookupEnv("WORKERS"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("WORKERS: %w", err)
		}
		c.Pipeline.Workers = parsed
	}
	if value, ok := os.LookupEnv("MAX_VIDEO_SECONDS"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("MAX_VIDEO_SECONDS: %w", err)
		}
		c.Pipeline.MaxVideoSeconds = parsed
	}
	if c.Pipeline.Workers == 0 {
		c.Pipeline.Workers = defaultWorkers
	}
	if strings.TrimSpace(c.Pipeline.FontName) == "" {
		c.Pipeline.FontName = defaultFontName
	}
	if strings.TrimSpace(c.Pipeline.FFmpegBinary) == "" {
		c.Pipeline.FFmpegBinary = defaultFFmpegBinary
	}

	var err error
	if c.Pipeline.WorkDir, err = expandPath(c.Pipeline.WorkDir); err != nil {
		return fmt.Errorf("pipeline.work_dir: %w", err)
	}
	if c.Pipeline.FontsDir, err = expandPath(c.Pipeline.FontsDir); err != nil {
		return fmt.Errorf("pipeline.fonts_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}

	c.Paths.HealthBind = strings.TrimSpace(c.Paths.HealthBind)
	if c.Paths.HealthBind == "" {
		c.Paths.HealthBind = defaultHealthBind
	}
	// PORT overrides only the port component, matching platform conventions.
	if value, ok := os.LookupEnv("PORT"); ok {
		port := strings.TrimSpace(value)
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		host, _, splitErr := net.SplitHostPort(c.Paths.HealthBind)
		if splitErr != nil {
			host = "0.0.0.0"
		}
		c.Paths.HealthBind = net.JoinHostPort(host, port)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
