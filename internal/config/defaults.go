package config

const (
	defaultTelegramBaseURL     = "https://api.telegram.org"
	defaultPollTimeoutSeconds  = 60
	defaultTranscriptionURL    = "https://api.groq.com/openai/v1"
	defaultTranscriptionModel  = "whisper-large-v3-turbo"
	defaultTranslationURL      = "https://translate.googleapis.com"
	defaultTargetLanguage      = "iw"
	defaultTranslationTimeout  = 30
	defaultWorkers             = 1
	defaultMaxVideoSeconds     = 300
	defaultJobTimeoutSeconds   = 900
	defaultWorkDir             = "~/.local/share/subburn/work"
	defaultFontName            = "NotoSansHebrew"
	defaultFFmpegBinary        = "ffmpeg"
	defaultLogDir              = "~/.local/share/subburn/logs"
	defaultHistoryDB           = "~/.local/share/subburn/history.db"
	defaultHealthBind          = "0.0.0.0:8080"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Telegram: Telegram{
			BaseURL:            defaultTelegramBaseURL,
			PollTimeoutSeconds: defaultPollTimeoutSeconds,
		},
		Transcription: Transcription{
			BaseURL: defaultTranscriptionURL,
			Model:   defaultTranscriptionModel,
		},
		Translation: Translation{
			BaseURL:               defaultTranslationURL,
			TargetLanguage:        defaultTargetLanguage,
			RequestTimeoutSeconds: defaultTranslationTimeout,
		},
		Pipeline: Pipeline{
			Workers:           defaultWorkers,
			MaxVideoSeconds:   defaultMaxVideoSeconds,
			JobTimeoutSeconds: defaultJobTimeoutSeconds,
			WorkDir:           defaultWorkDir,
			FontName:          defaultFontName,
			FFmpegBinary:      defaultFFmpegBinary,
		},
		Paths: Paths{
			LogDir:     defaultLogDir,
			HistoryDB:  defaultHistoryDB,
			HealthBind: defaultHealthBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
