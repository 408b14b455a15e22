// Package config loads, defaults, and validates subburn configuration from a
// TOML file with environment variable overrides for credentials and platform
// settings (TELEGRAM_TOKEN/BOT_TOKEN, GROQ_API_KEY, WORKERS,
// MAX_VIDEO_SECONDS, PORT).
package config
