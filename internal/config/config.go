package config

import (
	"os"
	"strings"

	"bug-report-creator/internal/logger"

	"github.com/joho/godotenv"
)

var defaultAttachmentExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".txt", ".log", ".pdf"}

type Config struct {
	LogLevel logger.LogLevel
	JSONLogs bool

	// SaveDir is where headless writes land when no output path is given
	SaveDir string

	AttachmentExtensions []string
}

// Load reads an optional .env file and then the process environment
func Load() *Config {
	// Missing .env is fine
	_ = godotenv.Load()

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		LogLevel:             determineLogLevel(getenv),
		JSONLogs:             getenv("BUGREPORT_JSON_LOGS") == "true",
		SaveDir:              getEnv(getenv, "BUGREPORT_SAVE_DIR", "."),
		AttachmentExtensions: defaultAttachmentExtensions,
	}

	if exts := getenv("BUGREPORT_ATTACHMENT_EXTENSIONS"); exts != "" {
		cfg.AttachmentExtensions = parseExtensions(exts)
	}

	return cfg
}

func determineLogLevel(getenv func(string) string) logger.LogLevel {
	if level := getenv("LOG_LEVEL"); level != "" {
		return logger.ParseLevel(level)
	}
	if getenv("DEBUG") == "1" {
		return logger.DebugLevel
	}
	return logger.InfoLevel
}

func parseExtensions(raw string) []string {
	var exts []string
	for _, ext := range strings.Split(raw, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		return defaultAttachmentExtensions
	}
	return exts
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
