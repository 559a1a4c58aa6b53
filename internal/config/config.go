// Package config loads service configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the service settings.
type Config struct {
	Port          int
	DBPath        string
	MaxFileSizeMB int
	OCREnabled    bool
	OCRDPI        int
	OCRMaxPages   int
	LogLevel      string
	LogFormat     string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment
// variables take precedence over it.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		logrus.Info("loaded environment from .env")
	}

	return &Config{
		Port:          envInt("PORT", 8000),
		DBPath:        envString("DB_PATH", "statements.db"),
		MaxFileSizeMB: envInt("MAX_FILE_SIZE_MB", 10),
		OCREnabled:    envBool("OCR_ENABLED", true),
		OCRDPI:        envInt("OCR_DPI", 300),
		OCRMaxPages:   envInt("OCR_MAX_PAGES", 3),
		LogLevel:      envString("LOG_LEVEL", "info"),
		LogFormat:     envString("LOG_FORMAT", "text"),
	}
}

// ConfigureLogging sets the global logrus level and formatter from the
// config. Invalid levels fall back to info.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		logrus.Warnf("invalid log level %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if strings.ToLower(c.LogFormat) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// MaxFileSizeBytes returns the upload size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("invalid integer for %s: %q, using %d", key, v, def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logrus.Warnf("invalid boolean for %s: %q, using %v", key, v, def)
		return def
	}
	return b
}
