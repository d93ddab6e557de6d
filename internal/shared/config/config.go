package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"smart-ats/internal/shared/apperr"
)

const (
	defaultModel       = "gemini-1.5-flash"
	defaultMaxUploadMB = 10
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	GoogleAPIKey    string
	LLMModel        string
	// GeminiBaseURL overrides the Gemini endpoint; empty uses the SDK default.
	GeminiBaseURL string
	MaxUploadMB   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience. Variables
	// already set in the environment win.
	loadEnvFiles(".env", "cmd/.env")

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		GoogleAPIKey:    strings.TrimSpace(os.Getenv("GOOGLE_API_KEY")),
		LLMModel:        getEnv("LLM_MODEL", defaultModel),
		GeminiBaseURL:   getEnv("GEMINI_BASE_URL", ""),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", defaultMaxUploadMB),
	}
}

// Validate reports configuration that makes the analyzer unusable. Callers
// treat its error as fatal at startup.
func (c Config) Validate() error {
	if c.GoogleAPIKey == "" {
		return apperr.New(apperr.ErrConfig, "API key not found. Please set the GOOGLE_API_KEY environment variable.")
	}
	return nil
}

// MaxUploadBytes is the multipart body cap in bytes.
func (c Config) MaxUploadBytes() int64 {
	mb := c.MaxUploadMB
	if mb <= 0 {
		mb = defaultMaxUploadMB
	}
	return int64(mb) << 20
}

func loadEnvFiles(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
