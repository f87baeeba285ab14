package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API     APIConfig
	Session SessionConfig
	Log     LogConfig
	Exports ExportsConfig
	Stub    StubConfig
}

// APIConfig points the client at the analytics backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls where and how the local session is persisted.
type SessionConfig struct {
	Path   string
	Secret string
}

type LogConfig struct {
	Level  string
	Format string
}

// ExportsConfig controls report export output.
type ExportsConfig struct {
	Dir string
}

// StubConfig tunes the in-memory development backend.
type StubConfig struct {
	Port           int
	CodeTTL        time.Duration
	AllowedOrigins []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("HTTP_TIMEOUT"), 30*time.Second),
	}

	cfg.Session = SessionConfig{
		Path:   resolveSessionPath(v.GetString("SESSION_FILE")),
		Secret: v.GetString("SESSION_SECRET"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Exports = ExportsConfig{
		Dir: v.GetString("EXPORTS_DIR"),
	}

	cfg.Stub = StubConfig{
		Port:           v.GetInt("STUB_PORT"),
		CodeTTL:        parseDuration(v.GetString("STUB_CODE_TTL"), time.Hour),
		AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS")),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8000")
	v.SetDefault("HTTP_TIMEOUT", "30s")

	v.SetDefault("SESSION_FILE", "")
	v.SetDefault("SESSION_SECRET", "dev_secret")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("EXPORTS_DIR", "./exports")

	v.SetDefault("STUB_PORT", 8000)
	v.SetDefault("STUB_CODE_TTL", "1h")
	v.SetDefault("ALLOWED_ORIGINS", "")
}

// resolveSessionPath defaults the session file into the user's home directory.
func resolveSessionPath(raw string) string {
	if raw != "" {
		return raw
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".edusight", "session")
	}

	return filepath.Join(home, ".edusight", "session")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
