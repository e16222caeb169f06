package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/yoockh/jobboard/internal/listing"
)

// Config is read once at start-up from the environment (and .env).
type Config struct {
	Port     string
	LogLevel string
	GinMode  string

	KVBackend   string
	DataDir     string
	RedisAddr   string
	PostgresURI string
	MongoURI    string
	MongoDB     string

	// ProfileStore is "mongo" or "postgres"; empty picks mongo when
	// MONGO_URI is set.
	ProfileStore string

	IdentityBackend   string
	IdentityConfigURL string
	IdentityBaseURL   string
	SessionSecret     string

	LogoToken string

	ResumeBucket      string
	ResumeCredentials string

	ApplyProgressDelays bool
	ApplyConfetti       bool

	CORSAllowOrigins []string
}

func Load() Config {
	return Config{
		Port:     getenv("PORT", "8080"),
		LogLevel: getenv("LOG_LEVEL", "info"),
		GinMode:  os.Getenv("GIN_MODE"),

		KVBackend:   os.Getenv("KV_BACKEND"),
		DataDir:     getenv("DATA_DIR", "data"),
		RedisAddr:   firstEnv("REDIS_ADDR", "REDIS_URI", "REDIS_URL"),
		PostgresURI: os.Getenv("POSTGRES_URI"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getenv("MONGO_DB", "jobboard"),

		ProfileStore: strings.ToLower(os.Getenv("PROFILE_STORE")),

		IdentityBackend:   os.Getenv("IDENTITY_BACKEND"),
		IdentityConfigURL: os.Getenv("IDENTITY_CONFIG_URL"),
		IdentityBaseURL:   os.Getenv("IDENTITY_BASE_URL"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),

		LogoToken: getenv("LOGO_DEV_TOKEN", listing.DefaultLogoToken),

		ResumeBucket:      os.Getenv("RESUME_BUCKET"),
		ResumeCredentials: os.Getenv("RESUME_BUCKET_CREDENTIALS"),

		ApplyProgressDelays: boolEnv("APPLY_PROGRESS_DELAYS"),
		ApplyConfetti:       boolEnv("APPLY_CONFETTI"),

		CORSAllowOrigins: listEnv("CORS_ALLOW_ORIGINS"),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func boolEnv(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}

func listEnv(key string) []string {
	var out []string
	for _, p := range strings.Split(os.Getenv(key), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
