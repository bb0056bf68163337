package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort       = "8080"
	defaultAccessTTL  = "15m"
	defaultRefreshTTL = "168h"
	defaultUploadDir  = "./uploads"
)

// Config is built once in main and passed to the components that need
// it; nothing reads the environment after startup.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	// local file storage
	UploadDir  string
	CDNBaseURL string // prefix substituted for stored relative paths

	// remote object storage
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3BaseURL   string
	S3UseSSL    bool

	// push notifications
	FirebaseCredentialsFile string
}

func Load() (*Config, error) {
	// best effort; absence of .env is normal outside local dev
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:      strings.ToLower(getEnv("APP_ENV", "dev")),
		Port:        getEnv("PORT", defaultPort),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),

		JWTSecret: strings.TrimSpace(os.Getenv("JWT_SECRET")),

		UploadDir:  getEnv("UPLOAD_DIR", defaultUploadDir),
		CDNBaseURL: strings.TrimSuffix(getEnv("CDN_URL", ""), "/"),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3BaseURL:   strings.TrimSuffix(getEnv("S3_BASE_URL", ""), "/"),

		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.JWTRefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", defaultRefreshTTL); err != nil {
		return nil, err
	}

	if cfg.S3UseSSL, err = strconv.ParseBool(getEnv("S3_USE_SSL", "true")); err != nil {
		return nil, fmt.Errorf("S3_USE_SSL: %w", err)
	}

	return cfg, nil
}

// S3Enabled reports whether the remote uploader should be wired at all.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}
