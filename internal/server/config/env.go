package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first; variables already set win over it.
func parseEnv(config *Config) error {
	_ = godotenv.Load()

	if port := os.Getenv("PORT"); port != "" {
		config.HTTPAddr = ":" + port
	}
	envString(&config.HTTPAddr, "HTTP_ADDR")

	envString(&config.DatabaseDSN, "DATABASE_URL")
	envString(&config.DatabaseDSN, "DATABASE_DSN")
	envString(&config.SecretKey, "JWT_SECRET")

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse TOKEN_TTL: %w", err)
		}
		config.TokenTTL = d
	}

	if v := os.Getenv("CORS_ORIGIN"); v != "" {
		config.CORSOrigins = splitList(v)
	}

	envString(&config.StaticDir, "STATIC_DIR")
	envString(&config.LogLevel, "LOG_LEVEL")
	envString(&config.S3RootUser, "S3_ROOT_USER")
	envString(&config.S3RootPassword, "S3_ROOT_PASSWORD")
	envString(&config.S3Bucket, "S3_BUCKET")
	envString(&config.S3Region, "S3_REGION")
	envString(&config.S3BaseEndpoint, "S3_BASE_ENDPOINT")
	envString(&config.S3PublicBaseURL, "S3_PUBLIC_BASE_URL")
	return nil
}

func envString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
