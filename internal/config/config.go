// Package config gathers environment-driven settings and the optional render
// targets file.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the pipeline reads from the environment.
type Config struct {
	Token      string
	FileKey    string
	CatalogDSN string
	Publish    PublishConfig
}

// PublishConfig configures the optional S3-compatible artifact publisher.
type PublishConfig struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// FromEnv loads .env (if present) and reads the environment.
func FromEnv() Config {
	_ = godotenv.Load()
	return Config{
		Token:      strings.TrimSpace(os.Getenv("FIGMA_TOKEN")),
		FileKey:    strings.TrimSpace(os.Getenv("FIGMA_FILE_KEY")),
		CatalogDSN: strings.TrimSpace(os.Getenv("CANOPY_CATALOG_DSN")),
		Publish: PublishConfig{
			Endpoint:  strings.TrimSpace(os.Getenv("CANOPY_S3_ENDPOINT")),
			Region:    firstNonEmpty(strings.TrimSpace(os.Getenv("CANOPY_S3_REGION")), "us-east-1"),
			AccessKey: firstNonEmpty(strings.TrimSpace(os.Getenv("CANOPY_S3_ACCESS_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_USER"))),
			SecretKey: firstNonEmpty(strings.TrimSpace(os.Getenv("CANOPY_S3_SECRET_KEY")), strings.TrimSpace(os.Getenv("MINIO_ROOT_PASSWORD"))),
			Bucket:    firstNonEmpty(strings.TrimSpace(os.Getenv("CANOPY_S3_BUCKET")), "canopy-design-tokens"),
			UseSSL:    boolEnv("CANOPY_S3_USE_SSL", false),
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func boolEnv(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
