package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

const (
	BlobBackendFS = "fs"
	BlobBackendS3 = "s3"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	BlobBackend string
	BlobDir     string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string

	RedisAddr        string
	TemplateCacheTTL time.Duration

	KafkaHost                    string
	KafkaOrderStatusChangedTopic string

	AutoAdvanceSchedule string
	FetchConcurrency    int
	FetchTimeout        time.Duration
	LookupTimeout       time.Duration
}

// DSN is the libpq connection string for the orders database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the configuration through getenv, normally os.Getenv
// after godotenv has loaded .env. Unset keys fall back to defaults suited
// to a local run.
func LoadConfig(getenv func(string) string) (Config, error) {
	env := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:   env("HTTP_PORT", "8080"),
		DBHost:     env("DB_HOST", "localhost"),
		DBPort:     env("DB_PORT", "5432"),
		DBUser:     env("DB_USER", "postgres"),
		DBPassword: getenv("DB_PASSWORD"),
		DBName:     env("DB_NAME", "fulfillment"),
		DBSslMode:  env("DB_SSLMODE", "disable"),

		BlobBackend: strings.ToLower(env("BLOB_BACKEND", BlobBackendFS)),
		BlobDir:     env("BLOB_DIR", "./data/designs"),
		S3Bucket:    env("S3_BUCKET", ""),
		S3Region:    env("S3_REGION", "us-east-1"),
		S3Endpoint:  env("S3_ENDPOINT", ""),
		S3Prefix:    env("S3_PREFIX", ""),

		RedisAddr: env("REDIS_ADDR", ""),

		KafkaHost:                    env("KAFKA_HOST", ""),
		KafkaOrderStatusChangedTopic: env("KAFKA_ORDER_STATUS_CHANGED_TOPIC", "order.status_changed"),

		AutoAdvanceSchedule: env("AUTO_ADVANCE_SCHEDULE", ""),
	}

	var err error
	cfg.TemplateCacheTTL, err = duration("TEMPLATE_CACHE_TTL", env("TEMPLATE_CACHE_TTL", "5m"), err)
	cfg.FetchTimeout, err = duration("FETCH_TIMEOUT", env("FETCH_TIMEOUT", "10s"), err)
	cfg.LookupTimeout, err = duration("LOOKUP_TIMEOUT", env("LOOKUP_TIMEOUT", "5s"), err)

	concurrency, convErr := strconv.Atoi(env("FETCH_CONCURRENCY", "4"))
	switch {
	case convErr != nil:
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("FETCH_CONCURRENCY", convErr))
	case concurrency < 1:
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("FETCH_CONCURRENCY", concurrency, 1, "unbounded"))
	}
	cfg.FetchConcurrency = concurrency

	switch cfg.BlobBackend {
	case BlobBackendFS:
	case BlobBackendS3:
		if cfg.S3Bucket == "" {
			err = errors.Join(err, errs.NewValueIsRequiredError("S3_BUCKET"))
		}
	default:
		err = errors.Join(err, errs.NewValueIsInvalidError("BLOB_BACKEND"))
	}

	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func duration(key, raw string, acc error) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.Join(acc, errs.NewValueIsInvalidErrorWithCause(key, err))
	}
	if d <= 0 {
		return 0, errors.Join(acc, errs.NewValueIsOutOfRangeError(key, d, "1ns", "unbounded"))
	}
	return d, acc
}
