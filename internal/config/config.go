package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	BaseURL          string
	DatabaseURL      string
	SessionSecret    string
	SessionTTL       time.Duration
	GoogleAudience   string
	MapboxToken      string
	GeocodeTimeout   time.Duration
	LogstashTCPAddr  string
	MinIOEndpoint    string
	MinIOAccessKey   string
	MinIOSecretKey   string
	MinIOUseSSL      bool
	MinIOBucket      string
	MinIOPublicURL   string
	FFMPEGPath       string
	ImageMaxBytes    int64
	SMTPHost         string
	SMTPPort         string
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	PasswordResetTTL time.Duration
	ResetOTPLength   int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	otpLen := 6
	if v, err := strconv.Atoi(getenv("PASSWORD_RESET_OTP_LENGTH", "6")); err == nil && v > 0 {
		otpLen = v
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("LISTING_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	return Config{
		Port:             getenv("PORT", "8080"),
		BaseURL:          getenv("BASE_URL", "http://localhost:8080"),
		DatabaseURL:      must("DATABASE_URL"),
		SessionSecret:    must("SESSION_SECRET"),
		SessionTTL:       duration(getenv("SESSION_TTL", "168h"), 7*24*time.Hour),
		GoogleAudience:   getenv("GOOGLE_AUDIENCE", ""),
		MapboxToken:      getenv("MAP_TOKEN", ""),
		GeocodeTimeout:   duration(getenv("GEOCODE_TIMEOUT", "5s"), 5*time.Second),
		LogstashTCPAddr:  getenv("LOGSTASH_TCP_ADDR", ""),
		MinIOEndpoint:    must("MINIO_ENDPOINT"),
		MinIOAccessKey:   must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:   must("MINIO_SECRET_KEY"),
		MinIOUseSSL:      getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucket:      getenv("MINIO_BUCKET_LISTINGS", "wanderlust-listings"),
		MinIOPublicURL:   getenv("MINIO_PUBLIC_URL", ""),
		FFMPEGPath:       getenv("FFMPEG_PATH", "ffmpeg"),
		ImageMaxBytes:    imageMax,
		SMTPHost:         getenv("SMTP_HOST", ""),
		SMTPPort:         getenv("SMTP_PORT", ""),
		SMTPUsername:     getenv("SMTP_USERNAME", ""),
		SMTPPassword:     getenv("SMTP_PASSWORD", ""),
		SMTPFrom:         getenv("SMTP_FROM", ""),
		PasswordResetTTL: duration(getenv("PASSWORD_RESET_TTL", "15m"), 15*time.Minute),
		ResetOTPLength:   otpLen,
	}
}

func duration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
