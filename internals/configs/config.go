package configs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

// Config adalah seluruh pengaturan aplikasi yang dibaca dari ENV.
type Config struct {
	Env     string
	AppName string
	Port    string

	// Database
	DatabaseURL          string
	DBUser               string
	DBPassword           string
	DBHost               string
	DBPort               string
	DBName               string
	DBSSLMode            string
	DBStatementTimeoutMS int
	DBAutoMigrate        bool
	DBSlowThreshold      time.Duration

	// Auth
	JWTSecret            string
	JWTTTL               time.Duration
	OwnerOpenID          string
	GoogleClientID       string
	TokenCleanupInterval time.Duration

	// Domain
	Timezone           string
	RequestTimeout     time.Duration
	AlertWarningPoints int
	AlertDangerPoints  int

	// HTTP
	CORSOrigins       []string
	RateLimitMax      int
	LoginRateLimitMax int

	// Observability & integrasi
	RollbarToken   string
	SendgridAPIKey string
	MailFrom       string

	// Dokumen
	DocumentStorage string // "local" | "oss"
	DocumentDir     string
	DocumentBaseURL string
	OSSEndpoint     string
	OSSAccessKey    string
	OSSSecretKey    string
	OSSBucket       string
}

// Cfg diisi oleh Load() saat boot.
var Cfg *Config

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("[INFO] .env file berhasil dimuat")
		}
	} else {
		log.Println("[INFO] Running in Railway, menggunakan ENV dari sistem")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "Disiplinku")
	v.SetDefault("PORT", "3000")

	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_STATEMENT_TIMEOUT_MS", 5000)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DB_SLOW_THRESHOLD", 200*time.Millisecond)

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", 7*24*time.Hour)
	v.SetDefault("OWNER_OPEN_ID", "")
	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("TOKEN_CLEANUP_INTERVAL", 24*time.Hour)

	v.SetDefault("APP_TIMEZONE", "Asia/Riyadh")
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)
	v.SetDefault("ALERT_WARNING_POINTS", 5)
	v.SetDefault("ALERT_DANGER_POINTS", 10)

	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("LOGIN_RATE_LIMIT_MAX", 5)

	v.SetDefault("ROLLBAR_TOKEN", "")
	v.SetDefault("SENDGRID_API_KEY", "")
	v.SetDefault("MAIL_FROM", "noreply@localhost")

	v.SetDefault("DOCUMENT_STORAGE", "local")
	v.SetDefault("DOCUMENT_DIR", "./uploads")
	v.SetDefault("DOCUMENT_BASE_URL", "/documents")
	v.SetDefault("ALI_OSS_ENDPOINT", "")
	v.SetDefault("ALI_OSS_ACCESS_KEY", "")
	v.SetDefault("ALI_OSS_SECRET_KEY", "")
	v.SetDefault("ALI_OSS_BUCKET", "")

	v.AutomaticEnv()
	return v
}

// Load membaca ENV (dengan default) ke Config dan menyimpannya di Cfg.
func Load() *Config {
	v := newViper()

	cfg := &Config{
		Env:     strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		AppName: v.GetString("APP_NAME"),
		Port:    strings.TrimSpace(v.GetString("PORT")),

		DatabaseURL:          strings.TrimSpace(v.GetString("DATABASE_URL")),
		DBUser:               v.GetString("DB_USER"),
		DBPassword:           v.GetString("DB_PASSWORD"),
		DBHost:               v.GetString("DB_HOST"),
		DBPort:               v.GetString("DB_PORT"),
		DBName:               v.GetString("DB_NAME"),
		DBSSLMode:            v.GetString("DB_SSLMODE"),
		DBStatementTimeoutMS: v.GetInt("DB_STATEMENT_TIMEOUT_MS"),
		DBAutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
		DBSlowThreshold:      v.GetDuration("DB_SLOW_THRESHOLD"),

		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTTTL:               v.GetDuration("JWT_TTL"),
		OwnerOpenID:          strings.TrimSpace(v.GetString("OWNER_OPEN_ID")),
		GoogleClientID:       strings.TrimSpace(v.GetString("GOOGLE_CLIENT_ID")),
		TokenCleanupInterval: v.GetDuration("TOKEN_CLEANUP_INTERVAL"),

		Timezone:           strings.TrimSpace(v.GetString("APP_TIMEZONE")),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		AlertWarningPoints: v.GetInt("ALERT_WARNING_POINTS"),
		AlertDangerPoints:  v.GetInt("ALERT_DANGER_POINTS"),

		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
		RateLimitMax:      v.GetInt("RATE_LIMIT_MAX"),
		LoginRateLimitMax: v.GetInt("LOGIN_RATE_LIMIT_MAX"),

		RollbarToken:   v.GetString("ROLLBAR_TOKEN"),
		SendgridAPIKey: v.GetString("SENDGRID_API_KEY"),
		MailFrom:       v.GetString("MAIL_FROM"),

		DocumentStorage: strings.ToLower(strings.TrimSpace(v.GetString("DOCUMENT_STORAGE"))),
		DocumentDir:     v.GetString("DOCUMENT_DIR"),
		DocumentBaseURL: strings.TrimRight(v.GetString("DOCUMENT_BASE_URL"), "/"),
		OSSEndpoint:     v.GetString("ALI_OSS_ENDPOINT"),
		OSSAccessKey:    v.GetString("ALI_OSS_ACCESS_KEY"),
		OSSSecretKey:    v.GetString("ALI_OSS_SECRET_KEY"),
		OSSBucket:       v.GetString("ALI_OSS_BUCKET"),
	}

	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET belum diset!")
	}
	if cfg.GoogleClientID == "" {
		log.Println("[WARN] GOOGLE_CLIENT_ID belum diset, login Google nonaktif")
	}
	if cfg.AlertDangerPoints < cfg.AlertWarningPoints {
		log.Printf("[WARN] ALERT_DANGER_POINTS (%d) < ALERT_WARNING_POINTS (%d), disamakan",
			cfg.AlertDangerPoints, cfg.AlertWarningPoints)
		cfg.AlertDangerPoints = cfg.AlertWarningPoints
	}

	Cfg = cfg
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Location mengembalikan timezone sekolah; fallback UTC kalau nama zona tidak dikenal.
func (c *Config) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("[WARN] APP_TIMEZONE %q tidak valid: %v", c.Timezone, err)
		return time.UTC
	}
	return loc
}

// DSN membangun connection string PostgreSQL + statement_timeout.
// DATABASE_URL (kalau ada) diprioritaskan.
func (c *Config) DSN() string {
	timeout := c.DBStatementTimeoutMS
	if timeout <= 0 {
		timeout = 5000
	}
	opt := fmt.Sprintf("-c statement_timeout=%d", timeout)

	if c.DatabaseURL != "" {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return c.DatabaseURL
		}
		q := u.Query()
		if q.Get("options") == "" {
			q.Set("options", opt)
		}
		if q.Get("application_name") == "" {
			q.Set("application_name", "disiplinku")
		}
		u.RawQuery = q.Encode()
		return u.String()
	}

	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	q.Set("application_name", "disiplinku")
	q.Set("options", opt)
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(slow time.Duration, level gormLogger.LogLevel) gormLogger.Interface {
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return &GormLogger{
		SlowThreshold: slow,
		LogLevel:      level,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	nl := *l
	nl.LogLevel = level
	return &nl
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		log.Printf("[INFO] "+msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		log.Printf("[WARN] "+msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		log.Printf("[ERROR] "+msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	case l.LogLevel >= gormLogger.Info:
		log.Printf("[QUERY] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
