package configs

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ALERT_WARNING_POINTS", "")
	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 5, cfg.AlertWarningPoints)
	assert.Equal(t, 10, cfg.AlertDangerPoints)
	assert.Equal(t, 24*time.Hour, cfg.TokenCleanupInterval)
	assert.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "local", cfg.DocumentStorage)
	assert.Same(t, cfg, Cfg)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", " Production ")
	t.Setenv("ALERT_WARNING_POINTS", "20")
	t.Setenv("ALERT_DANGER_POINTS", "8")
	t.Setenv("TOKEN_CLEANUP_INTERVAL", "6h")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("DOCUMENT_BASE_URL", "/files/")
	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 20, cfg.AlertWarningPoints)
	assert.Equal(t, 20, cfg.AlertDangerPoints, "danger tidak boleh di bawah warning")
	assert.Equal(t, 6*time.Hour, cfg.TokenCleanupInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "/files", cfg.DocumentBaseURL)
}

func TestDSN(t *testing.T) {
	c := &Config{DBUser: "app", DBPassword: "p@ss", DBHost: "db", DBPort: "5432", DBName: "disiplin", DBSSLMode: "disable"}
	u, err := url.Parse(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/disiplin", u.Path)
	pw, _ := u.User.Password()
	assert.Equal(t, "p@ss", pw)
	assert.Equal(t, "-c statement_timeout=5000", u.Query().Get("options"))

	c = &Config{DatabaseURL: "postgres://u:p@h/db?options=keep", DBStatementTimeoutMS: 100}
	u, err = url.Parse(c.DSN())
	require.NoError(t, err)
	assert.Equal(t, "keep", u.Query().Get("options"))
	assert.Equal(t, "disiplinku", u.Query().Get("application_name"))
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, (*Config)(nil).Location())
	assert.Equal(t, time.UTC, (&Config{Timezone: "Mars/Olympus"}).Location())
	assert.Equal(t, "Asia/Riyadh", (&Config{Timezone: "Asia/Riyadh"}).Location().String())
}
