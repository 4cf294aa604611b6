package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setRequiredEnv pins every variable the loader reads so the ambient
// environment cannot leak into assertions. An empty value reads as unset.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("SMTP_PASSWORD", "")
	t.Setenv("SMTP_FROM", "")
	t.Setenv("S3_BUCKET_NAME", "cyberlink-images")
	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "access")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	req.NoError(err)

	req.Equal("development", cfg.Environment)
	req.Equal(8080, cfg.Port)
	req.Empty(cfg.AllowedOrigins)
	req.NotEmpty(cfg.JWTSecret)
	req.NotEmpty(cfg.DatabaseDSN)
	req.Equal(587, cfg.SMTPPort)
	req.Equal("no-reply@cyberlink.app", cfg.SMTPFrom)
}

func TestLoadConfig_ParsesOrigins(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")

	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal([]string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("PORT", "not-a-number")

	_, err := LoadConfig()
	req.Error(err)
}

func TestLoadConfig_PrivilegedPortRejected(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("PORT", "80")

	_, err := LoadConfig()
	req.Error(err)
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	req := require.New(t)
	setRequiredEnv(t)
	t.Setenv("ENVIRONMENT", "production")

	// JWT_SECRET has no production fallback.
	_, err := LoadConfig()
	req.Error(err)

	t.Setenv("JWT_SECRET", "super-secret")
	_, err = LoadConfig()
	req.Error(err) // DATABASE_URL still missing

	t.Setenv("DATABASE_URL", "postgres://cyberlink:pw@db:5432/cyberlink")
	_, err = LoadConfig()
	req.Error(err) // SMTP_HOST still missing

	t.Setenv("SMTP_HOST", "smtp.example.com")
	cfg, err := LoadConfig()
	req.NoError(err)
	req.Equal("production", cfg.Environment)
}

func TestLoadConfig_MissingS3Settings(t *testing.T) {
	req := require.New(t)
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := LoadConfig()
	req.Error(err)
}
