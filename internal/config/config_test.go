package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SANITY_PROJECT_ID", "yvk99lag")
	t.Setenv("SANITY_API_TOKEN", "sk-write")
	t.Setenv("OPERATOR_EMAIL", "studio@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendSanity, cfg.Content.Backend)
	assert.Equal(t, "production", cfg.Content.Dataset)
	assert.Equal(t, "2024-01-01", cfg.Content.APIVersion)
	assert.Equal(t, 10*time.Second, cfg.Content.Timeout)
	assert.Equal(t, ProviderSMTP, cfg.Email.Provider)
	assert.Equal(t, 587, cfg.Email.SMTPPort)
	assert.Equal(t, "24-48 hours", cfg.Notify.ResponseWindow)
	assert.Equal(t, "8000", cfg.App.Port)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CONTENT_TIMEOUT", "3s")
	t.Setenv("EMAIL_PROVIDER", "RESEND")
	t.Setenv("EMAIL_TIMEOUT", "not-a-duration")
	t.Setenv("ALLOWED_HOSTS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Content.Timeout)
	assert.Equal(t, ProviderResend, cfg.Email.Provider)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout, "invalid duration falls back to default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Port: "8000"},
			Content:  ContentConfig{Backend: BackendSanity, ProjectID: "p", Dataset: "production", Token: "t", Timeout: time.Second},
			Database: DatabaseConfig{URL: "sqlite:///./x.db"},
			Email:    EmailConfig{Provider: ProviderConsole, FromEmail: "noreply@example.com", Timeout: time.Second},
			Notify:   NotifyConfig{OperatorEmail: "studio@example.com"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "database backend needs no sanity credentials", mutate: func(c *Config) {
			c.Content = ContentConfig{Backend: BackendDatabase, Timeout: time.Second}
		}},
		{name: "missing project", mutate: func(c *Config) { c.Content.ProjectID = "" }, wantErr: "SANITY_PROJECT_ID"},
		{name: "missing token", mutate: func(c *Config) { c.Content.Token = "" }, wantErr: "SANITY_API_TOKEN"},
		{name: "unknown backend", mutate: func(c *Config) { c.Content.Backend = "mongo" }, wantErr: "CONTENT_BACKEND"},
		{name: "unknown provider", mutate: func(c *Config) { c.Email.Provider = "pigeon" }, wantErr: "EMAIL_PROVIDER"},
		{name: "missing operator", mutate: func(c *Config) { c.Notify.OperatorEmail = "" }, wantErr: "OPERATOR_EMAIL"},
		{name: "zero content timeout", mutate: func(c *Config) { c.Content.Timeout = 0 }, wantErr: "CONTENT_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseURLHelpers(t *testing.T) {
	pg := DatabaseConfig{URL: "postgresql://studio:p@ss:word@db.internal:6543/portfolio?sslmode=require"}
	assert.True(t, pg.IsPostgres())
	assert.Equal(t, "host=db.internal port=6543 user=studio dbname=portfolio sslmode=require password=p@ss:word", pg.GetPostgresDSN())

	short := DatabaseConfig{URL: "postgres://studio@localhost"}
	assert.Equal(t, "host=localhost port=5432 user=studio dbname=postgres sslmode=disable", short.GetPostgresDSN())

	dsn := DatabaseConfig{URL: "host=x port=1 user=u dbname=d"}
	assert.Equal(t, dsn.URL, dsn.GetPostgresDSN())

	lite := DatabaseConfig{URL: "sqlite:///./inquiries.db"}
	assert.False(t, lite.IsPostgres())
	assert.Equal(t, "./inquiries.db", lite.GetSQLitePath())
}

func TestSenderAddress(t *testing.T) {
	c := EmailConfig{FromEmail: "noreply@example.com", FromName: "Paira Art"}
	assert.Equal(t, "Paira Art <noreply@example.com>", c.SenderAddress())
	c.FromName = ""
	assert.Equal(t, "noreply@example.com", c.SenderAddress())
}
