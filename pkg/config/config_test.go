package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "tagihan-api", cfg.App.Name)
	assert.Equal(t, SourceBackend, cfg.Source)
	assert.Equal(t, "maroto", cfg.PDF.Renderer)
	assert.Equal(t, 15.0, cfg.PDF.MarginMM)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Assets.CacheTTL)
	assert.Equal(t, "Jakarta", cfg.Company.City)
	assert.Equal(t, 5, cfg.DB.MaxConns)
	assert.False(t, cfg.Assets.S3Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("SOURCE", "Postgres")
	v.Set("BACKEND_URL", "https://api.example.com/")
	v.Set("BACKEND_TIMEOUT", "30")
	v.Set("ASSETS_CACHE_TTL", "1m")
	v.Set("ASSETS_LETTERHEAD_URL", "s3://brand/kop.png")
	v.Set("PDF_RENDERER", "GOFPDF")
	v.Set("PDF_MARGIN_MM", "20")
	v.Set("DB_MAX_CONNS", "12")
	v.Set("COMPANY_NAME", "PT Sinar Jaya")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, SourcePostgres, cfg.Source)
	assert.Equal(t, "https://api.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, time.Minute, cfg.Assets.CacheTTL)
	assert.True(t, cfg.Assets.S3Enabled())
	assert.Equal(t, "gofpdf", cfg.PDF.Renderer)
	assert.Equal(t, 20.0, cfg.PDF.MarginMM)
	assert.Equal(t, 12, cfg.DB.MaxConns)
	assert.Equal(t, "PT Sinar Jaya", cfg.Company.Name)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("SOURCE", "mongo")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("PDF_MARGIN_MM", "0")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "ro", Password: "p@ss:w", DBName: "app", SSLMode: "require"}
	assert.Equal(t, "postgres://ro:p%40ss%3Aw@db:5432/app?sslmode=require", c.ConnectionString())

	c.DatabaseURL = "postgresql://x"
	assert.Equal(t, "postgresql://x", c.ConnectionString())
}
