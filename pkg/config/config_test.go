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

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "Stock", cfg.Sheets.StockSheet)
	assert.Equal(t, 10*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CatalogTTL)
	assert.Equal(t, "ventas", cfg.Negocio.CounterKey)
	assert.Equal(t, 30, cfg.Subscription.PeriodDays)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("SHEETS_TIMEOUT", "3")
	v.Set("CATALOG_CACHE_TTL", "90s")
	v.Set("STOCK_ALERT_THRESHOLD", "no-es-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Redis.CatalogTTL)
	assert.Equal(t, 2, cfg.Negocio.StockAlertThreshold, "valor inválido cae al default")
}

func TestFromViper_ProductionExigeSecret(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss:word", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aword@db:5432/tienda?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
