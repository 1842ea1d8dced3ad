package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "healthy_tips", cfg.DB.DBName)
	assert.False(t, cfg.DB.Seed)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, "587", cfg.SMTP.Port)
	assert.Equal(t, 3, cfg.OTP.RatePerMinute)
	assert.Equal(t, 3, cfg.OTP.RateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_SEED", "true")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "info")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION_HOURS", "72")
	t.Setenv("OTP_RATE_PER_MINUTE", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.True(t, cfg.DB.Seed)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, logger.Info, cfg.DB.LogLevel)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 72, cfg.JWT.ExpirationHours)
	assert.Equal(t, 10, cfg.OTP.RatePerMinute)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "many")
	t.Setenv("DB_SEED", "yes please")
	t.Setenv("DB_LOG_LEVEL", "loud")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.False(t, cfg.DB.Seed)
	assert.Equal(t, logger.Warn, cfg.DB.LogLevel)
}

func TestGetDSN(t *testing.T) {
	db := DBConfig{Host: "h", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", db.GetDSN())
}
