package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxBytes())
	assert.Equal(t, 5*time.Second, cfg.Audit.WriteTimeout)
	assert.False(t, cfg.Kafka.Enabled())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_LeeVariablesDeEntorno(t *testing.T) {
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("DB_HOST", "db.interno")
	t.Setenv("DB_PASSWORD", "p@ss:word")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("AUDIT_QUEUE_SIZE", "10")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 10, cfg.Audit.QueueSize)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Contains(t, cfg.DB.ConnectionString(), "db.interno:5432")
	assert.Contains(t, cfg.DB.ConnectionString(), "p%40ss%3Aword")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := DBConfig{DatabaseURL: "postgres://u:p@h:1/db", Host: "otro"}
	assert.Equal(t, "postgres://u:p@h:1/db", c.ConnectionString())
}

func TestValidate_SinSecretoJWT(t *testing.T) {
	cfg := &Config{Upload: UploadConfig{MaxSizeMB: 5}, Audit: AuditConfig{QueueSize: 1}}
	assert.Error(t, cfg.Validate())
}
