package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestNewConfigDefaults verifies the defaults used when no environment
// variables are set.
func TestNewConfigDefaults(t *testing.T) {
	for _, name := range []string{"PORT", "GIN_LOGGING", "LOG_MODE", "DBHOST", "DBNAME", "JWT_TTL"} {
		t.Setenv(name, "") // registers the restore
		os.Unsetenv(name)
	}

	cfg, err := NewConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.GinLogging)
	assert.Equal(t, "production", cfg.LogMode)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "contactbook", cfg.Database.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
}

// TestNewConfigFromEnvironment verifies that the DB* and JWT_* environment
// variables are picked up.
func TestNewConfigFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DBUSER", "dirk")
	t.Setenv("DBPWD", "bullo92")
	t.Setenv("DBHOST", "db.example.com")
	t.Setenv("DBNAME", "contacts")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("GIN_LOGGING", "false")

	cfg, err := NewConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.GinLogging)
	assert.Equal(t, "super-secret", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
	assert.Equal(t, "dirk:bullo92@tcp(db.example.com)/contacts?parseTime=true", cfg.Database.DSN())
}
