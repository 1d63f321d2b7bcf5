package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]time.Duration{
		"7d":   7 * 24 * time.Hour,
		"1d":   24 * time.Hour,
		"15m":  15 * time.Minute,
		"2h":   2 * time.Hour,
		" 3d ": 3 * 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseDuration(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDuration("xd")
	assert.Error(t, err)
	_, err = ParseDuration("week")
	assert.Error(t, err)
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("JWT_EXPIRE", "2d")
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "3")
	t.Setenv("FRONTEND_URL", "http://a.local, http://b.local")
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg := New()

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 48*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Postgres.AutoMigrate)
}

func TestNewFallsBackOnGarbage(t *testing.T) {
	t.Setenv("AUTH_MAX_LOGIN_ATTEMPTS", "many")
	t.Setenv("AUTH_LOCKOUT_DURATION", "soon")

	cfg := New()

	assert.Equal(t, 5, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
}
