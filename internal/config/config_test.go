package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "career-compass")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("JWT_REFRESH_SECRET", "refresh-secret")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")
	assert.NotContains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_AnalyzerDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Analyzer.DefaultRequiredLevel)
	assert.Equal(t, 5, cfg.Analyzer.MaxLevel)
	assert.Equal(t, 2, cfg.Analyzer.PriorityThreshold)
	assert.Equal(t, 40, cfg.Analyzer.HoursPerLevel)
	assert.Equal(t, 20, cfg.Analyzer.PrerequisiteHours)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "migrations", cfg.App.MigrationsDir)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
}

func TestLoad_AnalyzerOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ANALYZER_DEFAULT_REQUIRED_LEVEL", "3")
	t.Setenv("ANALYZER_HOURS_PER_LEVEL", "25")
	t.Setenv("REDIS_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Analyzer.DefaultRequiredLevel)
	assert.Equal(t, 25, cfg.Analyzer.HoursPerLevel)
	assert.Equal(t, 2*time.Minute, cfg.Redis.TTL)
}

func TestLoad_InvalidAnalyzerPolicy(t *testing.T) {
	setRequired(t)
	t.Setenv("ANALYZER_DEFAULT_REQUIRED_LEVEL", "9")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANALYZER_DEFAULT_REQUIRED_LEVEL")
}
