package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Environment)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "Asia/Almaty", cfg.App.Timezone)
	assert.NotNil(t, cfg.App.Location)
	assert.True(t, cfg.Features.IsEnabled(FeaturePlannerWeekly))
	assert.True(t, cfg.Features.IsEnabled(FeatureArchive))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, StorageRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t,
		[]string{"https://app.example.com", "https://staging.example.com"},
		cfg.HTTP.AllowedOrigins,
	)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "cassandra" },
			wantErr: "STORAGE_BACKEND",
		},
		{
			name: "postgres without url",
			mutate: func(c *Config) {
				c.Storage.Backend = StoragePostgres
				c.Database.URL = ""
			},
			wantErr: "DATABASE_URL",
		},
		{
			name: "memory backend in production",
			mutate: func(c *Config) {
				c.App.Environment = EnvProduction
				c.Storage.Backend = StorageMemory
			},
			wantErr: "not allowed in production",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.HTTP.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)

			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFeatureFlags_EnvOverride(t *testing.T) {
	t.Setenv("FEATURE_PLANNER_WEEKLY", "false")
	t.Setenv("FEATURE_GAMIFICATION", "0")

	flags := LoadFeatureFlags()

	assert.False(t, flags.IsEnabled(FeaturePlannerWeekly))
	assert.False(t, flags.IsEnabled(FeatureGamification))
	assert.True(t, flags.IsEnabled(FeatureArchive))
	assert.True(t, flags.IsEnabled(FeatureTimetable))
}

func TestFeatureFlags_UnknownAndSet(t *testing.T) {
	flags := LoadFeatureFlags()

	assert.False(t, flags.IsEnabled("does.not.exist"))

	flags.Set(FeatureArchive, false)
	assert.False(t, flags.IsEnabled(FeatureArchive))

	assert.Len(t, flags.All(), 4)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "FEATURE_PLANNER_WEEKLY", envName("planner.weekly"))
	assert.Equal(t, "FEATURE_GAMIFICATION", envName("gamification"))
}
