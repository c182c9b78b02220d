package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "STORE_BACKEND", "SUPABASE_URL", "SUPABASE_KEY", "RATE_LIMIT_RPS", "METRICS_ENABLED"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, StoreSupabase, cfg.StoreBackend)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.SupabaseConfigured())
}

func TestLoad_SupabaseURLTrailingSlashTrimmed(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co/")
	t.Setenv("SUPABASE_KEY", "k")
	cfg := Load()
	assert.Equal(t, "https://abc.supabase.co", cfg.SupabaseURL)
	assert.True(t, cfg.SupabaseConfigured())
}

func TestLoad_SupabaseNeedsBothValues(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_KEY", "")
	assert.False(t, Load().SupabaseConfigured())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_RPS", "fast")
	t.Setenv("RATE_LIMIT_BURST", "lots")
	t.Setenv("METRICS_ENABLED", "maybe")
	cfg := Load()
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_StoreBackendLowercased(t *testing.T) {
	t.Setenv("STORE_BACKEND", "DYNAMO")
	assert.Equal(t, StoreDynamo, Load().StoreBackend)
}
