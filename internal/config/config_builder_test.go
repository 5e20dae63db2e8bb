package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that a later non-zero value overrides an
// earlier one while zero values leave earlier ones in place.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{Version: "1.0.0", SessionKey: "first"}},
		&StructuredConfig{App: App{Version: "2.0.0"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "first", cfg.App.SessionKey)
}

func TestBuild_RejectsNegativeCacheSettings(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Cache: Cache{StaleTime: -time.Second}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidCacheConfigs)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_StaleTimeIsOneMinute(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, ProviderSession, cfg.Auth.Provider)
	assert.Equal(t, "authenticated", cfg.Auth.JWT.Audience)
}

func TestWithDefaults_OverriddenByEnv(t *testing.T) {
	setEnvVars(t, map[string]string{"CACHE_STALE_TIME": "2m"})

	cfg, err := newConfigBuilder().withDefaults().withEnv().build()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, 5*time.Minute, cfg.Cache.GCTime)
}

// ── withDotEnv / withEnv / withArgs ───────────────────────────────────────────

func TestWithDotEnv_FeedsWithEnv(t *testing.T) {
	setEnvVars(t, map[string]string{})
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("APP_VERSION=from-dotenv\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("APP_VERSION") })

	cfg, err := newConfigBuilder().withDotEnv(p).withEnv().build()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.App.Version)
}

func TestWithDotEnv_MalformedFileSetsError(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("BAD-KEY=value\n"), 0o600))

	b := newConfigBuilder().withDotEnv(p)
	assert.Error(t, b.err)
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	setEnvVars(t, map[string]string{"APP_VERSION": "env-version"})

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
}

func TestWithArgs_FlagsOverrideEnv(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_ADDRESS": "http://env"})

	cfg, err := newConfigBuilder().
		withEnv().
		withArgs([]string{"-api-url", "http://flag"}).
		build()
	require.NoError(t, err)
	assert.Equal(t, "http://flag", cfg.Adapter.HTTPAddress)
}

func TestWithArgs_BadFlagSetsError(t *testing.T) {
	b := newConfigBuilder().withArgs([]string{"-a", "bad"})
	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Adapter.HTTPAddress = "http://json"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-version", b.configs[1].App.Version)
	assert.Equal(t, "http://json", b.configs[1].Adapter.HTTPAddress)
}

func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/nonexistent/config.json"})
	b.withJSON()

	assert.Error(t, b.err)
}

func TestWithJSON_UsesLastPath(t *testing.T) {
	first := StructuredJSONConfig{}
	first.App.Version = "first"
	last := StructuredJSONConfig{}
	last.App.Version = "last-wins"

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, first)},
		&StructuredConfig{JSONFilePath: writeTempJSONConfig(t, last)},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.Version)
}
