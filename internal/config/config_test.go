package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Evaluator.AllowBypass)
	assert.Equal(t, "secret", cfg.Backends.Vault.Mount)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Backends.Audit.URL)
}

func TestLoadFileAppliesYAMLOverTheDefaults(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yml"
	require.NoError(t, os.WriteFile(path, []byte(`
evaluator:
  allow_bypass: false
backends:
  vault:
    enabled: true
    mount: custom-mount
`), 0o644))

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cfg.Evaluator.AllowBypass)
	assert.True(t, cfg.Backends.Vault.Enabled)
	assert.Equal(t, "custom-mount", cfg.Backends.Vault.Mount)
	// Untouched fields keep their defaults.
	assert.Equal(t, "roles", cfg.Backends.Vault.RolesPath)
}

func TestLoadFromEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("VAULT_ADDR", "https://vault.example.com")
	t.Setenv("PERMTREE_DEBUG", "true")

	cfg := Default()
	require.NoError(t, NewLoader().LoadFromEnvironment(cfg))

	assert.Equal(t, "https://vault.example.com", cfg.Backends.Vault.Address)
	assert.True(t, cfg.Logging.Debug)
}

func TestLoadFromEnvironmentRejectsMalformedBool(t *testing.T) {
	t.Setenv("PERMTREE_DEBUG", "not-a-bool")

	cfg := Default()
	err := NewLoader().LoadFromEnvironment(cfg)
	require.Error(t, err)
}
