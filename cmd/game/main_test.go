package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Sheepdog-Run/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SHEEPDOG_SEED", "")
	t.Setenv("SHEEPDOG_ASSETS", "")
	t.Setenv("SHEEPDOG_LOG_LEVEL", "")
}

func TestResolveConfig_AppliesOverrides(t *testing.T) {
	seed := int64(99)
	cfg, err := resolveConfig(filepath.Join(t.TempDir(), "missing.yaml"), &seed, "sprites")
	require.NoError(t, err)

	assert.Equal(t, int64(99), cfg.Sim.Seed)
	assert.Equal(t, "sprites", cfg.Assets.Dir)
}

func TestResolveConfig_NoOverridesKeepsFile(t *testing.T) {
	clearEnv(t)
	cfg, err := resolveConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil, "")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultConfig().Assets.Dir, cfg.Assets.Dir)
	assert.Equal(t, int64(0), cfg.Sim.Seed)
}

func TestWriteConfig_SavesEffectiveConfig(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "sheepdog.yaml")

	configPath = filepath.Join(dir, "missing.yaml")
	writeConfig = out
	assetsDir = "art"
	t.Cleanup(func() { configPath, writeConfig, assetsDir, seed = config.DefaultPath, "", "", 0 })

	rootCmd.SetArgs([]string{"--seed", "7"})
	require.NoError(t, rootCmd.Execute())

	got, err := config.Load(out)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Sim.Seed)
	assert.Equal(t, "art", got.Assets.Dir)
}
