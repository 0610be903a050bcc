package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theirongolddev/allot/internal/allocation"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ALLOT_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "allot", "config.toml")
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults without a file", func(t *testing.T) {
		path := useTempConfig(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, path, Path())
		assert.False(t, Exists())
		assert.Equal(t, DefaultConfig(), cfg)
		assert.Len(t, cfg.Categories, 8)
	})

	t.Run("overlays the file on defaults", func(t *testing.T) {
		path := useTempConfig(t)
		writeConfig(t, path, `
[general]
monthly_budget = 3200

[allocation]
amount_mode = "direct"

[[categories]]
name = "Rent"
emoji = "🏠"
percentage = 60

[[categories]]
name = "Rest"
percentage = 40
`)

		cfg, err := Load()

		require.NoError(t, err)
		assert.True(t, Exists())
		assert.Equal(t, 3200.0, cfg.General.MonthlyBudget)
		assert.Equal(t, "direct", cfg.Allocation.AmountMode)
		assert.Equal(t, "lenient", cfg.Allocation.Strictness)
		assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
		assert.True(t, cfg.Appearance.ShowSummary)
		require.Len(t, cfg.Categories, 2)
		assert.Equal(t, "Rent", cfg.Categories[0].Name)
	})

	t.Run("keeps default categories when the file has none", func(t *testing.T) {
		path := useTempConfig(t)
		writeConfig(t, path, "[appearance]\ntheme = \"tokyo-night\"\n")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "tokyo-night", cfg.Appearance.Theme)
		assert.Len(t, cfg.Categories, 8)
	})

	t.Run("honors ALLOT_CONFIG", func(t *testing.T) {
		useTempConfig(t)
		custom := filepath.Join(t.TempDir(), "custom.toml")
		t.Setenv("ALLOT_CONFIG", custom)
		writeConfig(t, custom, "[general]\nmonthly_budget = 10\n")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, custom, Path())
		assert.Equal(t, 10.0, cfg.General.MonthlyBudget)
	})

	t.Run("reports parse errors", func(t *testing.T) {
		path := useTempConfig(t)
		writeConfig(t, path, "[general\n")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config")
	})

	t.Run("reports validation errors", func(t *testing.T) {
		path := useTempConfig(t)
		writeConfig(t, path, "[allocation]\namount_mode = \"sideways\"\n")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount_mode")
	})
}

func TestSave(t *testing.T) {
	path := useTempConfig(t)
	cfg := DefaultConfig()
	cfg.Allocation.Strictness = "renormalize"
	cfg.Appearance.Theme = "terminal"

	require.NoError(t, Save(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.MonthlyBudget = -1
	cfg.Allocation.Strictness = "strict"
	cfg.Categories = []CategoryConfig{
		{Name: "Food", Percentage: 50},
		{Name: " ", Percentage: 10},
		{Name: "food", Percentage: 120},
	}

	err := cfg.Validate()

	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "monthly_budget")
	assert.Contains(t, msg, "strictness")
	assert.Contains(t, msg, "categories[1]: name is required")
	assert.Contains(t, msg, `duplicate name "food"`)
	assert.Contains(t, msg, "categories[2]: percentage")

	assert.NoError(t, DefaultConfig().Validate())
}

func TestNewEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.MonthlyBudget = 2000
	cfg.Allocation.AmountMode = "direct"
	cfg.Allocation.Strictness = "renormalize"

	e, err := cfg.NewEngine()

	require.NoError(t, err)
	assert.Equal(t, allocation.Direct, e.AmountMode())
	assert.Equal(t, allocation.Renormalize, e.Strictness())
	assert.Equal(t, 700.0, e.State().Categories[0].Amount)

	cfg.Categories = nil
	_, err = cfg.NewEngine()
	assert.ErrorIs(t, err, allocation.ErrNoCategories)
}
