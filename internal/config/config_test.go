package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WormBoard/internal/tools"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wormboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.InDelta(t, 27.0, cfg.Spacing(), 1e-9)
	assert.Equal(t, 25, cfg.HistoryLimit)
	assert.Equal(t, tools.Pencil, cfg.ActiveTool())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
dot_size = 20
tool = "wand"

[seed]
shape = "circle"
size = 80

[share]
enabled = true
port = 9000
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.DotSize)
	assert.Equal(t, tools.Wand, cfg.ActiveTool())
	assert.Equal(t, "circle", cfg.Seed.Shape)
	assert.Equal(t, 80.0, cfg.Seed.Size)
	assert.True(t, cfg.Share.Enabled)
	assert.Equal(t, 9000, cfg.Share.Port)
	assert.Equal(t, 25, cfg.HistoryLimit, "unset keys keep their defaults")
	assert.True(t, cfg.Share.Advertise)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for name, body := range map[string]string{
		"dot size": "dot_size = 0",
		"history":  "history_limit = 0",
		"tool":     `tool = "eraser"`,
		"port":     "[share]\nport = 70000",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadBadSyntax(t *testing.T) {
	_, err := Load(writeConfig(t, "dot_size = = 3"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}
