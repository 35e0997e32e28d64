package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitoutofhours/internal/config"
	"gitoutofhours/pkg/models"
)

type fakeWizard struct{}

func (fakeWizard) Run(base *models.Config) (*models.Config, error) {
	cfg := *base
	cfg.Scan.Days = 7
	cfg.Scan.Author = "Jane Doe"
	return &cfg, nil
}

func TestConfigInitAndShow(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")

	out, _, err := execute(t, "config", "init", "--config", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to "+file)

	loaded, err := config.LoadFrom(file)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultConfig(), *loaded)

	_, _, err = execute(t, "config", "init", "--config", file)
	require.Error(t, err)
	assert.Equal(t, "Configuration file already exists", err.Error())

	_, _, err = execute(t, "config", "init", "--config", file, "--force")
	assert.NoError(t, err)

	out, _, err = execute(t, "config", "show", "--config", file)
	require.NoError(t, err)
	assert.Contains(t, out, file)
	assert.Contains(t, out, "days: 30")
	assert.Contains(t, out, "branch: master")
}

func TestConfigShowDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "absent.yaml")

	out, _, err := execute(t, "config", "show", "--config", file)
	require.NoError(t, err)
	assert.Contains(t, out, "not found, using defaults")
	assert.Contains(t, out, "17:30")
}

func TestConfigInitInteractive(t *testing.T) {
	orig := newWizard
	t.Cleanup(func() { newWizard = orig })
	newWizard = func() configWizard { return fakeWizard{} }

	file := filepath.Join(t.TempDir(), "config.yaml")
	_, _, err := execute(t, "config", "init", "-i", "--config", file)
	require.NoError(t, err)

	loaded, err := config.LoadFrom(file)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Scan.Days)
	assert.Equal(t, "Jane Doe", loaded.Scan.Author)
}
