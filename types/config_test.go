package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEngineConfigurationDefaults(t *testing.T) {
	cfg, err := LoadEngineConfiguration("")
	require.NoError(t, err)
	require.Equal(t, StrategyTagged, cfg.Strategy)
	require.Equal(t, DefaultClauseWindow, cfg.ClauseWindow.Backward)
	require.Equal(t, DefaultClauseWindow, cfg.ClauseWindow.Forward)
}

func TestLoadEngineConfigurationFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	content := []byte(`
name: classroom
strategy: Pattern
degrade_on_model_error: true
clause_window:
  backward: 60
extra_triggers:
  - "es posible que"
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadEngineConfiguration(path)
	require.NoError(t, err)
	require.Equal(t, "classroom", cfg.Name)
	require.Equal(t, StrategyPattern, cfg.Strategy)
	require.True(t, cfg.DegradeOnModelError)
	require.Equal(t, 60, cfg.ClauseWindow.Backward)
	require.Equal(t, DefaultClauseWindow, cfg.ClauseWindow.Forward)
	require.Equal(t, []string{"es posible que"}, cfg.ExtraTriggers)
	require.Equal(t, path, cfg.FilePath)
}

func TestLoadEngineConfigurationWrongStrategy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: spacy\n"), 0o600))

	_, err := LoadEngineConfiguration(path)
	require.Error(t, err)
}
