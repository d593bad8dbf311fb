package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "undercover", configBaseName)
	assert.Equal(t, "undercover.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "export.dir", exportDirKey)
	assert.Equal(t, "export.filename", exportFilenameKey)
	assert.Equal(t, "export.exclude", exportExcludeKey)
	assert.Equal(t, "export.lcov", exportLcovKey)
	assert.Equal(t, "export.root", exportRootKey)
	assert.Equal(t, "coverage", defaultExportDir)
	assert.Equal(t, "UNDERCOVER", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, currentConfigVersion, viper.GetInt(configVersionKey))
	assert.Equal(t, ".undercover.log", viper.GetString(logFilenameKey))
	assert.Equal(t, defaultLogMaxSize, viper.GetInt(logMaxSizeKey))
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("UNDERCOVER_LOG_LEVEL", "debug")

	assert.Equal(t, "debug", viper.GetString(logLevelKey))
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	logPath := filepath.Join(t.TempDir(), "undercover.log")

	previousPath := viper.GetString(logFilenameKey)
	viper.Set(logFilenameKey, logPath)
	t.Cleanup(func() { viper.Set(logFilenameKey, previousPath) })

	configureLogger(true)
	require.NotNil(t, globalLogger)

	slog.Debug("logger configured", "key", "value")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "logger configured")
	assert.Contains(t, string(content), "key=value")
}
