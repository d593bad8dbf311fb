package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestInitCmd_WritesConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.NoError(t, err)

	targetPath := filepath.Join(tempDir, configFileName)
	info, err := os.Stat(targetPath)
	require.NoError(t, err)
	require.False(t, info.IsDir())

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)

	var written struct {
		Version int `yaml:"version"`
		Export  struct {
			Dir  string `yaml:"dir"`
			Lcov bool   `yaml:"lcov"`
		} `yaml:"export"`
		Log struct {
			Filename string `yaml:"filename"`
		} `yaml:"log"`
	}

	require.NoError(t, yaml.Unmarshal(contents, &written))
	require.Equal(t, currentConfigVersion, written.Version)
	require.Equal(t, defaultExportDir, written.Export.Dir)
	require.True(t, written.Export.Lcov)
	require.Equal(t, defaultLogFilename, written.Log.Filename)
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	tempDir := t.TempDir()
	originalWD, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tempDir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(originalWD)) })

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("existing: true\n"), 0o644))

	cmd := newRootCmd()
	cmd.AddCommand(newInitCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"init"})

	err = cmd.Execute()
	require.Error(t, err)
}
