package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), cfg)
}

func TestLoadConfig_DefaultPathFromHome(t *testing.T) {
	tempDir := t.TempDir()
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()
	osUserHomeDir = func() (string, error) { return tempDir, nil }

	dir := filepath.Join(tempDir, userConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("host: device.local\n"), 0644))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "device.local", cfg.Host)
	assert.Equal(t, DefaultPortSFTP, cfg.Ports.SFTP)
}

func TestLoadConfig_OverridesKeepDefaults(t *testing.T) {
	path := writeConfigFile(t, `
host: 10.0.0.5
ports:
  sftp: 2222
  ftp: 2121
  ftpPassive: 5678
tmpDir: /tmp/other
failOnErrors: true
baseUrls:
  saf:
    sftp: "sftp://{{ .Host }}:{{ .Port }}/docs/"
    ftp: "ftp://{{ .Host }}:{{ .Port }}/docs/"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.Host)
	assert.Equal(t, 2222, cfg.Ports.SFTP)
	assert.Equal(t, "/tmp/other", cfg.TmpDir)
	assert.True(t, cfg.FailOnErrors)
	assert.Equal(t, "curl", cfg.Clients.Curl)
	// untouched backends survive the merge
	assert.Contains(t, cfg.BaseURLs, "fs")
	assert.Equal(t, "sftp://{{ .Host }}:{{ .Port }}/docs/", cfg.BaseURLs["saf"].SFTP)
}

func TestLoadConfig_ParseError(t *testing.T) {
	path := writeConfigFile(t, "ports: [not, a, map]\n")

	_, err := LoadConfig(path)
	require.Error(t, err)

	var cfgErr ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "parse", cfgErr.ErrorType)
	assert.Equal(t, configFileName, cfgErr.FileName)
	assert.Equal(t, path, cfgErr.FilePath)
}

func TestLoadConfig_DoesNotValidate(t *testing.T) {
	path := writeConfigFile(t, "ports:\n  sftp: 70000\ntmpDir: /\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/", cfg.TmpDir)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ports.sftp")
	assert.Contains(t, err.Error(), "tmpDir")
}
