// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 eqemu-char-import Contributors

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const minimalConfig = `
queue:
  url: postgres://charimport@localhost:5432/import_queue
game:
  url: postgres://charimport@localhost:5432/eqemu
`

func TestLoad_MinimalFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "postgres://charimport@localhost:5432/import_queue", cfg.Queue.URL)
	assert.Equal(t, "postgres://charimport@localhost:5432/eqemu", cfg.Game.URL)
	assert.Equal(t, 55, cfg.MaxLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.NotEmpty(t, cfg.LockFile)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
max_level: 65
lock_file: /tmp/charimport-test.pid
log_format: json
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 65, cfg.MaxLevel)
	assert.Equal(t, "/tmp/charimport-test.pid", cfg.LockFile)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_FlagOverridesFile(t *testing.T) {
	path := writeConfig(t, minimalConfig+"max_level: 65\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max_level", Default().MaxLevel, "")
	require.NoError(t, flags.Set("max_level", "10"))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.MaxLevel)
}

func TestLoad_UnsetFlagKeepsFileValue(t *testing.T) {
	path := writeConfig(t, minimalConfig+"max_level: 65\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max_level", Default().MaxLevel, "")

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 65, cfg.MaxLevel, "default flag value must not clobber the file")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound), "expected ErrNotFound, got %v", err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing queue url", "game:\n  url: postgres://x\n"},
		{"missing game url", "queue:\n  url: postgres://x\n"},
		{"bad max_level", minimalConfig + "max_level: 0\n"},
		{"bad log_format", minimalConfig + "log_format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path, nil)
			require.Error(t, err)
		})
	}
}

func TestDefaultPath_UsesXDGConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/charimport/"+FileName, DefaultPath())
}
