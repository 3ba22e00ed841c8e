package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strataworks/erssgen/internal/plaxis"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.Modeler.Port)
	assert.Equal(t, plaxis.GenerationV22, cfg.Modeler.Generation)
	assert.Equal(t, 60*time.Second, cfg.Modeler.ConnectTimeout.Duration())
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
modeler:
  host: fe-box
  port: 10001
  password: secret
  generation: before-v22
  connect_timeout: 90s
logging:
  level: debug
  console: false
output_dir: /tmp/out
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fe-box", cfg.Modeler.Host)
	assert.Equal(t, 10001, cfg.Modeler.Port)
	assert.Equal(t, plaxis.GenerationLegacy, cfg.Modeler.Generation)
	assert.Equal(t, 90*time.Second, cfg.Modeler.ConnectTimeout.Duration())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
}

func TestLoadRejectsBadValues(t *testing.T) {
	_, err := Load(writeConfig(t, "modeler:\n  port: -1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "modeler:\n  generation: v99\n"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
