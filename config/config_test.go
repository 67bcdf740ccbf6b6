package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goadf/adferrors"
)

func TestParse(t *testing.T) {
	t.Setenv("ADF_TABLE_DIR", "/srv/adf")

	cfg, err := Parse([]byte(`
tables:
  path: ${ADF_TABLE_DIR}/tables.yaml
  format: yaml
log:
  level: debug
  encoding: console
`))
	require.NoError(t, err)
	assert.Equal(t, "/srv/adf/tables.yaml", cfg.Tables.Path)
	assert.Equal(t, "yaml", cfg.Tables.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Encoding)
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("tables:\n  path: t.json\n"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Encoding)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("tables: [unterminated"))
	assert.True(t, adferrors.IsKind(err, adferrors.KindConfig))

	_, err = Parse([]byte("tables:\n  path: t.xml\n  format: xml\n"))
	assert.True(t, adferrors.IsKind(err, adferrors.KindConfig))

	_, err = Parse([]byte("tables:\n  critical_path: cv.csv\n"))
	assert.True(t, adferrors.IsKind(err, adferrors.KindConfig))

	_, err = Parse([]byte("log:\n  encoding: logfmt\n"))
	assert.True(t, adferrors.IsKind(err, adferrors.KindConfig))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adfcheck.yaml")
	cfg := Default()
	cfg.Tables.Path = "tables.csv"
	cfg.Tables.CriticalPath = "critical.csv"

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, adferrors.IsKind(err, adferrors.KindFile))
}
