package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goadf/adferrors"
	"github.com/sartorproj/goadf/stats"
)

const tablesYAML = `
critical_values:
  50: {"1%": -3.58, "5%": -2.93, "10%": -2.60}
  100: {"1%": -3.51, "5%": -2.89, "10%": -2.58}
p_values:
  50: [[-4.5, 0.001], [-2.93, 0.05], [-1.0, 0.7]]
  100: [[-4.5, 0.001], [-2.89, 0.05], [-1.0, 0.7]]
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeTables(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tablesYAML), 0o644))
	return path
}

func TestInterpretDefault(t *testing.T) {
	out, err := run(t, "interpret", "--statistic=-3.5")
	require.NoError(t, err)

	var res stats.ADFResult
	require.NoError(t, gojson.Unmarshal([]byte(out), &res))
	assert.Equal(t, -3.5, res.Statistic)
	assert.Equal(t, 0.01, res.PValue)
	assert.Equal(t, stats.DefaultCriticalValues(), res.CriticalVals)
	assert.True(t, res.IsStationary)
	assert.Contains(t, out, `"1%"`)
}

func TestInterpretWithTables(t *testing.T) {
	path := writeTables(t)

	out, err := run(t, "interpret", "--statistic=-2.93", "--nobs", "60", "--tables", path)
	require.NoError(t, err)

	var res stats.ADFResult
	require.NoError(t, gojson.Unmarshal([]byte(out), &res))
	assert.Equal(t, uint64(50), res.SampleSize)
	assert.Equal(t, 0.05, res.PValue)
	assert.Equal(t, -2.93, res.CriticalVals.FivePercent)
	assert.False(t, res.IsStationary)
}

func TestInterpretTablesFromEnv(t *testing.T) {
	t.Setenv("ADF_TABLES_PATH", writeTables(t))

	out, err := run(t, "interpret", "--statistic=-3.0", "--nobs", "90")
	require.NoError(t, err)

	var res stats.ADFResult
	require.NoError(t, gojson.Unmarshal([]byte(out), &res))
	assert.Equal(t, uint64(100), res.SampleSize)
}

func TestInterpretNegativeSampleSize(t *testing.T) {
	_, err := run(t, "interpret", "--statistic=-3.0", "--nobs=-4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_input")
}

func TestInterpretRequiresStatistic(t *testing.T) {
	_, err := run(t, "interpret")
	assert.Error(t, err)
}

func TestTablesInspect(t *testing.T) {
	out, err := run(t, "tables", "inspect", "--tables", writeTables(t))
	require.NoError(t, err)

	var doc struct {
		SampleSizes []struct {
			SampleSize uint64 `json:"sample_size"`
			Rows       int    `json:"rows"`
		} `json:"sample_sizes"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.SampleSizes, 2)
	assert.Equal(t, uint64(50), doc.SampleSizes[0].SampleSize)
	assert.Equal(t, 3, doc.SampleSizes[1].Rows)
	assert.Contains(t, out, `"dropped_rows": 0`)
}

func TestInterpretMissingCriticalFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "critical.csv")
	_, err := run(t, "interpret", "--statistic=-3.0", "--nobs", "50",
		"--tables", writeTables(t), "--critical", missing)
	require.Error(t, err)
	assert.True(t, adferrors.IsKind(err, adferrors.KindFile))
}

func TestTablesExport(t *testing.T) {
	out, err := run(t, "tables", "export", "--tables", writeTables(t))
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"critical_values"`))
	assert.True(t, strings.Contains(out, `"p_values"`))

	_, err = run(t, "tables", "export")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "adfcheck v"+version)
}
