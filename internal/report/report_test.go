package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ftpprobe/internal/scenario"
	"ftpprobe/internal/verify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleResult(errs ...verify.Error) *scenario.Result {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &scenario.Result{
		RunID:    "3f0c2b7e-0000-4000-8000-000000000000",
		Storage:  scenario.StoragePlain,
		Started:  started,
		Finished: started.Add(42 * time.Second),
		Steps:    []string{scenario.StepSFTP, scenario.StepFTP},
		Errors:   errs,
	}
}

func TestWriteConsole(t *testing.T) {
	t.Run("errors", func(t *testing.T) {
		var buf bytes.Buffer
		WriteConsole(&buf, sampleResult(
			verify.Error{Tag: "[fs sftp]", Message: "missing dir in home: DCIM"},
			verify.Error{Tag: "[key bad rsa]", Message: "not empty"},
		))
		assert.Equal(t, "\n\n\n"+ErrorsBanner+"\n[fs sftp] missing dir in home: DCIM\n[key bad rsa] not empty\n\n\n\n", buf.String())
	})

	t.Run("no errors", func(t *testing.T) {
		var buf bytes.Buffer
		WriteConsole(&buf, sampleResult())
		assert.Equal(t, "\n\n\n"+NoErrorsBanner+"\n\n\n\n", buf.String())
	})
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	WriteTable(&buf, sampleResult(verify.Error{Tag: "[SAF  ftp]", Message: "present file: testfile"}))

	out := buf.String()
	assert.Contains(t, out, "[SAF  ftp]")
	assert.Contains(t, out, "present file: testfile")
	assert.Contains(t, out, "1 errors in 42s")
	assert.Contains(t, out, "3f0c2b7e")
}

func TestSave_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.json")
	require.NoError(t, Save(path, sampleResult(verify.Error{Tag: "[fs  scp]", Message: "missing local file: testfile"})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "fs", doc["storage"])
	assert.Equal(t, "42s", doc["duration"])
	assert.Equal(t, false, doc["passed"])
	require.Len(t, doc["errors"], 1)
}

func TestSave_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, Save(path, sampleResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &doc))

	assert.Equal(t, "3f0c2b7e-0000-4000-8000-000000000000", doc["runId"])
	assert.Equal(t, true, doc["passed"])
	assert.Equal(t, []interface{}{"sftp", "ftp"}, doc["steps"])
}

func TestSave_UnknownFormat(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "run.txt"), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".txt")
}
