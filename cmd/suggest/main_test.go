package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestJSON = `{
  "forecast": {
    "list": [
      {"dt": 1717243200, "dt_txt": "2024-06-01 12:00:00", "main": {"temp": 20}, "wind": {"speed": 5}, "clouds": {"all": 50}},
      {"dt": 1717254000, "dt_txt": "2024-06-01 15:00:00", "main": {"temp": 20}, "wind": {"speed": 5}, "clouds": {"all": 50}}
    ],
    "city": {"name": "Lyon", "timezone": 0}
  },
  "air_quality": {"aqi": 1},
  "current_time": "2024-06-01T12:00:00Z"
}`

type cliResult struct {
	Suggestions []struct {
		Activity string `json:"activity"`
	} `json:"suggestions"`
	Alerts []json.RawMessage `json:"alerts"`
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(strings.NewReader(stdin), &stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSuggest_Stdin(t *testing.T) {
	out, _, err := execute(t, requestJSON)
	require.NoError(t, err)

	var res cliResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "Running", res.Suggestions[0].Activity)
	assert.Empty(t, res.Alerts)
}

func TestSuggest_ZstdFileToOutputFile(t *testing.T) {
	dir := t.TempDir()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	in := filepath.Join(dir, "request.json.zst")
	require.NoError(t, os.WriteFile(in, enc.EncodeAll([]byte(requestJSON), nil), 0o600))
	require.NoError(t, enc.Close())

	out := filepath.Join(dir, "result.json")
	stdout, _, err := execute(t, "", "--in", in, "--out", out, "--pretty")
	require.NoError(t, err)
	assert.Empty(t, stdout)

	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(written), "\n  \"suggestions\": [")
}

func TestSuggest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"invalid timing", requestJSON, []string{"--timing", "later"}, "later"},
		{"malformed json", `{"forecast":`, nil, "decoding request"},
		{"invalid aqi", `{"forecast": {"list": []}, "air_quality": {"aqi": 9}}`, nil, "validation_invalid_aqi"},
		{"missing file", "", []string{"--in", "/does/not/exist.json"}, "reading request"},
		{"positional args", requestJSON, []string{"extra"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := execute(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error()+stderr, tt.wantErr)
		})
	}
}
