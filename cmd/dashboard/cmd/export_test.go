package cmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExport_CSVToStdout(t *testing.T) {
	stdout, stderr, err := runCLI(t, "export", "people", "--filter", "status=inactive")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7, "header plus six inactive people")
	assert.Equal(t, "Name", records[0][0])
	for _, rec := range records[1:] {
		assert.Equal(t, "inactive", strings.ToLower(rec[4]))
	}
	assert.Contains(t, stderr, "exported 6 people items as csv to stdout")
}

func TestExport_SortDescending(t *testing.T) {
	stdout, _, err := runCLI(t, "export", "people", "--sort", "email:desc")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 25)

	for i := 2; i < len(records); i++ {
		prev, cur := strings.ToLower(records[i-1][1]), strings.ToLower(records[i][1])
		assert.GreaterOrEqual(t, prev, cur, "row %d out of order", i)
	}
}

func TestExport_JSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "library.json")
	_, stderr, err := runCLI(t, "export", "library", "--format", "json", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stderr, out)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var rows []map[string]string
	require.NoError(t, json.Unmarshal(raw, &rows))
	assert.Len(t, rows, 16)
	assert.Contains(t, rows[0], "title")
}

func TestExport_PDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "assets.pdf")
	_, _, err := runCLI(t, "export", "assets", "-f", "pdf", "-o", out, "--title", "Asset Register")
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown collection", []string{"export", "widgets"}, "collection not found"},
		{"unsupported format", []string{"export", "people", "--format", "xlsx"}, "unsupported export format"},
		{"malformed filter", []string{"export", "people", "--filter", "status"}, "want key=value"},
		{"unknown filter", []string{"export", "people", "--filter", "salary=high"}, `unknown filter "salary"`},
		{"unknown sort", []string{"export", "people", "--sort", "salary"}, `unknown sort column "salary"`},
		{"missing collection", []string{"export"}, "accepts 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
