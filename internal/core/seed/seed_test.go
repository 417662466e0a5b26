package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/dashboard/internal/core"
)

func TestDefault(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	assert.Len(t, data.People, 24)
	assert.Len(t, data.Library, 16)
	assert.Len(t, data.Assets, 18)
	assert.Len(t, data.Activity, 5)

	john := data.People[0]
	assert.Equal(t, "John Doe", john.Name)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), john.CreatedAt.UTC())

	for _, p := range data.People {
		assert.Contains(t, core.Roles, p.Role, "person %s", p.ID)
		assert.Contains(t, core.PersonStatuses, p.Status, "person %s", p.ID)
	}
	for _, l := range data.Library {
		assert.Contains(t, core.LibraryTypes, l.Type, "library item %s", l.ID)
	}
	for _, a := range data.Assets {
		assert.Contains(t, core.AssetStatuses, a.Status, "asset %s", a.ID)
	}
}

func TestDefault_BuildsService(t *testing.T) {
	data, err := Default()
	require.NoError(t, err)

	svc, err := core.NewService(data, core.Options{})
	require.NoError(t, err)
	assert.Equal(t, 24, svc.Stats().TotalUsers)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
people:
  - id: u1
    name: Test User
    email: test@example.com
    role: User
    status: active
    department: QA
    createdAt: 2024-03-01
assets: []
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data.People, 1)
	assert.Equal(t, "QA", data.People[0].Department)
	assert.Empty(t, data.Library)
}

func TestLoad_EmptyPathUsesEmbedded(t *testing.T) {
	data, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, data.People)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "unknown field",
			input:   "people:\n  - id: x\n    nickname: y\n",
			wantErr: "decode seed",
		},
		{
			name:    "duplicate id",
			input:   "assets:\n  - id: a\n    name: one\n  - id: a\n    name: two\n",
			wantErr: `assets: duplicate id "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "open seed file")
}
