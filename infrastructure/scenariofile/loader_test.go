package scenariofile

import (
	"testing"
	"time"

	"ui_harness/domain/entities"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loginYAML = `
scenarios:
  - name: login
    steps:
      - description: open login page
        operation: navigate
        value: /
      - description: enter username
        operation: fill
        target: '[data-test="username"]'
        value: standard_user
      - description: verify navigation
        operation: assert_url
        expected: '/.*\/inventory\.html$/'
        timeout: 10s
  - name: smoke
    steps:
      - description: home
        operation: navigate
        value: /
`

func TestParse(t *testing.T) {
	scenarios, err := Parse([]byte(loginYAML))
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	login := scenarios[0]
	assert.Equal(t, "login", login.Name)
	require.Len(t, login.Steps, 3)
	assert.Equal(t, entities.OpFill, login.Steps[1].Operation)
	assert.Equal(t, entities.Selector(`[data-test="username"]`), login.Steps[1].Target)
	assert.Equal(t, `/.*\/inventory\.html$/`, login.Steps[2].Expected)
	assert.Equal(t, 10*time.Second, login.Steps[2].Timeout)
	assert.Zero(t, login.Steps[0].Timeout)

	assert.Equal(t, "smoke", scenarios[1].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"empty", "", "empty scenario file"},
		{"no scenarios", "scenarios: []\n", "no scenarios defined"},
		{"unknown key", "scenarios:\n  - name: x\n    retries: 3\n", "retries"},
		{"bad duration", "scenarios:\n  - name: x\n    steps:\n      - operation: navigate\n        timeout: soon\n", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoad_ConcatenatesFilesInOrder(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/suites/a.yaml", []byte(loginYAML), 0644))
	require.NoError(t, afero.WriteFile(fs, "/suites/b.yaml", []byte("scenarios:\n  - name: last\n    steps:\n      - description: home\n        operation: navigate\n        value: /\n"), 0644))

	scenarios, err := Load(fs, "/suites/a.yaml", "/suites/b.yaml")
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, "last", scenarios[2].Name)
}

func TestLoad_NamesTheFailingFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.yaml", []byte("scenarios: [\n"), 0644))

	_, err := Load(fs, "/missing.yaml")
	assert.ErrorContains(t, err, "failed to read /missing.yaml")

	_, err = Load(fs, "/bad.yaml")
	assert.ErrorContains(t, err, "failed to parse /bad.yaml")
}
