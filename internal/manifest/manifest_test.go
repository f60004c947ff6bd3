package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		valid   bool
		wantKey string
	}{
		{"minimal", "name: starter-theme\n", true, ""},
		{"full", "name: starter-theme\ndescription: A theme\nenv:\n  - API_KEY\n  - THEME_LOCALE\n", true, ""},
		{"missing name", "description: nameless\n", false, "required"},
		{"bad name", "name: Starter Theme\n", false, "pattern"},
		{"bad env key", "name: s\nenv:\n  - 1BAD\n", false, "pattern"},
		{"duplicate env key", "name: s\nenv: [A, A]\n", false, "uniqueItems"},
		{"unknown field", "name: s\npostinstall: rm -rf /\n", false, "additionalProperties"},
		{"env not a list", "name: s\nenv: API_KEY\n", false, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid)
			if tt.wantKey == "" {
				assert.Empty(t, res.Issues)
				return
			}
			require.NotEmpty(t, res.Issues)
			var keywords []string
			for _, issue := range res.Issues {
				assert.NotEmpty(t, issue.Message)
				keywords = append(keywords, issue.Keyword)
			}
			assert.Contains(t, keywords, tt.wantKey)
		})
	}
}

func TestValidate_InvalidYAML(t *testing.T) {
	_, err := Validate([]byte("name: [unterminated\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("name: starter-theme\nenv:\n  - API_KEY\n"), 0644))

	m, err := Load(root)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "starter-theme", m.Name)
	assert.Equal(t, []string{"API_KEY"}, m.Env)
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoad_Invalid(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("env: [API_KEY]\n"), 0644))

	_, err := Load(root)
	var invalid *InvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, filepath.Join(root, FileName), invalid.Path)
	assert.Contains(t, err.Error(), "invalid starter manifest")
}
