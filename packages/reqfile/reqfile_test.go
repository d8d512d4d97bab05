package reqfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geerlingguy/Request/packages/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
requests:
  - name: homepage
    url: https://example.com/
    check: Welcome
  - url: https://example.com/login
    method: POST
    form:
      user: alice
      pass: s3cret
    timeout: 30
`)

	f, err := Load(path)
	require.NoError(t, err)
	require.Len(t, f.Requests, 2)

	assert.Equal(t, "homepage", f.Requests[0].DisplayName())
	assert.Equal(t, "Welcome", f.Requests[0].Check)

	assert.Equal(t, "https://example.com/login", f.Requests[1].DisplayName())
	assert.Equal(t, "POST", f.Requests[1].Method)
	assert.Equal(t, "alice", f.Requests[1].Form["user"])
	assert.Equal(t, 30, f.Requests[1].Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "empty file",
			content: "",
			errMsg:  "no requests defined",
		},
		{
			name: "missing url",
			content: `
requests:
  - name: broken
`,
			errMsg: "missing a url",
		},
		{
			name: "data and form together",
			content: `
requests:
  - url: https://example.com
    data: raw
    form:
      a: "1"
`,
			errMsg: "sets both data and form",
		},
		{
			name:    "bad yaml",
			content: "requests: [",
			errMsg:  "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuild_Defaults(t *testing.T) {
	def := &Definition{URL: "https://example.com"}

	r, err := Build(def, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", r.Address())
	assert.Equal(t, config.Default().Timeout, r.Timeout())
	assert.Equal(t, config.Default().ConnectTimeout, r.ConnectTimeout())
}

func TestBuild_DefinitionOverridesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.UserAgent = "config-agent"
	cfg.Timeout = 20

	def := &Definition{
		URL:       "https://example.com",
		UserAgent: "def-agent",
		Timeout:   45,
	}

	r, err := Build(def, cfg)
	require.NoError(t, err)
	assert.Equal(t, "def-agent", r.UserAgent())
	assert.Equal(t, 45, r.Timeout())
}

func TestBuild_CookieJarFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.CookieJar = filepath.Join(t.TempDir(), "cookies.json")

	r, err := Build(&Definition{URL: "https://example.com"}, cfg)
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestBuild_EmptyURL(t *testing.T) {
	_, err := Build(&Definition{}, nil)
	assert.Error(t, err)
}
