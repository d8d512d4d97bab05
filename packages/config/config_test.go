package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geerlingguy/Request/packages/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, request.DefaultUserAgent, c.UserAgent)
	assert.Equal(t, request.DefaultTimeout, c.Timeout)
	assert.Equal(t, request.DefaultConnectTimeout, c.ConnectTimeout)
	assert.False(t, c.GetVerifySSL())
	assert.False(t, c.GetNoColor())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
userAgent: test-agent
timeout: 30
connectTimeout: 5
verifySSL: true
cookieJar: /tmp/cookies.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test-agent", c.UserAgent)
	assert.Equal(t, 30, c.Timeout)
	assert.Equal(t, 5, c.ConnectTimeout)
	assert.True(t, c.GetVerifySSL())
	assert.Equal(t, "/tmp/cookies.json", c.CookieJar)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFindAndLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".request.yaml"), []byte("timeout: 42\n"), 0644))

	c, err := FindAndLoad(dir)
	require.NoError(t, err)
	assert.Equal(t, 42, c.Timeout)
	// Unset fields keep their defaults.
	assert.Equal(t, request.DefaultUserAgent, c.UserAgent)
}

func TestFindAndLoad_NoFile(t *testing.T) {
	c, err := FindAndLoad(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, request.DefaultTimeout, c.Timeout)
}

func TestMerge(t *testing.T) {
	base := Default()
	merged := base.Merge(&Config{
		UserAgent: "other-agent",
		Timeout:   60,
		VerifySSL: BoolPtr(true),
	})

	assert.Equal(t, "other-agent", merged.UserAgent)
	assert.Equal(t, 60, merged.Timeout)
	assert.True(t, merged.GetVerifySSL())
	// Untouched fields survive the merge.
	assert.Equal(t, request.DefaultConnectTimeout, merged.ConnectTimeout)

	assert.Same(t, base, base.Merge(nil))
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	c := Default()
	c.UserAgent = "saved-agent"
	require.NoError(t, c.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-agent", loaded.UserAgent)
}
