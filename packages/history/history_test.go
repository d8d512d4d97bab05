package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/geerlingguy/Request/packages/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RecordAndRecent(t *testing.T) {
	s := openStore(t)

	id, err := s.Record("https://example.com", "GET", &request.Result{
		StatusCode: 200,
		Latency:    250 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = s.Record("https://example.com/broken", "POST", &request.Result{
		Err: errors.New("connection refused"),
	})
	require.NoError(t, err)

	entries, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "https://example.com/broken", entries[0].Address)
	assert.Equal(t, "POST", entries[0].Method)
	assert.Zero(t, entries[0].StatusCode)
	assert.Equal(t, "connection refused", entries[0].TransportError)

	assert.Equal(t, "https://example.com", entries[1].Address)
	assert.Equal(t, 200, entries[1].StatusCode)
	assert.Equal(t, int64(250), entries[1].LatencyMs)
	assert.Empty(t, entries[1].TransportError)
}

func TestStore_RecordDefaultsMethod(t *testing.T) {
	s := openStore(t)

	_, err := s.Record("https://example.com", "", &request.Result{StatusCode: 200})
	require.NoError(t, err)

	entries, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "GET", entries[0].Method)
}

func TestStore_RecentLimit(t *testing.T) {
	s := openStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.Record("https://example.com", "GET", &request.Result{StatusCode: 200})
		require.NoError(t, err)
	}

	entries, err := s.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	// Non-positive limits fall back to the default.
	entries, err = s.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestStore_Clear(t *testing.T) {
	s := openStore(t)

	_, err := s.Record("https://example.com", "GET", &request.Result{StatusCode: 200})
	require.NoError(t, err)

	require.NoError(t, s.Clear())

	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Record("https://example.com", "GET", &request.Result{StatusCode: 200})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	entries, err := s.Recent(10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
