package tokenstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()

	_, err := s.Get("jwtToken")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set("jwtToken", "abc"))
	v, err := s.Get("jwtToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Set("jwtToken", "def"))
	v, err = s.Get("jwtToken")
	require.NoError(t, err)
	assert.Equal(t, "def", v)

	require.NoError(t, s.Remove("jwtToken"))
	_, err = s.Get("jwtToken")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Remove("jwtToken"), "removing a missing key is not an error")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)
}

func TestFileStorePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("jwtToken", "abc"))

	second, err := NewFileStore(path)
	require.NoError(t, err)
	v, err := second.Get("jwtToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", v)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = s.Get("jwtToken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := DialRedis(context.Background(), mr.Addr(), "", 0, WithKeyPrefix("restbase:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)

	require.NoError(t, s.Set("jwtToken", "abc"))
	raw, err := mr.Get("restbase:jwtToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", raw)
}

func TestDialRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := DialRedis(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
