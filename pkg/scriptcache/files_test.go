package scriptcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitechdev/RedisScriptCache/pkg/common"
)

func writeScript(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestRegisterFile(t *testing.T) {
	store := &fakeStore{}
	cache := NewCache(store)
	dir := t.TempDir()
	path := writeScript(t, dir, "incr.lua", "return redis.call('INCR', KEYS[1])")

	id, err := cache.RegisterFile(context.Background(), path)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// The name is the base name with the extension stripped.
	resolved, ok := cache.Resolve("incr")
	assert.True(t, ok)
	assert.Equal(t, id, resolved)
}

func TestRegisterFileMissing(t *testing.T) {
	store := &fakeStore{}
	cache := NewCache(store)

	_, err := cache.RegisterFile(context.Background(), filepath.Join(t.TempDir(), "nope.lua"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFileReadFailed)
	assert.Equal(t, 0, store.loads(), "read failure must precede any remote call")
}

func TestRegisterFileEmptySource(t *testing.T) {
	store := &fakeStore{}
	cache := NewCache(store)
	path := writeScript(t, t.TempDir(), "empty.lua", "")

	_, err := cache.RegisterFile(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
	assert.Equal(t, 0, store.loads())
}

func TestRegisterAllScripts(t *testing.T) {
	store := &fakeStore{}
	cache := NewCache(store)
	dir := t.TempDir()
	writeScript(t, dir, "incr.lua", "return redis.call('INCR', KEYS[1])")
	writeScript(t, dir, "decr.lua", "return redis.call('DECR', KEYS[1])")
	writeScript(t, dir, "notes.txt", "not a script")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	names, err := cache.RegisterAllScripts(context.Background(), dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"incr", "decr"}, names)
	assert.Equal(t, 2, store.loads())
}

func TestRegisterAllScriptsMissingDir(t *testing.T) {
	store := &fakeStore{}
	cache := NewCache(store)

	_, err := cache.RegisterAllScripts(context.Background(), filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestRegisterAllScriptsAbortsOnFirstError(t *testing.T) {
	store := &fakeStore{
		loadFunc: func(source string) (string, error) {
			if strings.Contains(source, "malformed") {
				return "", fmt.Errorf("ERR Error compiling script")
			}
			return fmt.Sprintf("id-%d", len(source)), nil
		},
	}
	cache := NewCache(store)
	dir := t.TempDir()
	// os.ReadDir yields entries sorted by name, so the scan order is
	// aaa, bbb, ccc.
	writeScript(t, dir, "aaa.lua", "return 1")
	writeScript(t, dir, "bbb.lua", "malformed")
	writeScript(t, dir, "ccc.lua", "return 3")

	_, err := cache.RegisterAllScripts(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrRemoteLoadFailed)

	// Files before the failure stay registered, files after it were
	// never reached.
	_, ok := cache.Resolve("aaa")
	assert.True(t, ok)
	_, ok = cache.Resolve("bbb")
	assert.False(t, ok)
	_, ok = cache.Resolve("ccc")
	assert.False(t, ok)
}
