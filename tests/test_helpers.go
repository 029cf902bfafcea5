package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bitechdev/RedisScriptCache/pkg/localstore"
	"github.com/bitechdev/RedisScriptCache/pkg/scriptcache"
)

// setupCache creates a cache backed by a fresh in-process store.
func setupCache(t *testing.T) (*scriptcache.Cache, *localstore.Store) {
	t.Helper()
	store := localstore.New()
	return scriptcache.NewCache(store), store
}

// setupScriptDir writes the given scripts into a temp directory and
// returns its path.
func setupScriptDir(t *testing.T, scripts map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, source := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644))
	}
	return dir
}
