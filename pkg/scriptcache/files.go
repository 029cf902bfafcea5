package scriptcache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitechdev/RedisScriptCache/pkg/common"
	"github.com/bitechdev/RedisScriptCache/pkg/logger"
)

// ScriptExtension is the file extension recognized by RegisterFile and
// RegisterAllScripts.
const ScriptExtension = ".lua"

// RegisterFile registers the script in the given file under a name derived
// from the file's base name with the script extension stripped. The file
// is read before any remote call is attempted.
func (c *Cache) RegisterFile(ctx context.Context, path string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", common.NewError(common.ErrFileReadFailed, fmt.Sprintf("reading %s", path), err)
	}

	name := strings.TrimSuffix(filepath.Base(path), ScriptExtension)
	return c.Register(ctx, name, string(source))
}

// RegisterAllScripts registers every *.lua file directly inside dir
// (non-recursive) and returns the registry's full set of names. The scan
// aborts on the first file that fails to register; names registered before
// the failure stay registered, since the remote loads they performed
// cannot be rolled back.
func (c *Cache) RegisterAllScripts(ctx context.Context, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.NewError(common.ErrInvalidArgument, fmt.Sprintf("script directory %s", dir), err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ScriptExtension) {
			continue
		}
		if _, err := c.RegisterFile(ctx, filepath.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	names := c.registry.Names()
	logger.Info("Registered %d scripts from %s", len(names), dir)
	return names, nil
}
