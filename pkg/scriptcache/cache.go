package scriptcache

import (
	"context"
	"fmt"

	"github.com/bitechdev/RedisScriptCache/pkg/common"
	"github.com/bitechdev/RedisScriptCache/pkg/logger"
	"github.com/bitechdev/RedisScriptCache/pkg/scriptregistry"
	"golang.org/x/sync/singleflight"
)

// Cache binds logical script names to content identifiers on a remote
// scripting store and guarantees each distinct name triggers at most one
// remote load for the lifetime of the cache instance. It is safe for
// concurrent use; one cache represents one store connection's worth of
// cached state and is meant to be shared.
//
// The cache does not detect out-of-band flushes of the store's loaded
// script set. A caller that flushes the store must discard the cache and
// create a new one.
type Cache struct {
	store    common.ScriptStore
	registry *scriptregistry.Registry
	loads    singleflight.Group
}

// NewCache creates an empty cache backed by the given store.
func NewCache(store common.ScriptStore) *Cache {
	return &Cache{
		store:    store,
		registry: scriptregistry.NewRegistry(),
	}
}

// Register ensures the script source is loaded on the store under name and
// returns its content identifier. A name that already resolves returns its
// existing identifier without contacting the store; new source text for an
// already-bound name is ignored. Concurrent registrations of the same
// unregistered name collapse into a single load, with every caller
// receiving the identifier the load produced. The registry is left
// unchanged when the load fails.
func (c *Cache) Register(ctx context.Context, name, source string) (string, error) {
	if name == "" {
		return "", common.NewError(common.ErrInvalidArgument, "script name is empty", nil)
	}
	if source == "" {
		return "", common.NewError(common.ErrInvalidArgument, fmt.Sprintf("script %s has empty source", name), nil)
	}

	if id, ok := c.registry.Resolve(name); ok {
		return id, nil
	}

	v, err, _ := c.loads.Do(name, func() (interface{}, error) {
		// A racing registration may have completed between the resolve
		// above and entering the flight.
		if id, ok := c.registry.Resolve(name); ok {
			return id, nil
		}

		id, err := c.store.LoadScript(ctx, source)
		if err != nil {
			return nil, common.NewError(common.ErrRemoteLoadFailed, fmt.Sprintf("loading script %s", name), err)
		}

		c.registry.RecordLoaded(name, id)
		logger.Debug("Registered script %s as %s", name, id)
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invoke executes the registered script name on the store with the given
// keys and positional arguments and returns the store's result verbatim.
// Empty keys and args still produce a full invoke call on the wire. The
// name must have been registered on this cache instance.
func (c *Cache) Invoke(ctx context.Context, name string, keys []string, args ...interface{}) (interface{}, error) {
	id, ok := c.registry.Resolve(name)
	if !ok {
		return nil, common.NewError(common.ErrUnknownScript, fmt.Sprintf("script %s is not registered", name), nil)
	}

	result, err := c.store.InvokeByID(ctx, id, keys, args...)
	if err != nil {
		return nil, common.NewError(common.ErrRemoteInvokeFailed, fmt.Sprintf("invoking script %s (%s)", name, id), err)
	}
	return result, nil
}

// Resolve returns the content identifier bound to name, if any.
func (c *Cache) Resolve(name string) (string, bool) {
	return c.registry.Resolve(name)
}

// Names returns all registered script names.
func (c *Cache) Names() []string {
	return c.registry.Names()
}

// Scripts returns a copy of the full name to identifier mapping.
func (c *Cache) Scripts() map[string]string {
	return c.registry.Snapshot()
}
