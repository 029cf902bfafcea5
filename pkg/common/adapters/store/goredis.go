package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// GoRedisAdapter adapts a go-redis client to the ScriptStore interface.
// Any Scripter works: *redis.Client, *redis.ClusterClient or *redis.Ring.
type GoRedisAdapter struct {
	client redis.Scripter
}

// NewGoRedisAdapter creates a new go-redis adapter.
func NewGoRedisAdapter(client redis.Scripter) *GoRedisAdapter {
	return &GoRedisAdapter{client: client}
}

func (a *GoRedisAdapter) LoadScript(ctx context.Context, source string) (string, error) {
	return a.client.ScriptLoad(ctx, source).Result()
}

func (a *GoRedisAdapter) InvokeByID(ctx context.Context, contentID string, keys []string, args ...interface{}) (interface{}, error) {
	if keys == nil {
		// go-redis sends numkeys explicitly either way; normalize so the
		// call shape never depends on nil-vs-empty at this boundary.
		keys = []string{}
	}
	return a.client.EvalSha(ctx, contentID, keys, args...).Result()
}
