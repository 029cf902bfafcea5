package store

import (
	"context"

	redigo "github.com/gomodule/redigo/redis"
)

// RedigoAdapter adapts a redigo connection pool to the ScriptStore
// interface.
type RedigoAdapter struct {
	pool *redigo.Pool
}

// NewRedigoAdapter creates a new redigo adapter.
func NewRedigoAdapter(pool *redigo.Pool) *RedigoAdapter {
	return &RedigoAdapter{pool: pool}
}

func (a *RedigoAdapter) LoadScript(ctx context.Context, source string) (string, error) {
	conn, err := a.pool.GetContext(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	return redigo.String(redigo.DoContext(conn, ctx, "SCRIPT", "LOAD", source))
}

func (a *RedigoAdapter) InvokeByID(ctx context.Context, contentID string, keys []string, args ...interface{}) (interface{}, error) {
	conn, err := a.pool.GetContext(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	callArgs := evalshaArgs(contentID, keys, args)
	return redigo.DoContext(conn, ctx, "EVALSHA", callArgs...)
}

// evalshaArgs builds the EVALSHA argument list:
//
//	EVALSHA sha1 numkeys [key ...] [arg ...]
//
// numkeys is always present, so a zero-key zero-arg invocation still
// produces a well-formed call (EVALSHA sha1 0) rather than a truncated one.
func evalshaArgs(contentID string, keys []string, args []interface{}) redigo.Args {
	callArgs := redigo.Args{}.Add(contentID).Add(len(keys))
	for _, key := range keys {
		callArgs = callArgs.Add(key)
	}
	return callArgs.Add(args...)
}
