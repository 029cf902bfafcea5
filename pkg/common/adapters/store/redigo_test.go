package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitechdev/RedisScriptCache/pkg/common"
)

// Both adapters must satisfy the store interface.
var (
	_ common.ScriptStore = (*GoRedisAdapter)(nil)
	_ common.ScriptStore = (*RedigoAdapter)(nil)
)

func TestEvalshaArgs(t *testing.T) {
	callArgs := evalshaArgs("abc123", []string{"counter", "limit"}, []interface{}{5, "k"})

	assert.Equal(t, []interface{}{"abc123", 2, "counter", "limit", 5, "k"}, []interface{}(callArgs))
}

func TestEvalshaArgsZeroArguments(t *testing.T) {
	// An invocation without keys or args still carries an explicit
	// numkeys of 0 on the wire.
	callArgs := evalshaArgs("abc123", nil, nil)

	assert.Equal(t, []interface{}{"abc123", 0}, []interface{}(callArgs))
}

func TestEvalshaArgsKeysOnly(t *testing.T) {
	callArgs := evalshaArgs("abc123", []string{"counter"}, nil)

	assert.Equal(t, []interface{}{"abc123", 1, "counter"}, []interface{}(callArgs))
}
