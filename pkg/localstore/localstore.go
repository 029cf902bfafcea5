// Package localstore provides an in-process ScriptStore backed by
// gopher-lua. It mirrors the slice of Redis scripting the cache relies on:
// content identifiers are hex SHA1 digests of the source text (the scheme
// Redis itself uses), and invocation executes the Lua source with KEYS and
// ARGV globals plus a redis.call shim over an in-memory key/value map. It
// exists so the cache, the test server and the CLI can run without a Redis
// server.
package localstore

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Store is an in-process scripting store. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	scripts map[string]string
	kv      map[string]string
}

// New creates an empty local store.
func New() *Store {
	return &Store{
		scripts: make(map[string]string),
		kv:      make(map[string]string),
	}
}

// LoadScript compiles the source to surface syntax errors at load time,
// like SCRIPT LOAD does, then stores it under its SHA1 digest.
func (s *Store) LoadScript(ctx context.Context, source string) (string, error) {
	L := lua.NewState()
	defer L.Close()
	if _, err := L.LoadString(source); err != nil {
		return "", fmt.Errorf("compiling script: %w", err)
	}

	sum := sha1.Sum([]byte(source))
	contentID := hex.EncodeToString(sum[:])

	s.mu.Lock()
	s.scripts[contentID] = source
	s.mu.Unlock()
	return contentID, nil
}

// InvokeByID executes a previously loaded script. Arguments reach the
// script as strings through ARGV, matching the Redis calling convention.
func (s *Store) InvokeByID(ctx context.Context, contentID string, keys []string, args ...interface{}) (interface{}, error) {
	s.mu.Lock()
	source, ok := s.scripts[contentID]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("NOSCRIPT no matching script for %s", contentID)
	}

	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	keysTable := L.NewTable()
	for _, key := range keys {
		keysTable.Append(lua.LString(key))
	}
	L.SetGlobal("KEYS", keysTable)

	argvTable := L.NewTable()
	for _, arg := range args {
		argvTable.Append(lua.LString(fmt.Sprint(arg)))
	}
	L.SetGlobal("ARGV", argvTable)

	redisTable := L.NewTable()
	L.SetField(redisTable, "call", L.NewFunction(s.luaCall))
	// pcall shares the call implementation; script-level error trapping
	// is not simulated.
	L.SetField(redisTable, "pcall", L.NewFunction(s.luaCall))
	L.SetGlobal("redis", redisTable)

	fn, err := L.LoadString(source)
	if err != nil {
		return nil, err
	}
	L.Push(fn)
	if err := L.PCall(0, 1, nil); err != nil {
		return nil, err
	}

	result := L.Get(-1)
	L.Pop(1)
	return fromLua(result), nil
}

// FlushScripts drops every loaded script, like SCRIPT FLUSH. Caches built
// on this store are invalidated and must be recreated.
func (s *Store) FlushScripts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = make(map[string]string)
}

// Get reads a value from the backing key/value map, for assertions in
// tests and tooling.
func (s *Store) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.kv[key]
	return v, ok
}

// Set writes a value into the backing key/value map.
func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
}

// luaCall implements redis.call for the supported command subset:
// GET, SET, DEL, EXISTS, INCR, INCRBY.
func (s *Store) luaCall(L *lua.LState) int {
	top := L.GetTop()
	if top < 1 {
		L.RaiseError("wrong number of arguments to redis.call")
		return 0
	}
	cmd := strings.ToUpper(L.CheckString(1))
	argv := make([]string, 0, top-1)
	for i := 2; i <= top; i++ {
		argv = append(argv, lua.LVAsString(L.Get(i)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd {
	case "GET":
		s.checkArity(L, cmd, argv, 1)
		if v, ok := s.kv[argv[0]]; ok {
			L.Push(lua.LString(v))
		} else {
			// Redis maps a nil reply to Lua false.
			L.Push(lua.LFalse)
		}
	case "SET":
		s.checkArity(L, cmd, argv, 2)
		s.kv[argv[0]] = argv[1]
		L.Push(lua.LString("OK"))
	case "DEL":
		removed := 0
		for _, key := range argv {
			if _, ok := s.kv[key]; ok {
				delete(s.kv, key)
				removed++
			}
		}
		L.Push(lua.LNumber(removed))
	case "EXISTS":
		found := 0
		for _, key := range argv {
			if _, ok := s.kv[key]; ok {
				found++
			}
		}
		L.Push(lua.LNumber(found))
	case "INCR", "INCRBY":
		by := int64(1)
		if cmd == "INCRBY" {
			s.checkArity(L, cmd, argv, 2)
			n, err := strconv.ParseInt(argv[1], 10, 64)
			if err != nil {
				L.RaiseError("value is not an integer or out of range")
				return 0
			}
			by = n
		} else {
			s.checkArity(L, cmd, argv, 1)
		}
		current := int64(0)
		if v, ok := s.kv[argv[0]]; ok {
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				L.RaiseError("value is not an integer or out of range")
				return 0
			}
			current = n
		}
		current += by
		s.kv[argv[0]] = strconv.FormatInt(current, 10)
		L.Push(lua.LNumber(current))
	default:
		L.RaiseError("unsupported command '%s'", cmd)
		return 0
	}
	return 1
}

func (s *Store) checkArity(L *lua.LState, cmd string, argv []string, want int) {
	if len(argv) < want {
		L.RaiseError("wrong number of arguments for '%s'", strings.ToLower(cmd))
	}
}

// fromLua converts a script's return value to the shape a Redis client
// would deliver: numbers truncate to integers, false becomes nil, tables
// flatten to their array part.
func fromLua(value lua.LValue) interface{} {
	switch v := value.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		if bool(v) {
			return int64(1)
		}
		return nil
	case lua.LNumber:
		return int64(math.Trunc(float64(v)))
	case lua.LString:
		return string(v)
	case *lua.LTable:
		var result []interface{}
		v.ForEach(func(key, item lua.LValue) {
			if _, ok := key.(lua.LNumber); ok {
				result = append(result, fromLua(item))
			}
		})
		return result
	default:
		return v.String()
	}
}
