package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScripts(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	scripts := map[string]string{
		"incr.lua": "return redis.call('INCRBY', KEYS[1], ARGV[1])",
		"ping.lua": "return 'PONG'",
	}
	for name, source := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(source), 0o644))
	}
	return dir
}

// execute runs the root command with args against the local backend and
// returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetFlags)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	flagConfig = ""
	flagBackend = ""
	flagRedisAddr = ""
	flagScriptDir = ""
	invokeKeys = nil
}

func TestRegisterCommand(t *testing.T) {
	dir := writeScripts(t)

	out, err := execute(t, "register", dir, "--backend", "local")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "incr\t"))
	assert.True(t, strings.HasPrefix(lines[1], "ping\t"))
}

func TestRegisterCommandMissingDir(t *testing.T) {
	_, err := execute(t, "register", filepath.Join(t.TempDir(), "absent"), "--backend", "local")
	require.Error(t, err)
}

func TestLoadCommand(t *testing.T) {
	dir := writeScripts(t)

	out, err := execute(t, "load", filepath.Join(dir, "ping.lua"), "--backend", "local")
	require.NoError(t, err)
	// A content identifier is a 40-char hex SHA1.
	assert.Len(t, strings.TrimSpace(out), 40)
}

func TestInvokeCommand(t *testing.T) {
	dir := writeScripts(t)

	out, err := execute(t, "invoke", "incr", "5", "--key", "counter", "--scripts", dir, "--backend", "local")
	require.NoError(t, err)
	assert.Equal(t, "5", strings.TrimSpace(out))
}

func TestInvokeCommandUnknownScript(t *testing.T) {
	_, err := execute(t, "invoke", "missing", "--backend", "local")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")
}

func TestListCommand(t *testing.T) {
	dir := writeScripts(t)

	out, err := execute(t, "list", "--scripts", dir, "--backend", "local")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
}

func TestUnknownBackendRejected(t *testing.T) {
	_, err := execute(t, "list", "--backend", "memcached")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}
