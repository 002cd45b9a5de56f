package scripts

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printerm/printerm/pkg/errors"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts")
	}
	path := filepath.Join(t.TempDir(), "script.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestExecProviderJSONOutput(t *testing.T) {
	script := writeScript(t, `printf '{"city":"Oslo","temp":"21"}'`+"\n")

	bindings, err := NewRunner(0).Run(context.Background(), ExecPrefix+script)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"city": "Oslo", "temp": "21"}, bindings)
}

func TestExecProviderBadOutput(t *testing.T) {
	script := writeScript(t, "echo this is not json\n")

	_, err := NewRunner(0).Run(context.Background(), ExecPrefix+script)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptExecution))
	assert.Contains(t, err.Error(), "JSON string map")
}

func TestExecProviderNonZeroExit(t *testing.T) {
	script := writeScript(t, "echo broken >&2\nexit 3\n")

	_, err := NewRunner(0).Run(context.Background(), ExecPrefix+script)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptExecution))
	assert.Equal(t, "broken", errors.GetErrorDetails(err)["stderr"])
}

func TestExecProviderScrubsEnvironment(t *testing.T) {
	t.Setenv("PRINTERM_TEST_SECRET", "hunter2")
	script := writeScript(t,
		`printf '{"secret":"%s","path":"%s"}' "$PRINTERM_TEST_SECRET" "$PATH"`+"\n")

	bindings, err := NewRunner(0).Run(context.Background(), ExecPrefix+script)
	require.NoError(t, err)
	assert.Empty(t, bindings["secret"], "ambient environment must not leak into scripts")
	assert.NotEmpty(t, bindings["path"], "PATH is passed through")
}

func TestExecProviderTimeout(t *testing.T) {
	script := writeScript(t, "sleep 10\n")

	_, err := NewRunner(50 * time.Millisecond).Run(context.Background(), ExecPrefix+script)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptTimeout))
}

func TestExecProviderEmptyReference(t *testing.T) {
	_, err := NewRunner(0).Run(context.Background(), "exec:")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptNotFound))
}

func TestExecProviderWithArgs(t *testing.T) {
	script := writeScript(t, `printf '{"arg":"%s"}' "$1"`+"\n")

	bindings, err := NewRunner(0).Run(context.Background(), ExecPrefix+script+" hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", bindings["arg"])
}
