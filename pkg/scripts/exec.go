package scripts

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/printerm/printerm/pkg/errors"
)

// passedEnv lists the only environment variables an external script
// inherits. Everything else in the parent environment stays private.
var passedEnv = []string{"PATH", "HOME", "LANG", "LC_ALL", "TZ"}

// execProvider runs an external program and reads the binding context
// from its stdout as a JSON string map.
type execProvider struct {
	command string
	args    []string
}

func newExecProvider(commandLine string) (*execProvider, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New(errors.ErrScriptNotFound,
			"Script reference 'exec:' names no program")
	}
	return &execProvider{command: fields[0], args: fields[1:]}, nil
}

func (p *execProvider) Name() string {
	return ExecPrefix + p.command
}

func (p *execProvider) Description() string {
	return "External context script " + p.command
}

func (p *execProvider) GenerateContext(ctx context.Context) (map[string]string, error) {
	cmd := exec.CommandContext(ctx, p.command, p.args...)
	cmd.Env = scrubbedEnv()
	// don't wait on pipes held open by orphaned grandchildren
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			// the Runner classifies budget overruns
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrScriptExecution,
			"Script '%s' failed", p.command).
			WithDetail("stderr", tail(stderr.String(), 512))
	}

	var bindings map[string]string
	if err := json.Unmarshal(stdout.Bytes(), &bindings); err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptExecution,
			"Script '%s' did not produce a JSON string map", p.command)
	}
	return bindings, nil
}

func scrubbedEnv() []string {
	env := make([]string, 0, len(passedEnv))
	for _, key := range passedEnv {
		if value, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+value)
		}
	}
	return env
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
