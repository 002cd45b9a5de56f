// Package scripts executes template context scripts.
//
// A template that declares a script gets its binding context from a
// Provider instead of user-supplied values. Builtin providers are Go
// generators registered at init; references with the exec: prefix run
// an external program whose stdout must be a JSON string map. Every
// run happens under a wall-clock budget and either produces a complete
// context or an error, never a partial one.
package scripts

import (
	"context"
	"strings"
	"time"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/logging"
	"github.com/printerm/printerm/pkg/registry"
)

// Provider generates a binding context for a script-declared template.
type Provider interface {
	// Name is the identifier templates reference in their script field
	Name() string

	// Description says what the provider generates
	Description() string

	// GenerateContext produces the complete binding context. It must
	// honor ctx cancellation; on error no partial context is returned.
	GenerateContext(ctx context.Context) (map[string]string, error)
}

// providers holds every registered context provider
var providers = registry.New[Provider]()

// RegisterProvider adds a provider to the package registry.
func RegisterProvider(p Provider) error {
	return providers.Register(p.Name(), p)
}

// MustRegisterProvider registers a provider and panics on failure.
// Builtin providers use it from init.
func MustRegisterProvider(p Provider) {
	registry.MustRegister(providers, p.Name(), p)
}

// Lookup returns the provider registered under name.
func Lookup(name string) (Provider, error) {
	p, err := providers.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrScriptNotFound, "Script '%s' is not available", name)
	}
	return p, nil
}

// Names returns every registered provider name, sorted.
func Names() []string {
	return providers.List()
}

// DefaultTimeout bounds script runs when no budget is configured.
const DefaultTimeout = 10 * time.Second

// ExecPrefix marks script references that run an external program.
const ExecPrefix = "exec:"

// Runner executes context scripts under a wall-clock budget. It
// satisfies the render package's ScriptRunner.
type Runner struct {
	timeout time.Duration
}

// NewRunner returns a Runner with the given budget per run. Zero or
// negative means DefaultTimeout.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{timeout: timeout}
}

// Run resolves the script reference and generates its context.
func (r *Runner) Run(ctx context.Context, script string) (map[string]string, error) {
	var (
		provider Provider
		err      error
	)
	if command, ok := strings.CutPrefix(script, ExecPrefix); ok {
		provider, err = newExecProvider(command)
	} else {
		provider, err = Lookup(script)
	}
	if err != nil {
		return nil, err
	}

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	bindings, err := provider.GenerateContext(runCtx)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, errors.Wrapf(err, errors.ErrScriptTimeout,
				"Script '%s' exceeded its %s budget", script, r.timeout)
		}
		if errors.IsErrorCode(err, errors.ErrScriptExecution) {
			return nil, err
		}
		return nil, errors.Wrapf(err, errors.ErrScriptExecution, "Script '%s' failed", script)
	}

	logging.GetLogger("scripts").Debug().
		Str("script", script).
		Dur("took", time.Since(start)).
		Int("variables", len(bindings)).
		Msg("script context generated")
	return bindings, nil
}
