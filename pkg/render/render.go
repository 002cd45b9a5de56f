// Package render turns a template plus variable values into the
// ordered run sequence both output targets consume.
//
// The stages are fixed: resolve a binding context (user-supplied
// values, or a script-generated context for templates that declare a
// script), expand each segment's directives against it, split
// markdown-flagged segments into spans, and merge inline overrides
// onto segment base styles. The same []Run feeds the ESC/POS encoder
// and the preview encoders, which keeps the two outputs consistent.
package render

import (
	"context"
	"strings"

	"github.com/printerm/printerm/pkg/errors"
	"github.com/printerm/printerm/pkg/logging"
	"github.com/printerm/printerm/pkg/templates"
)

// Run is one styled piece of rendered output. Text is printed exactly
// as is; Style is fully resolved, no attribute left to guess.
type Run struct {
	Text  string
	Style templates.ResolvedStyle
}

// ScriptRunner executes a template's context script and returns the
// generated binding context. Implemented by pkg/scripts.
type ScriptRunner interface {
	Run(ctx context.Context, script string) (map[string]string, error)
}

// Renderer resolves binding contexts and composes run sequences.
type Renderer struct {
	scripts ScriptRunner
}

// NewRenderer returns a Renderer. scripts may be nil when no script
// providers are available; script-declared templates then fail to
// resolve.
func NewRenderer(scripts ScriptRunner) *Renderer {
	return &Renderer{scripts: scripts}
}

// Render resolves the binding context for tmpl and composes its runs.
func (r *Renderer) Render(ctx context.Context, tmpl *templates.Template, supplied map[string]string) ([]Run, error) {
	bindings, err := r.Resolve(ctx, tmpl, supplied)
	if err != nil {
		return nil, err
	}
	return Compose(tmpl, bindings), nil
}

// Resolve produces the binding context for tmpl.
//
// Templates without a script take each declared variable from
// supplied; every missing required variable is collected before
// failing, so the error names all of them. Templates with a script
// use the script output verbatim and ignore supplied entirely.
func (r *Renderer) Resolve(ctx context.Context, tmpl *templates.Template, supplied map[string]string) (map[string]string, error) {
	if tmpl.HasScript() {
		return r.resolveScripted(ctx, tmpl)
	}

	bindings := make(map[string]string, len(tmpl.Variables))
	for _, v := range tmpl.Variables {
		bindings[v.Name] = supplied[v.Name]
	}
	if err := missingError(tmpl, bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

func (r *Renderer) resolveScripted(ctx context.Context, tmpl *templates.Template) (map[string]string, error) {
	if r.scripts == nil {
		return nil, errors.Newf(errors.ErrScriptNotFound,
			"Script '%s' is not available", tmpl.Script)
	}

	logging.GetLogger("render").Debug().
		Str("template", tmpl.Name).
		Str("script", tmpl.Script).
		Msg("generating context from script")

	bindings, err := r.scripts.Run(ctx, tmpl.Script)
	if err != nil {
		return nil, err
	}
	// the script ran fine but left required slots empty
	if err := missingError(tmpl, bindings); err != nil {
		return nil, err
	}
	return bindings, nil
}

// Validate checks supplied values against tmpl without rendering.
// Script-declared templates need no supplied values and always pass.
func Validate(tmpl *templates.Template, supplied map[string]string) error {
	if tmpl.HasScript() {
		return nil
	}
	return missingError(tmpl, supplied)
}

// missingError returns an ErrValidation naming every required variable
// with an empty value, or nil when all are present.
func missingError(tmpl *templates.Template, values map[string]string) error {
	var missing []string
	var messages []string
	for _, v := range tmpl.Variables {
		if !v.Required || values[v.Name] != "" {
			continue
		}
		missing = append(missing, v.Name)
		messages = append(messages, "Required field missing: "+v.Label())
	}
	if len(missing) == 0 {
		return nil
	}

	message := messages[0]
	if len(messages) > 1 {
		message = "Required fields missing: " + strings.Join(labels(tmpl, missing), ", ")
	}
	return errors.New(errors.ErrValidation, message).
		WithDetail("missing", missing).
		WithDetail("errors", messages)
}

func labels(tmpl *templates.Template, names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		v, _ := tmpl.Variable(name)
		out[i] = v.Label()
	}
	return out
}

// Compose expands every segment against bindings and flattens the
// result into one run sequence. Segments whose text expands to nothing
// contribute zero runs. Non-markdown segments yield exactly one run
// carrying the expanded text and the segment's base style; markdown
// segments yield one run per span, inline overrides merged onto the
// base style.
func Compose(tmpl *templates.Template, bindings map[string]string) []Run {
	var runs []Run
	for i := range tmpl.Segments {
		seg := &tmpl.Segments[i]
		expanded := seg.Expand(bindings)
		if expanded == "" {
			continue
		}

		if !seg.Markdown {
			runs = append(runs, Run{Text: expanded, Style: seg.Styles.Resolved()})
			continue
		}

		for _, span := range ParseMarkdown(expanded) {
			runs = append(runs, Run{
				Text:  span.Text,
				Style: seg.Styles.Merge(span.Overrides).Resolved(),
			})
		}
	}
	return runs
}

// CharCount is the number of characters across all runs, counted in
// runes so multi-byte text matches what the printer emits.
func CharCount(runs []Run) int {
	total := 0
	for _, run := range runs {
		total += len([]rune(run.Text))
	}
	return total
}
