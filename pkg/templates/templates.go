// Package templates loads and validates print template definitions.
//
// A template is a YAML document declaring named variable slots and an
// ordered list of text segments. Segment text may contain interpolation
// and conditional directives (see pkg/directive); segments flagged as
// markdown are later split into styled runs. Templates are immutable
// once loaded: the Store hands out shared pointers and nothing
// downstream mutates them.
//
// Definitions are discovered in the user template directory first and
// the embedded builtin set second, keyed by their name field. A user
// template with the same name as a builtin shadows it.
package templates

import (
	"github.com/printerm/printerm/pkg/directive"
)

// SourceBuiltin marks templates bundled into the binary.
const SourceBuiltin = "builtin"

// Template is a validated, immutable print template definition.
type Template struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Variables   []Variable `yaml:"variables,omitempty"`
	Segments    []Segment  `yaml:"segments"`
	Script      string     `yaml:"script,omitempty"`
	Source      string     `yaml:"-"` // file path or SourceBuiltin
}

// Variable declares a named value slot a template consumes.
type Variable struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required"` // defaults to true when omitted
	Markdown    bool   `yaml:"markdown,omitempty"`
}

// Label returns the human-facing name for the variable: its
// description when present, its name otherwise.
func (v Variable) Label() string {
	if v.Description != "" {
		return v.Description
	}
	return v.Name
}

// Segment is one ordered piece of template output: a text pattern, a
// markdown flag, and the base style applied to every run it produces.
type Segment struct {
	Text     string   `yaml:"text"`
	Markdown bool     `yaml:"markdown,omitempty"`
	Styles   StyleSet `yaml:"styles,omitempty"`

	program *directive.Program
}

// Expand substitutes bindings into the segment's text pattern,
// evaluating its conditional blocks against the same bindings.
func (s *Segment) Expand(bindings map[string]string) string {
	if s.program == nil {
		return s.Text
	}
	return s.program.Expand(bindings)
}

// Variables returns the names the segment's directives reference,
// in order of first appearance.
func (s *Segment) Variables() []string {
	if s.program == nil {
		return nil
	}
	return s.program.Variables()
}

// Summary is the listing view of a template.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Variable returns the declaration for name, if present.
func (t *Template) Variable(name string) (Variable, bool) {
	for _, v := range t.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// HasScript reports whether the template's binding context comes from
// a script rather than user-supplied values.
func (t *Template) HasScript() bool {
	return t.Script != ""
}

// Summary returns the listing view of the template.
func (t *Template) Summary() Summary {
	return Summary{Name: t.Name, Description: t.Description}
}
