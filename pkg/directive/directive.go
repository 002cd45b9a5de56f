// Package directive implements the micro-templating language used in
// template segment text: variable interpolation and single-level
// conditional blocks.
//
// The full syntax is:
//
//	{{ name }}                          interpolation
//	{% if name %}...{% endif %}         conditional block
//	{% if not name %}...{% endif %}     negated condition
//	{% if a and b %}...{% endif %}      two-term conjunction
//
// Conditions test bare-name truthiness: a variable is true when it is
// bound to a non-empty string. There are no loops, no else branches and
// no nested blocks. Segment text is parsed once into a small node list,
// repeated expansions reuse the parsed form.
package directive

import (
	"strings"

	"github.com/printerm/printerm/pkg/errors"
)

// node is one parsed unit of segment text
type node interface {
	expand(sb *strings.Builder, ctx map[string]string)
}

// literalNode is a run of plain text
type literalNode struct {
	text string
}

func (n *literalNode) expand(sb *strings.Builder, ctx map[string]string) {
	sb.WriteString(n.text)
}

// interpNode substitutes a variable value, empty string when unbound
type interpNode struct {
	name string
}

func (n *interpNode) expand(sb *strings.Builder, ctx map[string]string) {
	sb.WriteString(ctx[n.name])
}

// term is one operand of a condition, optionally negated
type term struct {
	name    string
	negated bool
}

func (t term) truthy(ctx map[string]string) bool {
	v := ctx[t.name] != ""
	if t.negated {
		return !v
	}
	return v
}

// ifNode guards its body nodes behind a condition of one or two terms.
// Two terms are combined with a conjunction.
type ifNode struct {
	terms []term
	body  []node
}

func (n *ifNode) expand(sb *strings.Builder, ctx map[string]string) {
	for _, t := range n.terms {
		if !t.truthy(ctx) {
			return
		}
	}
	for _, b := range n.body {
		b.expand(sb, ctx)
	}
}

// Program is the parsed form of one segment's text
type Program struct {
	source string
	nodes  []node
}

// Source returns the original segment text the program was parsed from
func (p *Program) Source() string {
	return p.source
}

// Expand renders the program against a binding context. Unbound
// variables interpolate as empty strings, whitespace is preserved
// exactly as written.
func (p *Program) Expand(ctx map[string]string) string {
	var sb strings.Builder
	for _, n := range p.nodes {
		n.expand(&sb, ctx)
	}
	return sb.String()
}

// Variables returns every variable name the program references, in
// first-appearance order. Both interpolations and condition terms
// count as references.
func (p *Program) Variables() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	var walk func(nodes []node)
	walk = func(nodes []node) {
		for _, n := range nodes {
			switch v := n.(type) {
			case *interpNode:
				add(v.name)
			case *ifNode:
				for _, t := range v.terms {
					add(t.name)
				}
				walk(v.body)
			}
		}
	}
	walk(p.nodes)
	return names
}

// Parse parses segment text into a Program. Malformed directives fail
// with a TEMPLATE_SYNTAX error describing the offending construct.
func Parse(text string) (*Program, error) {
	p := &parser{input: text}
	nodes, err := p.parseNodes(false)
	if err != nil {
		return nil, err
	}
	return &Program{source: text, nodes: nodes}, nil
}

const (
	openInterp  = "{{"
	closeInterp = "}}"
	openBlock   = "{%"
	closeBlock  = "%}"
)

type parser struct {
	input string
	pos   int
}

// parseNodes consumes nodes until end of input, or until an endif tag
// when insideIf is set. The endif tag itself is consumed.
func (p *parser) parseNodes(insideIf bool) ([]node, error) {
	var nodes []node
	for p.pos < len(p.input) {
		rest := p.input[p.pos:]

		openAt := -1
		if i := strings.Index(rest, openInterp); i >= 0 {
			openAt = i
		}
		if i := strings.Index(rest, openBlock); i >= 0 && (openAt < 0 || i < openAt) {
			openAt = i
		}

		if openAt < 0 {
			// No more directives, the rest is literal text
			nodes = append(nodes, &literalNode{text: rest})
			p.pos = len(p.input)
			break
		}

		if openAt > 0 {
			nodes = append(nodes, &literalNode{text: rest[:openAt]})
			p.pos += openAt
			continue
		}

		if strings.HasPrefix(rest, openInterp) {
			n, err := p.parseInterp()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
			continue
		}

		// Block tag: either an if opener or the endif closing this level
		tag, err := p.readBlockTag()
		if err != nil {
			return nil, err
		}

		if tag == "endif" {
			if !insideIf {
				return nil, errors.New(errors.ErrTemplateSyntax,
					"'{% endif %}' without a matching '{% if %}'")
			}
			return nodes, nil
		}

		if tag != "if" && !strings.HasPrefix(tag, "if ") {
			return nil, errors.Newf(errors.ErrTemplateSyntax,
				"unknown directive '{%% %s %%}'", tag)
		}
		cond := strings.TrimSpace(strings.TrimPrefix(tag, "if"))
		if cond == "" {
			return nil, errors.New(errors.ErrTemplateSyntax,
				"'{% if %}' has an empty condition")
		}
		if insideIf {
			return nil, errors.New(errors.ErrTemplateSyntax,
				"nested '{% if %}' blocks are not supported")
		}

		terms, err := parseCondition(cond)
		if err != nil {
			return nil, err
		}

		body, err := p.parseNodes(true)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &ifNode{terms: terms, body: body})
	}

	if insideIf {
		return nil, errors.New(errors.ErrTemplateSyntax,
			"'{% if %}' block is missing its '{% endif %}'")
	}
	return nodes, nil
}

// parseInterp consumes a {{ name }} directive at the current position
func (p *parser) parseInterp() (node, error) {
	rest := p.input[p.pos:]
	end := strings.Index(rest, closeInterp)
	if end < 0 {
		return nil, errors.New(errors.ErrTemplateSyntax,
			"unclosed '{{' interpolation")
	}

	name := strings.TrimSpace(rest[len(openInterp):end])
	if !IsIdentifier(name) {
		return nil, errors.Newf(errors.ErrTemplateSyntax,
			"invalid variable name '%s' in interpolation", name)
	}

	p.pos += end + len(closeInterp)
	return &interpNode{name: name}, nil
}

// readBlockTag consumes a {% ... %} tag and returns its trimmed body
func (p *parser) readBlockTag() (string, error) {
	rest := p.input[p.pos:]
	end := strings.Index(rest, closeBlock)
	if end < 0 {
		return "", errors.New(errors.ErrTemplateSyntax,
			"unclosed '{%' block tag")
	}

	tag := strings.TrimSpace(rest[len(openBlock):end])
	p.pos += end + len(closeBlock)
	return tag, nil
}

// parseCondition parses "a", "not a", "a and b", "not a and not b"
func parseCondition(cond string) ([]term, error) {
	parts := strings.Split(cond, " and ")
	if len(parts) > 2 {
		return nil, errors.Newf(errors.ErrTemplateSyntax,
			"condition '%s' has more than two terms", cond)
	}

	terms := make([]term, 0, len(parts))
	for _, part := range parts {
		t := term{}
		fields := strings.Fields(part)
		switch len(fields) {
		case 1:
			t.name = fields[0]
		case 2:
			if fields[0] != "not" {
				return nil, errors.Newf(errors.ErrTemplateSyntax,
					"invalid condition term '%s'", strings.TrimSpace(part))
			}
			t.negated = true
			t.name = fields[1]
		default:
			return nil, errors.Newf(errors.ErrTemplateSyntax,
				"invalid condition term '%s'", strings.TrimSpace(part))
		}

		if !IsIdentifier(t.name) {
			return nil, errors.Newf(errors.ErrTemplateSyntax,
				"invalid variable name '%s' in condition", t.name)
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// IsIdentifier reports whether s is a valid variable name: letters,
// digits and underscores, not starting with a digit.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
