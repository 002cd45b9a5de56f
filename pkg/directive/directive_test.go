package directive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printerm/printerm/pkg/directive"
	"github.com/printerm/printerm/pkg/errors"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		text string
		ctx  map[string]string
		want string
	}{
		{
			name: "plain text passes through",
			text: "Hello, world!\n",
			ctx:  nil,
			want: "Hello, world!\n",
		},
		{
			name: "interpolation",
			text: "Hello, {{ name }}!",
			ctx:  map[string]string{"name": "Alice"},
			want: "Hello, Alice!",
		},
		{
			name: "interpolation without surrounding spaces",
			text: "Hello, {{name}}!",
			ctx:  map[string]string{"name": "Alice"},
			want: "Hello, Alice!",
		},
		{
			name: "unbound variable interpolates empty",
			text: "Hello, {{ name }}!",
			ctx:  map[string]string{},
			want: "Hello, !",
		},
		{
			name: "multiple interpolations",
			text: "{{ a }}-{{ b }}-{{ a }}",
			ctx:  map[string]string{"a": "x", "b": "y"},
			want: "x-y-x",
		},
		{
			name: "if with true condition keeps body",
			text: "{% if title %}{{ title }}\n{% endif %}",
			ctx:  map[string]string{"title": "Order #5"},
			want: "Order #5\n",
		},
		{
			name: "if with false condition drops body",
			text: "{% if title %}{{ title }}\n{% endif %}",
			ctx:  map[string]string{"title": ""},
			want: "",
		},
		{
			name: "negated condition",
			text: "{% if not title %}(untitled)\n{% endif %}",
			ctx:  map[string]string{"title": ""},
			want: "(untitled)\n",
		},
		{
			name: "conjunction requires both terms",
			text: "{% if a and b %}both{% endif %}",
			ctx:  map[string]string{"a": "1", "b": ""},
			want: "",
		},
		{
			name: "conjunction with both terms bound",
			text: "{% if a and b %}both{% endif %}",
			ctx:  map[string]string{"a": "1", "b": "2"},
			want: "both",
		},
		{
			name: "negated conjunction",
			text: "{% if not title and not number %}\n\n{% endif %}",
			ctx:  map[string]string{},
			want: "\n\n",
		},
		{
			name: "whitespace inside blocks preserved",
			text: "{% if x %}  spaced  {% endif %}",
			ctx:  map[string]string{"x": "1"},
			want: "  spaced  ",
		},
		{
			name: "text around blocks preserved",
			text: "before {% if x %}mid{% endif %} after",
			ctx:  map[string]string{"x": "y"},
			want: "before mid after",
		},
		{
			name: "interpolation inside block",
			text: "{% if ticket_number %}#{{ ticket_number }}\n{% endif %}",
			ctx:  map[string]string{"ticket_number": "123"},
			want: "#123\n",
		},
		{
			name: "single braces are literal",
			text: "a { b } c",
			ctx:  nil,
			want: "a { b } c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := directive.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, prog.Expand(tt.ctx))
		})
	}
}

func TestExpandDeterministic(t *testing.T) {
	prog, err := directive.Parse("{% if a %}{{ a }} says {{ b }}{% endif %}")
	require.NoError(t, err)

	ctx := map[string]string{"a": "cat", "b": "meow"}
	first := prog.Expand(ctx)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, prog.Expand(ctx))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"unclosed interpolation", "Hello {{ name"},
		{"unclosed block tag", "{% if title"},
		{"missing endif", "{% if title %}{{ title }}"},
		{"stray endif", "text {% endif %}"},
		{"nested if", "{% if a %}{% if b %}x{% endif %}{% endif %}"},
		{"unknown directive", "{% for x %}y{% endfor %}"},
		{"empty condition", "{% if %}x{% endif %}"},
		{"three terms", "{% if a and b and c %}x{% endif %}"},
		{"bad negation keyword", "{% if no a %}x{% endif %}"},
		{"invalid variable name", "{{ 9lives }}"},
		{"spaces in variable name", "{{ two words }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := directive.Parse(tt.text)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateSyntax),
				"expected TEMPLATE_SYNTAX, got %v", err)
		})
	}
}

func TestVariables(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "no directives",
			text: "plain text",
			want: nil,
		},
		{
			name: "interpolations in order",
			text: "{{ b }} then {{ a }} then {{ b }}",
			want: []string{"b", "a"},
		},
		{
			name: "condition terms count as references",
			text: "{% if title and not footer %}{{ body }}{% endif %}",
			want: []string{"title", "footer", "body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := directive.Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, prog.Variables())
		})
	}
}

func TestSource(t *testing.T) {
	text := "{% if x %}{{ x }}{% endif %}"
	prog, err := directive.Parse(text)
	require.NoError(t, err)
	assert.Equal(t, text, prog.Source())
}
