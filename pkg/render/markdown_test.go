package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/printerm/printerm/pkg/render"
	"github.com/printerm/printerm/pkg/templates"
)

func bold() templates.StyleSet {
	return templates.StyleSet{Bold: templates.Bool(true)}
}

func underline() templates.StyleSet {
	return templates.StyleSet{Underline: templates.Bool(true)}
}

func enlarged() templates.StyleSet {
	return templates.StyleSet{
		Bold:         templates.Bool(true),
		DoubleWidth:  templates.Bool(true),
		DoubleHeight: templates.Bool(true),
	}
}

func TestParseMarkdown(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []render.Span
	}{
		{
			name: "empty text",
			text: "",
			want: nil,
		},
		{
			name: "newlines only",
			text: "\n\n",
			want: nil,
		},
		{
			name: "plain line",
			text: "Nice to meet you.",
			want: []render.Span{{Text: "Nice to meet you."}},
		},
		{
			name: "trailing newlines dropped",
			text: "hello\n\n",
			want: []render.Span{{Text: "hello"}},
		},
		{
			name: "bold span",
			text: "**Thank you**",
			want: []render.Span{{Text: "Thank you", Overrides: bold()}},
		},
		{
			name: "greeting with interior newline",
			text: "**Hello there**, Alice!\nNice to meet you.\n",
			want: []render.Span{
				{Text: "Hello there", Overrides: bold()},
				{Text: ", Alice!"},
				{Text: "\n"},
				{Text: "Nice to meet you."},
			},
		},
		{
			name: "emphasis with asterisk",
			text: "a *b* c",
			want: []render.Span{
				{Text: "a "},
				{Text: "b", Overrides: underline()},
				{Text: " c"},
			},
		},
		{
			name: "emphasis with underscore",
			text: "a _b_ c",
			want: []render.Span{
				{Text: "a "},
				{Text: "b", Overrides: underline()},
				{Text: " c"},
			},
		},
		{
			name: "heading line",
			text: "# Big News",
			want: []render.Span{{Text: "Big News", Overrides: enlarged()}},
		},
		{
			name: "deep heading renders the same",
			text: "### Also Big",
			want: []render.Span{{Text: "Also Big", Overrides: enlarged()}},
		},
		{
			name: "hash without space is literal",
			text: "#hashtag",
			want: []render.Span{{Text: "#hashtag"}},
		},
		{
			name: "heading between lines",
			text: "before\n# Title\nafter",
			want: []render.Span{
				{Text: "before"},
				{Text: "\n"},
				{Text: "Title", Overrides: enlarged()},
				{Text: "\n"},
				{Text: "after"},
			},
		},
		{
			name: "blank interior line keeps separators",
			text: "a\n\nb",
			want: []render.Span{
				{Text: "a"},
				{Text: "\n"},
				{Text: "\n"},
				{Text: "b"},
			},
		},
		{
			name: "unclosed bold is literal",
			text: "**oops",
			want: []render.Span{{Text: "**oops"}},
		},
		{
			name: "unclosed emphasis is literal",
			text: "5 * 3",
			want: []render.Span{{Text: "5 * 3"}},
		},
		{
			name: "empty markers are literal",
			text: "****",
			want: []render.Span{{Text: "****"}},
		},
		{
			name: "utf-8 passes through",
			text: "Zażółć **gęślą** jaźń",
			want: []render.Span{
				{Text: "Zażółć "},
				{Text: "gęślą", Overrides: bold()},
				{Text: " jaźń"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.ParseMarkdown(tt.text))
		})
	}
}

func TestParseMarkdownIdempotentOnPlainText(t *testing.T) {
	texts := []string{
		"just some text",
		"two\nlines here",
		"ends with newline\n",
	}
	for _, text := range texts {
		first := render.ParseMarkdown(text)
		var sb strings.Builder
		for _, span := range first {
			assert.True(t, span.Overrides.IsZero(), "plain text must not gain overrides")
			sb.WriteString(span.Text)
		}
		assert.Equal(t, first, render.ParseMarkdown(sb.String()))
	}
}
