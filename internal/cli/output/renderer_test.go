package output

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTest(mode OutputMode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want OutputMode
		ok   bool
	}{
		{"", ModeAuto, true},
		{"auto", ModeAuto, true},
		{"TEXT", ModeText, true},
		{"markdown", ModeMarkdown, true},
		{"md", ModeMarkdown, true},
		{" json ", ModeJSON, true},
		{"yaml", ModeAuto, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseMode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, Mode(tt.in))
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	r, _, _ := newTest(ModeAuto, true)
	assert.Equal(t, ModeText, r.EffectiveMode())

	r, _, _ = newTest(ModeAuto, false)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())

	r, _, _ = newTest(ModeJSON, true)
	assert.Equal(t, ModeJSON, r.EffectiveMode())
	assert.True(t, r.IsTTY())
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_MarkdownHasNoANSI(t *testing.T) {
	r, out, errOut := newTest(ModeMarkdown, false)
	r.Header(1, "Title")
	r.Success("done")
	r.Warning("careful")
	r.Muted("quiet")
	r.Println(r.Styles().Error.Render("styled"))
	r.Error("boom")

	assert.False(t, ansi.MatchString(out.String()), out.String())
	assert.Contains(t, out.String(), "# Title")
	assert.Contains(t, out.String(), "**done**")
	assert.Contains(t, out.String(), "_quiet_")
	assert.Contains(t, out.String(), "styled")
	assert.Contains(t, errOut.String(), "Error: boom")
}

func TestRenderer_TextNonTTYHasNoANSI(t *testing.T) {
	r, out, _ := newTest(ModeText, false)
	r.Header(2, "Section")
	r.Success("ok")
	assert.False(t, ansi.MatchString(out.String()))
	assert.Contains(t, out.String(), "Section")
	assert.Contains(t, out.String(), "✓ ok")
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTest(ModeJSON, false)
	require.NoError(t, r.JSON(map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", out.String())
}

func TestRenderer_Table(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		r, out, _ := newTest(ModeMarkdown, false)
		r.Table([]string{"ID", "Name"}, [][]string{{"LT10", "layout.select_modifiers"}})
		assert.Contains(t, out.String(), "| ID | Name |")
		assert.Contains(t, out.String(), "| LT10 | layout.select_modifiers |")
	})

	t.Run("text", func(t *testing.T) {
		r, out, _ := newTest(ModeText, true)
		r.Table([]string{"ID"}, [][]string{{"AL01"}})
		assert.Contains(t, out.String(), "AL01")
		assert.Contains(t, out.String(), "┌")
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Rules", FormatHeader(2, "Rules"))
	assert.Equal(t, "# Top", FormatHeader(0, "Top"))
	assert.Equal(t, "- **Files**: 3", FormatKeyValue("Files", "3"))
	assert.Equal(t, "```sql\nselect 1\n```", FormatCodeBlock("sql", "select 1\n"))
}
