package dsl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenjing1294/AvaloniaEdit/dsl"
)

const sampleScript = `
doc Demo v1 {
  resources {
    font Body {
      src: "embed:lmsans10-regular"
    }

    color Accent = #0F62FE
  }

  // first paragraph
  paragraph width 400px tab 48px {
    text Body size 16px color #333 background Accent { "Hello, ${user.name}!\t" }
    tab
    eol crlf
    object Logo length 5 width 30px height 20px color Accent
    text Body { "trailing   " }
  }

  paragraph {
    text Body { "a" "b" }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleScript)
	require.NoError(t, err)

	assert.Equal(t, "Demo", doc.Name)
	assert.Equal(t, "v1", doc.Version)
	require.Len(t, doc.Sections, 3)
	assert.Equal(t, "resources", doc.Sections[0].Kind())
	assert.Equal(t, "paragraph", doc.Sections[1].Kind())

	res := doc.Sections[0].Resources
	require.NotNil(t, res)
	require.Len(t, res.Block.Statements, 2)
	font := res.Block.Statements[0].Command
	require.NotNil(t, font)
	assert.Equal(t, "font", font.Name)
	require.NotNil(t, font.Block)
	src := font.Block.Statements[0].Assignment
	require.NotNil(t, src)
	assert.Equal(t, "src", src.Key)
	assert.Equal(t, "embed:lmsans10-regular", src.Value.Text())

	color := res.Block.Statements[1].Command
	require.NotNil(t, color)
	require.Len(t, color.Args, 3)
	assert.Equal(t, "Accent", color.Args[0].Value)
	assert.Equal(t, "#0F62FE", color.Args[2].Value)
	assert.Equal(t, "Color", color.Args[2].Type)
}

func TestParseParagraphStatements(t *testing.T) {
	doc, err := dsl.ParseString(sampleScript)
	require.NoError(t, err)

	paras := doc.Paragraphs()
	require.Len(t, paras, 2)

	first := paras[0]
	require.Len(t, first.Params, 4)
	assert.Equal(t, "width", first.Params[0].Value)
	assert.Equal(t, "400px", first.Params[1].Value)
	assert.Equal(t, "Number", first.Params[1].Type)

	stmts := first.Block.Statements
	require.Len(t, stmts, 5)

	text := stmts[0].Command
	require.NotNil(t, text)
	assert.Equal(t, "text", text.Name)
	assert.Equal(t, "Body", text.Args[0].Value)
	require.NotNil(t, text.Block)
	literal := string(text.Block.Statements[0].Text.Value)
	assert.True(t, strings.HasSuffix(literal, "\t"), "escape sequences are unquoted: %q", literal)
	assert.Contains(t, literal, "${user.name}")

	assert.Equal(t, "tab", stmts[1].Command.Name)
	assert.Empty(t, stmts[1].Command.Args)

	eol := stmts[2].Command
	assert.Equal(t, "eol", eol.Name)
	require.Len(t, eol.Args, 1)
	assert.Equal(t, "crlf", eol.Args[0].Value)

	obj := stmts[3].Command
	assert.Equal(t, "object", obj.Name)
	values := make([]string, 0, len(obj.Args))
	for _, a := range obj.Args {
		values = append(values, a.Value)
	}
	assert.Equal(t, "Logo length 5 width 30px height 20px color Accent", strings.Join(values, " "))

	second := paras[1]
	assert.Empty(t, second.Params)
	require.Len(t, second.Block.Statements, 1)
	assert.Len(t, second.Block.Statements[0].Command.Block.Statements, 2)
}

func TestParseRejectsMissingHeader(t *testing.T) {
	_, err := dsl.ParseString(`paragraph { text Body { "x" } }`)
	assert.Error(t, err)
}
