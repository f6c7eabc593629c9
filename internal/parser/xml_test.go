package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/formatdrill/internal/errors"
	"github.com/mcncl/formatdrill/internal/models"
)

func TestParseXML_CompactMapping(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?>
<team id="7">
  <name>Kodmooz</name>
  <member>Ali</member>
  <member>Sara</member>
  <empty/>
</team>`

	v, err := ParseXML(input)
	require.NoError(t, err)

	assert.Equal(t, []string{XMLDeclarationKey, "team"}, v.Keys())

	decl := v.Get(XMLDeclarationKey).Get(XMLAttributesKey)
	assert.Equal(t, "1.0", decl.Get("version").Text())
	assert.Equal(t, "UTF-8", decl.Get("encoding").Text())

	team := v.Get("team")
	assert.Equal(t, []string{XMLAttributesKey, "name", "member", "empty"}, team.Keys())
	assert.Equal(t, "7", team.Get(XMLAttributesKey).Get("id").Text())
	assert.Equal(t, "Kodmooz", team.Get("name").Get(XMLTextKey).Text())

	members := team.Get("member")
	require.Equal(t, models.KindArray, members.Kind())
	assert.Equal(t, "Sara", members.Index(1).Get(XMLTextKey).Text())

	empty := team.Get("empty")
	assert.Equal(t, models.KindObject, empty.Kind())
	assert.Equal(t, 0, empty.Len())
}

func TestParseXML_CommentsInstructionsAndDoctype(t *testing.T) {
	input := `<!DOCTYPE note>
<?go-fmt mode="strict"?>
<!-- top -->
<note>hello &amp; bye</note>`

	v, err := ParseXML(input)
	require.NoError(t, err)

	assert.Equal(t, "note", v.Get(XMLDoctypeKey).Text())
	assert.Equal(t, `mode="strict"`, v.Get(XMLInstructionKey).Get("go-fmt").Text())
	assert.Equal(t, " top ", v.Get(XMLCommentKey).Text())
	assert.Equal(t, "hello & bye", v.Get("note").Get(XMLTextKey).Text())
}

func TestParseXML_CDataBecomesText(t *testing.T) {
	v, err := ParseXML(`<code><![CDATA[a < b]]></code>`)
	require.NoError(t, err)
	assert.Equal(t, "a < b", v.Get("code").Get(XMLTextKey).Text())
}

func TestParseXML_EmptyInput(t *testing.T) {
	v, err := ParseXML("")
	require.NoError(t, err)
	assert.Equal(t, models.KindObject, v.Kind())
	assert.Equal(t, 0, v.Len())
}

func TestParseXML_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"mismatched close tag", `<a><b></a></b>`},
		{"unclosed tag", `<a><b></b>`},
		{"text outside root", `hello <a/>`},
		{"unquoted attribute", `<a id=1></a>`},
		{"stray close tag", `</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseXML(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsSyntax(err), "got %v", err)
		})
	}
}
