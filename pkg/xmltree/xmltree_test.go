package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const library = `<?xml version="1.0"?>
<!-- catalogue -->
<library xmlns:x="urn:x">
  <book id="1" x:lang="en">
    <title>Dune</title>
  </book>
  <book id="2"><title>Emma</title> tail</book>
  <shelf/>
</library>`

func TestParse(t *testing.T) {
	doc, err := ParseString(library)
	require.NoError(t, err)

	node := doc.Node()
	assert.Equal(t, DocumentName, node.Name.Local)
	require.Len(t, node.Children, 1)
	assert.Same(t, doc.Root(), node.Children[0])

	root := doc.Root()
	assert.Equal(t, "library", root.Name.Local)
	assert.Same(t, node, root.Parent)
	assert.Len(t, root.Children, 3)

	books := root.Elements("book")
	require.Len(t, books, 2)

	id, ok := books[0].Attribute("id")
	assert.True(t, ok)
	assert.Equal(t, "1", id)

	lang, ok := books[0].Attribute("lang")
	assert.True(t, ok)
	assert.Equal(t, "en", lang)

	_, ok = books[0].Attribute("missing")
	assert.False(t, ok)

	assert.Equal(t, "Dune", books[0].Elements("title")[0].Text())
	assert.Equal(t, "", books[0].Text())
	assert.Equal(t, "tail", books[1].Text())
	assert.Empty(t, root.Elements("shelf")[0].Children)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", "no root element"},
		{"only comment", "<!-- nothing -->", "no root element"},
		{"unclosed", "<a><b></a>", "parse xml"},
		{"two roots", "<a/><b/>", "multiple root elements"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}
