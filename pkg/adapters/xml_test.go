package adapters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rpath/pkg/expr"
	"github.com/roach88/rpath/pkg/xmltree"
)

const libraryXML = `<library xmlns:x="urn:x">
  <book id="1" lang="en"><title>Dune</title></book>
  <book id="2" x:lang="fr"><title>Emma</title></book>
  <magazine id="3"/>
</library>`

func parseLibrary(t *testing.T) *xmltree.Document {
	t.Helper()
	doc, err := xmltree.ParseString(libraryXML)
	require.NoError(t, err)
	return doc
}

func TestXML_AdaptsTo(t *testing.T) {
	doc := parseLibrary(t)

	assert.True(t, XML{}.AdaptsTo(doc))
	assert.True(t, XML{}.AdaptsTo(doc.Root()))
	assert.False(t, XML{}.AdaptsTo("<library/>"))
}

func TestXML_Root(t *testing.T) {
	doc := parseLibrary(t)

	assert.Same(t, doc.Node(), XML{}.Root(doc))
	assert.Same(t, doc.Root(), XML{}.Root(doc.Root()))
	assert.Nil(t, XML{}.Root(42))
}

func TestXML_Expressions(t *testing.T) {
	doc := parseLibrary(t)
	root := expr.NewRoot()
	books := root.Child("library").Child("book")

	testCases := []struct {
		name string
		expr expr.Expression
		want any
	}{
		{"empty conditions match every vertex", root.Adjacent().Where(expr.Conditions{}).First().Child("magazine").Attr("id"), "3"},
		{"first title", books.Child("title").Content(), "Dune"},
		{"second book id", books.At(1).Attr("id"), "2"},
		{"namespaced attribute by local name", books.At(1).Attr("lang"), "fr"},
		{"where", books.Where(expr.Conditions{"id": "2"}).Child("title").Content(), "Emma"},
		{"no text", books.Content(), nil},
		{"missing attribute", books.Attr("isbn"), nil},
		{"missing element", root.Child("library").Child("dvd").Attr("id"), nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.expr.Eval(doc, XML{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestXML_Attributes(t *testing.T) {
	doc := parseLibrary(t)

	attrs, err := XML{}.Attributes(doc.Root().Elements("book")[1])
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": "2", "lang": "fr"}, attrs)

	attrs, err = XML{}.Attributes(doc.Root())
	require.NoError(t, err)
	assert.Empty(t, attrs, "namespace declarations are not attributes")
}

func TestXML_BadVertex(t *testing.T) {
	_, err := XML{}.Adjacent("book")
	assert.Error(t, err)
}
