package xmltree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_QualifiedNames(t *testing.T) {
	root, err := Parse(`<record xmlns="http://example.org/a" xmlns:b="http://example.org/b">
		<header status="deleted"><identifier>oai:x:1</identifier></header>
		<b:payload>hello</b:payload>
	</record>`)
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/a", root.Name.Space)
	assert.Equal(t, "record", root.Name.Local)

	header := root.Child("http://example.org/a", "header")
	require.NotNil(t, header)
	assert.Equal(t, "deleted", header.Attr("", "status"))
	assert.Equal(t, "oai:x:1", header.Child("http://example.org/a", "identifier").Text)

	payload := root.Child("http://example.org/b", "payload")
	require.NotNil(t, payload)
	assert.Equal(t, "hello", payload.Text)
}

func TestParse_SkipsProlog(t *testing.T) {
	root, err := Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!-- harvested -->
<root><child/></root>`)
	require.NoError(t, err)
	assert.Equal(t, "root", root.Name.Local)
	require.Len(t, root.Children, 1)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(`<open><unclosed></open>`)
	assert.Error(t, err)

	_, err = Parse(`not xml at all`)
	assert.Error(t, err)
}

func TestNode_ChildHelpers(t *testing.T) {
	root, err := Parse(`<r xmlns="ns1" xmlns:o="ns2">
		<item>first</item>
		<item>second</item>
		<o:item>other</o:item>
	</r>`)
	require.NoError(t, err)

	items := root.ChildrenOf("ns1", "item")
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].Text)
	assert.Equal(t, "second", items[1].Text)

	assert.Equal(t, "first", root.ChildAnyNS("item").Text)
	assert.Nil(t, root.Child("ns1", "missing"))
	assert.Equal(t, "", root.Attr("", "missing"))
}

func TestParse_TrimsWhitespaceText(t *testing.T) {
	root, err := Parse("<a>\n\t  padded value \n</a>")
	require.NoError(t, err)
	assert.Equal(t, "padded value", root.Text)
}
