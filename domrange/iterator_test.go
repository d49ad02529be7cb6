package domrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/moznion-helium/domcore"
	"github.com/moznion-helium/domcore/domrange"
)

func TestNodeIteratorWalksInDocumentOrder(t *testing.T) {
	_, root, b, i, u := buildParagraph(t)

	it := domrange.NewNodeIterator(root.AsNode(), domrange.ShowAll, nil)

	var seen []*dom.Node
	for n := it.NextNode(); n != nil; n = it.NextNode() {
		seen = append(seen, n)
	}

	require.Len(t, seen, 4)
	assert.Equal(t, root.AsNode(), seen[0])
	assert.Equal(t, b.AsNode(), seen[1])
	assert.Equal(t, i.AsNode(), seen[2])
	assert.Equal(t, u.AsNode(), seen[3])
}

func TestNodeIteratorFiltersByWhatToShow(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("p")
	_, err := dom.AppendChild(doc.AsNode(), root.AsNode())
	require.NoError(t, err)
	text := doc.CreateTextNode("hi")
	_, err = dom.AppendChild(root.AsNode(), text.AsNode())
	require.NoError(t, err)
	el := doc.CreateElement("span")
	_, err = dom.AppendChild(root.AsNode(), el.AsNode())
	require.NoError(t, err)

	it := domrange.NewNodeIterator(root.AsNode(), domrange.ShowText, nil)

	n := it.NextNode()
	require.NotNil(t, n)
	assert.Equal(t, text.AsNode(), n)
	assert.Nil(t, it.NextNode())
}

func TestNodeIteratorCustomFilterRejectsAndSkipsEquivalently(t *testing.T) {
	_, root, b, i, u := buildParagraph(t)

	filter := func(n *dom.Node) domrange.FilterResult {
		if n == i.AsNode() {
			return domrange.FilterReject
		}
		return domrange.FilterAccept
	}
	it := domrange.NewNodeIterator(root.AsNode(), domrange.ShowElement, filter)

	var seen []*dom.Node
	for n := it.NextNode(); n != nil; n = it.NextNode() {
		seen = append(seen, n)
	}

	assert.Equal(t, []*dom.Node{root.AsNode(), b.AsNode(), u.AsNode()}, seen)
}

func TestNodeIteratorPreviousNodeReversesTraversal(t *testing.T) {
	_, root, b, i, _ := buildParagraph(t)

	it := domrange.NewNodeIterator(root.AsNode(), domrange.ShowAll, nil)

	require.Equal(t, root.AsNode(), it.NextNode())
	require.Equal(t, b.AsNode(), it.NextNode())
	require.Equal(t, i.AsNode(), it.NextNode())

	assert.Equal(t, i.AsNode(), it.PreviousNode())
	assert.Equal(t, b.AsNode(), it.PreviousNode())
}

func TestNodeIteratorRootAndReferenceNode(t *testing.T) {
	_, root, b, _, _ := buildParagraph(t)

	it := domrange.NewNodeIterator(root.AsNode(), domrange.ShowAll, nil)
	assert.Equal(t, root.AsNode(), it.Root())

	it.NextNode()
	it.NextNode()
	ref, after := it.ReferenceNode()
	assert.Equal(t, b.AsNode(), ref)
	assert.True(t, after)

	it.Detach()
}
