package domrange_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/moznion-helium/domcore"
	"github.com/moznion-helium/domcore/domrange"
)

func buildParagraph(t *testing.T) (doc *dom.Document, root *dom.Element, b, i, u *dom.Element) {
	t.Helper()
	doc = dom.NewDocument()
	root = doc.CreateElement("p")
	_, err := dom.AppendChild(doc.AsNode(), root.AsNode())
	require.NoError(t, err)

	b = doc.CreateElement("b")
	i = doc.CreateElement("i")
	u = doc.CreateElement("u")
	_, err = dom.AppendChild(root.AsNode(), b.AsNode())
	require.NoError(t, err)
	_, err = dom.AppendChild(root.AsNode(), i.AsNode())
	require.NoError(t, err)
	_, err = dom.AppendChild(root.AsNode(), u.AsNode())
	require.NoError(t, err)
	return
}

func TestRangeSelectNodeContents(t *testing.T) {
	_, root, _, _, _ := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	r.SelectNodeContents(root.AsNode())

	assert.Equal(t, root.AsNode(), r.StartContainer())
	assert.Equal(t, 0, r.StartOffset())
	assert.Equal(t, 3, r.EndOffset())
	assert.False(t, r.Collapsed())
}

func TestRangeCollapse(t *testing.T) {
	_, root, _, _, _ := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	r.SelectNodeContents(root.AsNode())
	r.Collapse(false)

	assert.True(t, r.Collapsed())
	assert.Equal(t, 0, r.StartOffset())
}

func TestRangeSelectNode(t *testing.T) {
	_, root, b, _, _ := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SelectNode(b.AsNode()))

	assert.Equal(t, root.AsNode(), r.StartContainer())
	assert.Equal(t, 0, r.StartOffset())
	assert.Equal(t, 1, r.EndOffset())
}

func TestSetStartPastEndCollapsesEnd(t *testing.T) {
	_, root, _, _, _ := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(root.AsNode(), 0))
	require.NoError(t, r.SetEnd(root.AsNode(), 1))

	require.NoError(t, r.SetStart(root.AsNode(), 2))
	assert.Equal(t, 2, r.EndOffset())
}

func TestCompareBoundaryPoints(t *testing.T) {
	_, root, _, _, _ := buildParagraph(t)

	r1 := domrange.NewRange(root.AsNode())
	require.NoError(t, r1.SetStart(root.AsNode(), 0))
	require.NoError(t, r1.SetEnd(root.AsNode(), 1))

	r2 := domrange.NewRange(root.AsNode())
	require.NoError(t, r2.SetStart(root.AsNode(), 1))
	require.NoError(t, r2.SetEnd(root.AsNode(), 2))

	cmp, err := r1.CompareBoundaryPoints(2, r2) // END_TO_END
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
}

func TestDeleteContentsRemovesSelectedNodes(t *testing.T) {
	_, root, b, i, u := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(root.AsNode(), 0))
	require.NoError(t, r.SetEnd(root.AsNode(), 2))

	require.NoError(t, r.DeleteContents())

	assert.Nil(t, b.AsNode().ParentNode())
	assert.Nil(t, i.AsNode().ParentNode())
	assert.Equal(t, u.AsNode(), root.AsNode().FirstChild())
	assert.True(t, r.Collapsed())
}

func TestExtractContentsMovesNodesIntoFragment(t *testing.T) {
	_, root, b, i, _ := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(root.AsNode(), 0))
	require.NoError(t, r.SetEnd(root.AsNode(), 2))

	frag, err := r.ExtractContents()
	require.NoError(t, err)

	assert.Equal(t, b.AsNode(), frag.AsNode().FirstChild())
	assert.Equal(t, i.AsNode(), frag.AsNode().LastChild())
	assert.Equal(t, frag.AsNode(), b.AsNode().ParentNode())
}

func TestCloneContentsLeavesOriginalIntact(t *testing.T) {
	_, root, b, _, _ := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(root.AsNode(), 0))
	require.NoError(t, r.SetEnd(root.AsNode(), 1))

	frag, err := r.CloneContents()
	require.NoError(t, err)

	require.NotNil(t, frag.AsNode().FirstChild())
	assert.NotEqual(t, b.AsNode(), frag.AsNode().FirstChild())
	assert.Equal(t, root.AsNode(), b.AsNode().ParentNode())
}

func TestRangeStringOverTextNodes(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("p")
	_, err := dom.AppendChild(doc.AsNode(), root.AsNode())
	require.NoError(t, err)
	text := doc.CreateTextNode("hello world")
	_, err = dom.AppendChild(root.AsNode(), text.AsNode())
	require.NoError(t, err)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(text.AsNode(), 0))
	require.NoError(t, r.SetEnd(text.AsNode(), 5))

	assert.Equal(t, "hello", r.String())
}

func TestInsertNodeSplitsTextAtOffset(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("p")
	_, err := dom.AppendChild(doc.AsNode(), root.AsNode())
	require.NoError(t, err)
	text := doc.CreateTextNode("helloworld")
	_, err = dom.AppendChild(root.AsNode(), text.AsNode())
	require.NoError(t, err)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(text.AsNode(), 5))
	require.NoError(t, r.SetEnd(text.AsNode(), 5))

	marker := doc.CreateElement("marker")
	require.NoError(t, r.InsertNode(marker.AsNode()))

	assert.Equal(t, marker.AsNode(), text.AsNode().NextSibling())
}

func TestSurroundContentsWrapsSelection(t *testing.T) {
	_, root, b, i, u := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(root.AsNode(), 0))
	require.NoError(t, r.SetEnd(root.AsNode(), 2))

	doc := root.AsNode().OwnerDocument()
	wrapper := doc.CreateElement("wrapper")
	require.NoError(t, r.SurroundContents(wrapper.AsNode()))

	assert.Equal(t, wrapper.AsNode(), b.AsNode().ParentNode())
	assert.Equal(t, wrapper.AsNode(), i.AsNode().ParentNode())
	assert.Equal(t, root.AsNode(), u.AsNode().ParentNode())
}

func TestCloneRangeIsIndependent(t *testing.T) {
	_, root, _, _, _ := buildParagraph(t)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(root.AsNode(), 0))
	require.NoError(t, r.SetEnd(root.AsNode(), 1))

	clone := r.CloneRange()
	require.NoError(t, r.SetEnd(root.AsNode(), 2))

	assert.Equal(t, 1, clone.EndOffset())
	assert.Equal(t, 2, r.EndOffset())
}

func TestExtractContentsSplitsAcrossSiblingTextNodes(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("p")
	_, err := dom.AppendChild(doc.AsNode(), root.AsNode())
	require.NoError(t, err)

	first := doc.CreateTextNode("hello")
	second := doc.CreateTextNode("world")
	_, err = dom.AppendChild(root.AsNode(), first.AsNode())
	require.NoError(t, err)
	_, err = dom.AppendChild(root.AsNode(), second.AsNode())
	require.NoError(t, err)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(first.AsNode(), 2))
	require.NoError(t, r.SetEnd(second.AsNode(), 3))

	frag, err := r.ExtractContents()
	require.NoError(t, err)

	assert.Equal(t, "he", dom.TextContent(first.AsNode()))
	assert.Equal(t, "ld", dom.TextContent(second.AsNode()))

	var collected []string
	for c := frag.AsNode().FirstChild(); c != nil; c = c.NextSibling() {
		collected = append(collected, dom.TextContent(c))
	}
	require.Len(t, collected, 2)
	assert.Equal(t, "llo", collected[0])
	assert.Equal(t, "wor", collected[1])
}

func TestCloneContentsSplitsAcrossSiblingTextNodesWithoutMutating(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("p")
	_, err := dom.AppendChild(doc.AsNode(), root.AsNode())
	require.NoError(t, err)

	first := doc.CreateTextNode("hello")
	second := doc.CreateTextNode("world")
	_, err = dom.AppendChild(root.AsNode(), first.AsNode())
	require.NoError(t, err)
	_, err = dom.AppendChild(root.AsNode(), second.AsNode())
	require.NoError(t, err)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(first.AsNode(), 2))
	require.NoError(t, r.SetEnd(second.AsNode(), 3))

	frag, err := r.CloneContents()
	require.NoError(t, err)

	var collected []string
	for c := frag.AsNode().FirstChild(); c != nil; c = c.NextSibling() {
		collected = append(collected, dom.TextContent(c))
	}
	require.Len(t, collected, 2)
	assert.Equal(t, "llo", collected[0])
	assert.Equal(t, "wor", collected[1])

	assert.Equal(t, "hello", dom.TextContent(first.AsNode()))
	assert.Equal(t, "world", dom.TextContent(second.AsNode()))
}

func TestSurroundContentsRejectsPartiallyContainedElement(t *testing.T) {
	_, root, b, i, _ := buildParagraph(t)

	text := root.AsNode().OwnerDocument().CreateTextNode("middle")
	_, err := dom.AppendChild(b.AsNode(), text.AsNode())
	require.NoError(t, err)

	r := domrange.NewRange(root.AsNode())
	require.NoError(t, r.SetStart(text.AsNode(), 2))
	require.NoError(t, r.SetEnd(i.AsNode(), 0))

	doc := root.AsNode().OwnerDocument()
	wrapper := doc.CreateElement("wrapper")
	err = r.SurroundContents(wrapper.AsNode())
	require.Error(t, err)
	assert.ErrorIs(t, err, &dom.DOMError{Name: dom.InvalidStateError})
}
