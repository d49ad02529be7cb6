package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/moznion-helium/domcore"
)

func TestCharacterDataMutators(t *testing.T) {
	doc := dom.NewDocument()
	text := doc.CreateTextNode("hello world")

	require.NoError(t, dom.InsertData(text.AsNode(), 5, ","))
	assert.Equal(t, "hello, world", text.Data())

	require.NoError(t, dom.DeleteData(text.AsNode(), 0, 6))
	assert.Equal(t, " world", text.Data())

	require.NoError(t, dom.ReplaceData(text.AsNode(), 1, 4, "earth"))
	assert.Equal(t, " earthd", text.Data())

	sub, err := dom.SubstringData(text.AsNode(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "earth", sub)
}

func TestSubstringDataOutOfRange(t *testing.T) {
	doc := dom.NewDocument()
	text := doc.CreateTextNode("hi")
	_, err := dom.SubstringData(text.AsNode(), 10, 1)
	require.Error(t, err)
}

func TestSplitText(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("root")
	_, _ = dom.AppendChild(doc.AsNode(), root.AsNode())

	text := doc.CreateTextNode("helloworld")
	_, _ = dom.AppendChild(root.AsNode(), text.AsNode())

	tail, err := text.SplitText(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", text.Data())
	assert.Equal(t, "world", tail.Data())
	assert.Equal(t, text.AsNode(), tail.AsNode().PreviousSibling())
}

func TestWholeText(t *testing.T) {
	doc := dom.NewDocument()
	root := doc.CreateElement("root")
	_, _ = dom.AppendChild(doc.AsNode(), root.AsNode())

	t1 := doc.CreateTextNode("foo")
	t2 := doc.CreateTextNode("bar")
	_, _ = dom.AppendChild(root.AsNode(), t1.AsNode())
	_, _ = dom.AppendChild(root.AsNode(), t2.AsNode())

	assert.Equal(t, "foobar", t1.WholeText())
	assert.Equal(t, "foobar", t2.WholeText())
}

func TestUTF16OffsetsAcrossSurrogatePairs(t *testing.T) {
	doc := dom.NewDocument()
	// U+1F600 (grinning face) is a surrogate pair in UTF-16: 2 code units.
	text := doc.CreateTextNode("a\U0001F600b")
	assert.Equal(t, 4, text.Length())

	sub, err := dom.SubstringData(text.AsNode(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", sub)
}
