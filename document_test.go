package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/moznion-helium/domcore"
)

type recordingSink struct {
	childListCalls []string
	attrCalls      []string
	charDataCalls  []string
}

func (r *recordingSink) OnChildListMutation(target *dom.Node, added, removed []*dom.Node, prevSibling, nextSibling *dom.Node) {
	r.childListCalls = append(r.childListCalls, target.NodeType().String())
}

func (r *recordingSink) OnAttributeMutation(target *dom.Node, namespaceURI, localName, oldValue, newValue string) {
	r.attrCalls = append(r.attrCalls, localName)
}

func (r *recordingSink) OnCharacterDataMutation(target *dom.Node, oldValue, newValue string) {
	r.charDataCalls = append(r.charDataCalls, newValue)
}

func TestDocumentElementAndDoctype(t *testing.T) {
	doc := dom.NewDocument()
	assert.Nil(t, doc.DocumentElement())
	assert.Nil(t, doc.Doctype())

	dt := doc.CreateDocumentType("html", "", "")
	_, err := dom.AppendChild(doc.AsNode(), dt.AsNode())
	require.NoError(t, err)

	root := doc.CreateElement("html")
	_, err = dom.AppendChild(doc.AsNode(), root.AsNode())
	require.NoError(t, err)

	assert.Equal(t, root.AsNode(), doc.DocumentElement().AsNode())
	assert.Equal(t, dt.AsNode(), doc.Doctype().AsNode())
}

func TestLiveNodeCountTracksCreationAndRelease(t *testing.T) {
	doc := dom.NewDocument()
	base := doc.LiveNodeCount()
	assert.Equal(t, int64(1), base)

	el := doc.CreateElement("div")
	assert.Equal(t, base+1, doc.LiveNodeCount())

	_, err := dom.AppendChild(doc.AsNode(), el.AsNode())
	require.NoError(t, err)

	_, err = dom.RemoveChild(doc.AsNode(), el.AsNode())
	require.NoError(t, err)
	assert.Equal(t, base+1, doc.LiveNodeCount())
}

func TestMutationSinkReceivesChildListAndAttributeEvents(t *testing.T) {
	doc := dom.NewDocument()
	sink := &recordingSink{}
	doc.SetMutationSink(sink)

	el := doc.CreateElement("div")
	_, err := dom.AppendChild(doc.AsNode(), el.AsNode())
	require.NoError(t, err)
	require.NoError(t, el.SetAttribute("id", "x"))

	assert.NotEmpty(t, sink.childListCalls)
	assert.Contains(t, sink.attrCalls, "id")
}

func TestMutationSinkCharacterDataMutation(t *testing.T) {
	doc := dom.NewDocument()
	sink := &recordingSink{}
	doc.SetMutationSink(sink)

	text := doc.CreateTextNode("a")
	text.SetData("b")

	assert.Contains(t, sink.charDataCalls, "b")
}

func TestCreateElementNSPreservesPrefixAndNamespace(t *testing.T) {
	doc := dom.NewDocument()
	el := doc.CreateElementNS("http://www.w3.org/2000/svg", "svg", "rect")

	assert.Equal(t, "rect", el.LocalName())
	assert.Equal(t, "svg", el.Prefix())
	assert.Equal(t, "http://www.w3.org/2000/svg", el.NamespaceURI())
}
