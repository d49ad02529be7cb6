package dom

import (
	"errors"

	"github.com/moznion-helium/domcore/internal/debug"
)

// TreeBuilder drives a *Document from a stream of structural
// callbacks — StartElement/EndElement/Characters/Comment/
// ProcessingInstruction — the way a parser (not part of this engine;
// see spec.md §1's "parsing is out of scope" Non-goal) would feed
// tokens into a tree. It keeps a single "current node" cursor rather
// than an explicit stack, since the tree itself (via ParentNode) is the
// stack.
type TreeBuilder struct {
	doc  *Document
	node *Node
}

// NewTreeBuilder creates a TreeBuilder that will append to doc,
// starting at doc's own node.
func NewTreeBuilder(doc *Document) *TreeBuilder {
	return &TreeBuilder{doc: doc, node: doc.AsNode()}
}

// Attribute is one (name, value) pair passed to StartElement, in the
// order a host parser observed them.
type Attribute struct {
	Prefix       string
	LocalName    string
	NamespaceURI string
	Value        string
}

// StartElement creates an element and descends into it: subsequent
// callbacks target the new element until the matching EndElement.
func (b *TreeBuilder) StartElement(localName, prefix, namespaceURI string, attrs []Attribute) (*Element, error) {
	if debug.Enabled {
		g := debug.IPrintf("START builder.StartElement: %s", localName)
		defer g.IRelease("END builder.StartElement")
	}
	el := b.doc.CreateElementNS(namespaceURI, prefix, localName)
	for _, a := range attrs {
		if err := el.SetAttributeNS(a.NamespaceURI, a.Prefix, a.LocalName, a.Value); err != nil {
			return nil, err
		}
	}
	if _, err := AppendChild(b.node, el.AsNode()); err != nil {
		return nil, err
	}
	b.node = el.AsNode()
	return el, nil
}

// EndElement closes the current element, moving the cursor back up to
// its parent. localName/prefix/namespaceURI are checked against the
// current node as a well-formedness sanity check, matching the
// teacher's habit of validating start/end tag correspondence.
func (b *TreeBuilder) EndElement(localName, prefix, namespaceURI string) error {
	if debug.Enabled {
		g := debug.IPrintf("START builder.EndElement: %s", localName)
		defer g.IRelease("END builder.EndElement")
	}
	if b.node.NodeType() != ElementNode {
		return errors.New("dom: EndElement with no open element")
	}
	el := (*Element)(b.node)
	if el.LocalName() != localName || el.Prefix() != prefix || el.NamespaceURI() != namespaceURI {
		return errors.New("dom: mismatched end tag for " + localName)
	}
	b.node = b.node.ParentNode()
	if b.node == nil {
		b.node = b.doc.AsNode()
	}
	return nil
}

// Characters appends a Text node holding data as the last child of the
// current node.
func (b *TreeBuilder) Characters(data string) error {
	if b.node == nil {
		return errors.New("dom: text content placed in wrong location")
	}
	t := b.doc.CreateTextNode(data)
	_, err := AppendChild(b.node, t.AsNode())
	return err
}

// Comment appends a Comment node as the last child of the current node.
func (b *TreeBuilder) Comment(data string) error {
	if b.node == nil {
		return errors.New("dom: comment placed in wrong location")
	}
	c := b.doc.CreateComment(data)
	_, err := AppendChild(b.node, c.AsNode())
	return err
}

// CDATA appends a CDATASection node as the last child of the current
// node.
func (b *TreeBuilder) CDATA(data string) error {
	if b.node == nil {
		return errors.New("dom: CDATA placed in wrong location")
	}
	c := b.doc.CreateCDATASection(data)
	_, err := AppendChild(b.node, c.AsNode())
	return err
}

// ProcessingInstruction appends a ProcessingInstruction node as the last
// child of the current node (or the document itself, if no element is
// open yet).
func (b *TreeBuilder) ProcessingInstruction(target, data string) error {
	if debug.Enabled {
		debug.Printf("builder.ProcessingInstruction: %s", target)
	}
	pi := b.doc.CreateProcessingInstruction(target, data)
	parent := b.node
	if parent == nil {
		parent = b.doc.AsNode()
	}
	_, err := AppendChild(parent, pi.AsNode())
	return err
}

// Doctype appends a DocumentType node as a child of the document.
func (b *TreeBuilder) Doctype(name, publicID, systemID string) error {
	dt := b.doc.CreateDocumentType(name, publicID, systemID)
	_, err := AppendChild(b.doc.AsNode(), dt.AsNode())
	return err
}

// Document returns the document being built.
func (b *TreeBuilder) Document() *Document { return b.doc }
