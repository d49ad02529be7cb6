package dom

import (
	"github.com/moznion-helium/domcore/internal/attrstore"
	"github.com/moznion-helium/domcore/internal/strpool"
	"github.com/moznion-helium/domcore/selector"
)

// MutationSink receives structural and value-change notifications as
// they happen, per spec.md §4.12. Delivery is synchronous and
// re-entrant: a sink that itself mutates the tree will see its own
// mutations recursively. Batching, coalescing, and microtask-queue
// semantics are the host's problem; a Document has at most one sink.
type MutationSink interface {
	OnChildListMutation(target *Node, added, removed []*Node, prevSibling, nextSibling *Node)
	OnAttributeMutation(target *Node, namespaceURI, localName, oldValue, newValue string)
	OnCharacterDataMutation(target *Node, oldValue, newValue string)
}

// Document is the root of a node tree and the document-scoped owner of
// the string pool, live indices, and selector cache. It is itself a
// Node (NodeType() == DocumentNode); Document wraps that Node the same
// way Element and Text do, rather than embedding, so that the package's
// public surface never lets a caller construct a Document missing its
// side tables.
type Document struct {
	node *Node
}

// NewDocument creates an empty Document with one external reference
// already held by the caller (spec.md §3: the host is the document's
// sole external owner until it calls Release).
func NewDocument() *Document {
	n := &Node{
		nodeType: DocumentNode,
		refState: 1,
		docu: &documentData{
			pool:       strpool.New(),
			ids:        make(map[string]*Node),
			tagIndex:   make(map[string]*liveCollection),
			classIndex: make(map[string]*liveCollection),
			liveNodes:  1,
		},
	}
	n.docu.selectorCache = selector.NewCache(selectorCacheSize)
	d := &Document{node: n}
	n.ownerDoc = d
	return d
}

// AsNode returns the underlying Node, for APIs that operate on Node
// generically (traversal, mutation, range boundary points).
func (d *Document) AsNode() *Node { return d.node }

// Release drops the caller's external reference to the document node.
func (d *Document) Release() { d.node.release() }

// LiveNodeCount reports the number of nodes in this document's ownership
// graph that have not yet been destroyed, exposed so hosts (and tests)
// can assert the reference-counting invariants of spec.md §8.
func (d *Document) LiveNodeCount() int64 { return d.node.docu.liveNodes }

// SetMutationSink installs sink as the document's sole mutation
// observer, replacing any previous one. Pass nil to stop observing.
func (d *Document) SetMutationSink(sink MutationSink) { d.node.docu.mutationSink = sink }

func (d *Document) allocID() uint64 {
	d.node.docu.nextNodeID++
	return d.node.docu.nextNodeID
}

func (d *Document) bumpGeneration() { d.node.docu.generation++ }

func (d *Document) newNode(nt NodeType) *Node {
	n := &Node{
		id:       d.allocID(),
		nodeType: nt,
		ownerDoc: d,
		refState: 1,
	}
	d.node.docu.liveNodes++
	return n
}

// CreateElement creates an Element with the HTML namespace and no
// prefix, per spec.md §4.1's default-namespace convention for the
// common case.
func (d *Document) CreateElement(localName string) *Element {
	return d.CreateElementNS(strpool.HTMLNamespace, "", localName)
}

// CreateElementNS creates an Element with an explicit, possibly empty,
// namespace URI and prefix. An empty namespaceURI means the null
// namespace, not strpool.HTMLNamespace.
func (d *Document) CreateElementNS(namespaceURI, prefix, localName string) *Element {
	pool := d.node.docu.pool
	n := d.newNode(ElementNode)
	n.name = pool.Intern(qualifiedName(prefix, localName))
	n.elem = &elementData{
		localName:    pool.Intern(localName),
		namespaceURI: pool.Intern(namespaceURI),
		hasNamespace: namespaceURI != "",
		prefix:       pool.Intern(prefix),
		attrs:        attrstore.New(),
		classBloom:   nil,
	}
	return (*Element)(n)
}

func qualifiedName(prefix, localName string) string {
	if prefix == "" {
		return localName
	}
	return prefix + ":" + localName
}

// CreateTextNode creates a standalone Text node holding data.
func (d *Document) CreateTextNode(data string) *Text {
	n := d.newNode(TextNode)
	n.char = &charData{data: data}
	return (*Text)(n)
}

// CreateComment creates a standalone Comment node holding data.
func (d *Document) CreateComment(data string) *Comment {
	n := d.newNode(CommentNode)
	n.char = &charData{data: data}
	return (*Comment)(n)
}

// CreateCDATASection creates a standalone CDATASection node.
func (d *Document) CreateCDATASection(data string) *CDATASection {
	n := d.newNode(CDATASectionNode)
	n.char = &charData{data: data}
	return (*CDATASection)(n)
}

// CreateProcessingInstruction creates a standalone ProcessingInstruction
// node with the given target and data.
func (d *Document) CreateProcessingInstruction(target, data string) *ProcessingInstruction {
	n := d.newNode(ProcessingInstructionNode)
	n.char = &charData{target: d.node.docu.pool.Intern(target), data: data}
	return (*ProcessingInstruction)(n)
}

// CreateDocumentFragment creates an empty DocumentFragment.
func (d *Document) CreateDocumentFragment() *DocumentFragment {
	n := d.newNode(DocumentFragmentNode)
	return (*DocumentFragment)(n)
}

// CreateDocumentType creates a standalone DocumentType node. It is not
// attached to this document until inserted.
func (d *Document) CreateDocumentType(name, publicID, systemID string) *DocumentType {
	n := d.newNode(DocumentTypeNode)
	n.doctype = &doctypeData{name: name, publicID: publicID, systemID: systemID}
	return (*DocumentType)(n)
}

// CreateAttributeNS creates a standalone Attr node, not yet attached to
// any element.
func (d *Document) CreateAttributeNS(namespaceURI, prefix, localName string) *Attr {
	n := d.newNode(AttributeNode)
	pool := d.node.docu.pool
	n.name = pool.Intern(qualifiedName(prefix, localName))
	n.attrName = attrstore.Name{
		NamespaceURI: pool.Intern(namespaceURI),
		LocalName:    pool.Intern(localName),
		HasNamespace: namespaceURI != "",
	}
	return (*Attr)(n)
}

// GetElementByID returns the element with the given id attribute in
// this document's tree, or nil. The lookup is O(1) against the live id
// index maintained by the mutation engine.
func (d *Document) GetElementByID(id string) *Element {
	if n, ok := d.node.docu.ids[id]; ok && n.GetRootNode(false) == d.node {
		return (*Element)(n)
	}
	return nil
}

// DocumentElement returns the document's single root element child, or
// nil if none has been inserted yet.
func (d *Document) DocumentElement() *Element {
	if el := d.node.firstElementChild(); el != nil {
		return (*Element)(el)
	}
	return nil
}

// Doctype returns the document's DocumentType child, or nil.
func (d *Document) Doctype() *DocumentType {
	for c := d.node.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == DocumentTypeNode {
			return (*DocumentType)(c)
		}
	}
	return nil
}
