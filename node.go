package dom

import (
	"strings"
	"sync/atomic"

	"github.com/moznion-helium/domcore/internal/attrstore"
	"github.com/moznion-helium/domcore/internal/bloom"
	"github.com/moznion-helium/domcore/internal/strpool"
	"github.com/moznion-helium/domcore/selector"
)

const hasParentBit uint32 = 1 << 31

// rareData is the lazily-allocated side table for uncommon per-node
// fields (spec.md §3 "Rare data"): event listeners, user data, slot
// assignment, and the shadow-root back pointer for host elements.
type rareData struct {
	listeners      map[string][]*listenerEntry
	userData       map[string]interface{}
	assignedSlot   *Node                    // for slottables: the <slot> this node is assigned to
	shadowRoot     *Node                    // for host elements: the attached ShadowRoot
	attrNodes      map[attrstore.Name]*Node // for elements: live Attr node identities
	manualAssigned []*Node                  // for <slot> elements in manual assignment mode
}

type elementData struct {
	localName    string
	namespaceURI string
	hasNamespace bool
	prefix       string
	attrs        *attrstore.Store
	classBloom   *bloom.Filter
}

type charData struct {
	data   string
	target string // ProcessingInstruction target; unused otherwise
}

type documentData struct {
	pool          *strpool.Pool
	ids           map[string]*Node
	tagIndex      map[string]*liveCollection
	classIndex    map[string]*liveCollection
	selectorCache *selector.Cache
	nextNodeID    uint64
	generation    uint64
	externalRefs  int32
	liveNodes     int64
	mutationSink  MutationSink
}

type doctypeData struct {
	name     string
	publicID string
	systemID string
}

type shadowRootData struct {
	mode           ShadowRootMode
	host           *Node
	slotAssignment SlotAssignmentMode
	delegatesFocus bool
	clonable       bool
	serializable   bool
}

// Node is the polymorphic base of every tree node: documents, elements,
// text, comments, document fragments, document types, shadow roots, and
// attributes. Kind-specific accessors live on the thin wrapper types
// (Element, Text, Comment, ...) defined alongside their component files;
// Node itself carries only what every kind shares.
type Node struct {
	id         uint64
	nodeType   NodeType
	flags      uint32
	generation uint32
	refState   uint32 // bit31: has-parent; bits0-30: external ref count

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node
	ownerDoc    *Document

	name string // interned node name: local/tag name, "#text", "#comment", ...

	elem    *elementData
	char    *charData
	docu    *documentData
	doctype *doctypeData
	shadow  *shadowRootData

	attrName  attrstore.Name // for AttributeNode
	attrValue string         // for AttributeNode
	attrOwner *Node          // owning element, for AttributeNode

	rare *rareData
}

func (n *Node) rareData() *rareData {
	if n.rare == nil {
		n.rare = &rareData{}
	}
	return n.rare
}

// NodeType returns the node's kind discriminator.
func (n *Node) NodeType() NodeType { return n.nodeType }

// NodeName dispatches to the per-kind naming rule.
func (n *Node) NodeName() string {
	switch n.nodeType {
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case CDATASectionNode:
		return "#cdata-section"
	case DocumentNode:
		return "#document"
	case DocumentFragmentNode:
		return "#document-fragment"
	case ShadowRootNode:
		return "#document-fragment"
	case ProcessingInstructionNode:
		return n.char.target
	case DocumentTypeNode:
		return n.doctype.name
	case AttributeNode:
		return n.name
	case ElementNode:
		return n.name
	default:
		return n.name
	}
}

// NodeValue returns the node's value: character data for text-like
// nodes and attributes, empty for everything else.
func (n *Node) NodeValue() string {
	switch n.nodeType {
	case TextNode, CommentNode, CDATASectionNode, ProcessingInstructionNode:
		return n.char.data
	case AttributeNode:
		return n.attrValue
	default:
		return ""
	}
}

// SetNodeValue sets the node's value where that is meaningful; it is a
// no-op for node kinds that have none, per spec.md §6.
func (n *Node) SetNodeValue(v string) {
	switch n.nodeType {
	case TextNode, CommentNode, CDATASectionNode, ProcessingInstructionNode:
		n.char.data = v
		n.generation++
	case AttributeNode:
		n.setAttrNodeValue(v)
	}
}

// ParentNode returns the node's parent, or nil at a tree root.
func (n *Node) ParentNode() *Node { return n.parent }

// FirstChild returns the first child, or nil if there are none.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil if there are none.
func (n *Node) LastChild() *Node { return n.lastChild }

// PreviousSibling returns the preceding sibling, or nil.
func (n *Node) PreviousSibling() *Node { return n.prevSibling }

// NextSibling returns the following sibling, or nil.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// OwnerDocument returns the document that owns this node; nil for
// Document nodes themselves.
func (n *Node) OwnerDocument() *Document {
	if n.nodeType == DocumentNode {
		return nil
	}
	return n.ownerDoc
}

// HasChildNodes reports whether the node has at least one child.
func (n *Node) HasChildNodes() bool { return n.firstChild != nil }

// IsConnected reports whether the node's composed root is a Document,
// per the flagConnected bit maintained by the mutation engine.
func (n *Node) IsConnected() bool { return n.flags&flagConnected != 0 }

// IsInShadowTree reports whether some ancestor (composed, crossing
// shadow boundaries upward) is a ShadowRoot.
func (n *Node) IsInShadowTree() bool { return n.flags&flagInShadowTree != 0 }

// Contains reports whether other is this node or a descendant of it.
func (n *Node) Contains(other *Node) bool {
	if other == nil {
		return false
	}
	for cur := other; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}

// GetRootNode returns the root of the tree containing this node. When
// composed is true, shadow boundaries are crossed (root→host) until a
// Document or a parentless node is reached; otherwise traversal stops at
// the nearest enclosing ShadowRoot.
func (n *Node) GetRootNode(composed bool) *Node {
	cur := n
	for {
		if cur.parent != nil {
			cur = cur.parent
			continue
		}
		if composed && cur.nodeType == ShadowRootNode && cur.shadow.host != nil {
			cur = cur.shadow.host
			continue
		}
		return cur
	}
}

// IsSameNode reports pointer identity.
func (n *Node) IsSameNode(other *Node) bool { return n == other }

// Document position bits, per spec.md §6's CompareDocumentPosition.
const (
	DocumentPositionDisconnected           = 0x01
	DocumentPositionPreceding              = 0x02
	DocumentPositionFollowing              = 0x04
	DocumentPositionContains               = 0x08
	DocumentPositionContainedBy            = 0x10
	DocumentPositionImplementationSpecific = 0x20
)

// CompareDocumentPosition reports the position of other relative to n.
func (n *Node) CompareDocumentPosition(other *Node) uint16 {
	if n == other {
		return 0
	}
	if other == nil {
		return DocumentPositionDisconnected | DocumentPositionImplementationSpecific
	}
	if n.GetRootNode(false) != other.GetRootNode(false) {
		return DocumentPositionDisconnected | DocumentPositionImplementationSpecific | DocumentPositionPreceding
	}
	if n.Contains(other) {
		return DocumentPositionContainedBy | DocumentPositionFollowing
	}
	if other.Contains(n) {
		return DocumentPositionContains | DocumentPositionPreceding
	}
	if precedesInDocumentOrder(n, other) {
		return DocumentPositionFollowing
	}
	return DocumentPositionPreceding
}

// precedesInDocumentOrder reports whether a comes before b in a
// pre-order walk of their common tree, for two nodes that are siblings
// or cousins (neither an ancestor of the other).
func precedesInDocumentOrder(a, b *Node) bool {
	aAncestors := ancestorChain(a)
	bAncestors := ancestorChain(b)
	// Find the lowest common ancestor by walking from the root down.
	i, j := len(aAncestors)-1, len(bAncestors)-1
	var aSib, bSib *Node
	for i >= 0 && j >= 0 && aAncestors[i] == bAncestors[j] {
		aSib, bSib = aAncestors[i], bAncestors[j]
		i--
		j--
	}
	if i < 0 || j < 0 {
		// One is an ancestor of the other; handled by callers before
		// reaching here, but fall back to a stable order.
		return i > j
	}
	aSib, bSib = aAncestors[i], bAncestors[j]
	for s := aSib; s != nil; s = s.nextSibling {
		if s == bSib {
			return true
		}
	}
	return false
}

func ancestorChain(n *Node) []*Node {
	chain := make([]*Node, 0, 8)
	for cur := n; cur != nil; cur = cur.parent {
		chain = append(chain, cur)
	}
	return chain
}

// IsEqualNode reports deep structural equality per spec.md's testable
// properties: same node type and kind-specific properties, and
// recursively equal children.
func (n *Node) IsEqualNode(other *Node) bool {
	if other == nil {
		return false
	}
	if n.nodeType != other.nodeType {
		return false
	}
	switch n.nodeType {
	case ElementNode:
		if !elementsEqual(n, other) {
			return false
		}
	case DocumentTypeNode:
		if n.doctype.name != other.doctype.name ||
			n.doctype.publicID != other.doctype.publicID ||
			n.doctype.systemID != other.doctype.systemID {
			return false
		}
	case ProcessingInstructionNode:
		if n.char.target != other.char.target || n.char.data != other.char.data {
			return false
		}
	case TextNode, CommentNode, CDATASectionNode:
		if n.char.data != other.char.data {
			return false
		}
	case AttributeNode:
		if n.name != other.name || n.attrValue != other.attrValue || n.attrName.NamespaceURI != other.attrName.NamespaceURI {
			return false
		}
	}

	c1, c2 := n.firstChild, other.firstChild
	for c1 != nil && c2 != nil {
		if !c1.IsEqualNode(c2) {
			return false
		}
		c1, c2 = c1.nextSibling, c2.nextSibling
	}
	return c1 == nil && c2 == nil
}

func elementsEqual(a, b *Node) bool {
	ea, eb := a.elem, b.elem
	if ea.namespaceURI != eb.namespaceURI || ea.prefix != eb.prefix || ea.localName != eb.localName {
		return false
	}
	aAttrs, bAttrs := ea.attrs.All(), eb.attrs.All()
	if len(aAttrs) != len(bAttrs) {
		return false
	}
	for _, at := range aAttrs {
		v, ok := eb.attrs.Get(at.Name)
		if !ok || v != at.Value {
			return false
		}
	}
	return true
}

// LookupPrefix returns the namespace prefix bound to namespaceURI in
// scope at this node, or "".
func (n *Node) LookupPrefix(namespaceURI string) string {
	if namespaceURI == "" {
		return ""
	}
	for cur := n; cur != nil; cur = cur.effectiveParentForNamespaceLookup() {
		if cur.nodeType != ElementNode {
			continue
		}
		if cur.elem.namespaceURI == namespaceURI && cur.elem.prefix != "" {
			return cur.elem.prefix
		}
		for _, a := range cur.elem.attrs.All() {
			if strings.HasPrefix(a.Name.LocalName, "xmlns:") && a.Value == namespaceURI {
				return strings.TrimPrefix(a.Name.LocalName, "xmlns:")
			}
		}
	}
	return ""
}

// LookupNamespaceURI returns the namespace URI bound to prefix in scope
// at this node, or "".
func (n *Node) LookupNamespaceURI(prefix string) string {
	switch n.nodeType {
	case DocumentNode:
		if el := n.firstElementChild(); el != nil {
			return el.LookupNamespaceURI(prefix)
		}
		return ""
	case DocumentTypeNode, DocumentFragmentNode:
		return ""
	case ElementNode:
		if prefix == "xml" {
			return strpool.XMLNamespace
		}
		if prefix == "xmlns" {
			return strpool.XMLNSNamespace
		}
		if n.elem.prefix == prefix && n.elem.namespaceURI != "" {
			return n.elem.namespaceURI
		}
		attrName := "xmlns"
		if prefix != "" {
			attrName = "xmlns:" + prefix
		}
		if v, ok := n.elem.attrs.Get(attrstore.Name{LocalName: attrName, HasNamespace: false}); ok {
			return v
		}
	}
	if n.parent != nil && n.parent.nodeType == ElementNode {
		return n.parent.LookupNamespaceURI(prefix)
	}
	return ""
}

// IsDefaultNamespace reports whether namespaceURI is the in-scope
// default ("") namespace at this node.
func (n *Node) IsDefaultNamespace(namespaceURI string) bool {
	return n.LookupNamespaceURI("") == namespaceURI
}

func (n *Node) effectiveParentForNamespaceLookup() *Node {
	if n.parent != nil && n.parent.nodeType == ElementNode {
		return n.parent
	}
	return nil
}

// setAttrNodeValue updates an AttributeNode's value, propagating the
// change into its owning element's attribute store so the two stay in
// sync (spec.md §4.2: attribute nodes are views over the store, not an
// independent source of truth).
func (n *Node) setAttrNodeValue(v string) {
	n.attrValue = v
	if n.attrOwner != nil {
		n.attrOwner.elem.attrs.Set(n.attrName, v)
		n.attrOwner.generation++
		if n.attrOwner.ownerDoc != nil {
			n.attrOwner.ownerDoc.node.docu.generation++
		}
	}
}

// ChildCount returns the number of children of n, for Range boundary
// points whose container is n.
func (n *Node) ChildCount() int {
	c := 0
	for cur := n.firstChild; cur != nil; cur = cur.nextSibling {
		c++
	}
	return c
}

// ChildAt returns n's i'th child (0-based), or nil if out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 {
		return nil
	}
	cur := n.firstChild
	for ; cur != nil && i > 0; i-- {
		cur = cur.nextSibling
	}
	return cur
}

// Index returns n's position among its parent's children, or -1 if n
// has no parent.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	i := 0
	for cur := n.parent.firstChild; cur != nil; cur = cur.nextSibling {
		if cur == n {
			return i
		}
		i++
	}
	return -1
}

func (n *Node) firstElementChild() *Node {
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return c
		}
	}
	return nil
}

// --- reference counting (spec.md §3, §5) ---
//
// Go is garbage collected, so this discipline is not load-bearing for
// memory safety; it exists to give the host deterministic "this subtree
// is no longer live" signals and to make the testable property of
// spec.md §8 ("counts of living nodes differ from before by exactly the
// size of the inserted subtree") something the host can actually assert
// against via Document.LiveNodeCount.

func (n *Node) hasParentBit() bool {
	return atomic.LoadUint32(&n.refState)&hasParentBit != 0
}

func (n *Node) externalRefCount() uint32 {
	return atomic.LoadUint32(&n.refState) &^ hasParentBit
}

// acquire increments the external reference count.
func (n *Node) acquire() {
	atomic.AddUint32(&n.refState, 1)
}

// release decrements the external reference count, destroying the node
// if it reaches zero and no parent edge owns it.
func (n *Node) release() {
	newVal := atomic.AddUint32(&n.refState, ^uint32(0))
	if newVal&^hasParentBit == 0 && newVal&hasParentBit == 0 {
		n.destroyNode()
	}
}

// attachParentRef records that a parent edge now owns n.
func (n *Node) attachParentRef() {
	setBit(&n.refState, hasParentBit, true)
}

// detachParentRef releases the parent edge's ownership, destroying n if
// no external reference remains.
func (n *Node) detachParentRef() {
	setBit(&n.refState, hasParentBit, false)
	if atomic.LoadUint32(&n.refState) == 0 {
		n.destroyNode()
	}
}

func setBit(addr *uint32, bit uint32, v bool) {
	for {
		old := atomic.LoadUint32(addr)
		var nv uint32
		if v {
			nv = old | bit
		} else {
			nv = old &^ bit
		}
		if atomic.CompareAndSwapUint32(addr, old, nv) {
			return
		}
	}
}

func (n *Node) destroyNode() {
	if n.ownerDoc != nil {
		n.ownerDoc.node.docu.liveNodes--
	} else if n.nodeType == DocumentNode {
		n.docu.liveNodes--
	}
	n.rare = nil
}
