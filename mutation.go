package dom

import "github.com/moznion-helium/domcore/internal/attrstore"

var idAttrName = attrstore.Name{LocalName: "id"}

// This file implements the pre-insertion validity checks and the
// structural mutation primitives (insert, remove, replace, adopt,
// move, normalize, textContent) of spec.md §4.4, grounded on the
// validatePreInsertionOrReplace / insertBefore / removeChildInternal /
// ReplaceChildWithError shape of a donor DOM implementation: a single
// recursive low-level splice routine underneath validated, exported
// entry points.

func canHaveChildren(n *Node) bool {
	switch n.nodeType {
	case DocumentNode, DocumentFragmentNode, ElementNode, ShadowRootNode:
		return true
	default:
		return false
	}
}

func isValidChildType(t NodeType) bool {
	switch t {
	case DocumentFragmentNode, DocumentTypeNode, ElementNode, TextNode, CDATASectionNode, ProcessingInstructionNode, CommentNode:
		return true
	default:
		return false
	}
}

// validatePreInsertionOrReplace implements the WHATWG "ensure
// pre-insertion validity" / "ensure pre-replace validity" algorithms,
// parameterized on isReplace since the two differ only in which
// existing children are excluded from the one-element/one-doctype
// constraints.
func validatePreInsertionOrReplace(parent, node, child *Node, isReplace bool) error {
	if !canHaveChildren(parent) {
		return errHierarchyRequest("parent cannot have children: " + parent.nodeType.String())
	}
	if node.Contains(parent) {
		return errHierarchyRequest("node is an inclusive ancestor of parent")
	}
	if child != nil && child.parent != parent {
		return errNotFound("child is not a child of parent")
	}
	if !isValidChildType(node.nodeType) {
		return errHierarchyRequest("node type cannot be a child: " + node.nodeType.String())
	}
	if node.nodeType == TextNode && parent.nodeType == DocumentNode {
		return errHierarchyRequest("a Document cannot have a Text child")
	}
	if node.nodeType == DocumentTypeNode && parent.nodeType != DocumentNode {
		return errHierarchyRequest("a DocumentType can only be a child of a Document")
	}
	if parent.nodeType == DocumentNode {
		return validateDocumentConstraints(parent, node, child, isReplace)
	}
	return nil
}

func validateDocumentConstraints(doc, node, child *Node, isReplace bool) error {
	switch node.nodeType {
	case DocumentFragmentNode:
		elemCount := 0
		for c := node.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode {
				elemCount++
			}
			if c.nodeType == TextNode {
				return errHierarchyRequest("fragment contains a Text node for Document insertion")
			}
		}
		if elemCount > 1 {
			return errHierarchyRequest("fragment contains more than one Element")
		}
		if elemCount == 1 {
			if hasElementChildExcluding(doc, child, isReplace) {
				return errHierarchyRequest("document already has a documentElement")
			}
			if child != nil && !isReplace && doctypeFollows(doc, child) {
				return errHierarchyRequest("documentElement cannot precede a doctype")
			}
			if isReplace && elementPrecedesExcluding(doc, child) {
				return errHierarchyRequest("documentElement cannot precede a doctype")
			}
		}
	case ElementNode:
		if hasElementChildExcluding(doc, child, isReplace) {
			return errHierarchyRequest("document already has a documentElement")
		}
		if child != nil && !isReplace && doctypeFollows(doc, child) {
			return errHierarchyRequest("documentElement cannot precede a doctype")
		}
		if isReplace && elementPrecedesExcluding(doc, child) {
			return errHierarchyRequest("documentElement cannot precede a doctype")
		}
	case DocumentTypeNode:
		if hasDoctypeExcluding(doc, child, isReplace) {
			return errHierarchyRequest("document already has a doctype")
		}
		if child != nil {
			if elementPrecedesExcluding(doc, child) && !isReplace {
				return errHierarchyRequest("doctype cannot follow the documentElement")
			}
		} else if doc.firstElementChild() != nil {
			return errHierarchyRequest("doctype cannot follow the documentElement")
		}
	}
	return nil
}

func hasElementChildExcluding(doc, exclude *Node, excludeIsReplace bool) bool {
	for c := doc.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType != ElementNode {
			continue
		}
		if excludeIsReplace && c == exclude {
			continue
		}
		return true
	}
	return false
}

func hasDoctypeExcluding(doc, exclude *Node, excludeIsReplace bool) bool {
	for c := doc.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType != DocumentTypeNode {
			continue
		}
		if excludeIsReplace && c == exclude {
			continue
		}
		return true
	}
	return false
}

// doctypeFollows reports whether a DocumentType node appears at or
// after child in doc's children, meaning an element inserted before
// child would precede it.
func doctypeFollows(doc, child *Node) bool {
	for c := child; c != nil; c = c.nextSibling {
		if c.nodeType == DocumentTypeNode {
			return true
		}
	}
	return false
}

// elementPrecedesExcluding reports whether an Element node appears
// before child (used by the replace algorithm, which excludes child
// itself from consideration since it is about to be removed).
func elementPrecedesExcluding(doc, child *Node) bool {
	for c := doc.firstChild; c != nil && c != child; c = c.nextSibling {
		if c.nodeType == ElementNode {
			return true
		}
	}
	return false
}

// --- low-level splice primitives (no validation) ---

func spliceIn(parent, node, child *Node) {
	node.parent = parent
	if child == nil {
		if parent.lastChild != nil {
			parent.lastChild.nextSibling = node
			node.prevSibling = parent.lastChild
		} else {
			parent.firstChild = node
		}
		parent.lastChild = node
	} else {
		node.nextSibling = child
		node.prevSibling = child.prevSibling
		if child.prevSibling != nil {
			child.prevSibling.nextSibling = node
		} else {
			parent.firstChild = node
		}
		child.prevSibling = node
	}
	node.attachParentRef()
}

func spliceOut(parent, node *Node) {
	if node.prevSibling != nil {
		node.prevSibling.nextSibling = node.nextSibling
	} else {
		parent.firstChild = node.nextSibling
	}
	if node.nextSibling != nil {
		node.nextSibling.prevSibling = node.prevSibling
	} else {
		parent.lastChild = node.prevSibling
	}
	node.parent = nil
	node.prevSibling = nil
	node.nextSibling = nil
	node.detachParentRef()
}

// insertBefore is the unvalidated workhorse behind InsertBefore,
// AppendChild, ReplaceChild, and MoveBefore. Callers are responsible
// for pre-insertion validity; this routine handles fragment flattening,
// cross-document adoption, index/flag maintenance, and mutation
// notification.
func insertBefore(parent, node, child *Node) error {
	if node.nodeType == DocumentFragmentNode {
		kids := make([]*Node, 0, 4)
		for c := node.firstChild; c != nil; c = c.nextSibling {
			kids = append(kids, c)
		}
		for _, k := range kids {
			spliceOut(node, k)
			if err := insertBefore(parent, k, child); err != nil {
				return err
			}
		}
		return nil
	}

	if node.parent != nil {
		spliceOut(node.parent, node)
	}
	if parent.ownerDoc != nil && node.ownerDoc != parent.ownerDoc {
		adoptSubtree(parent.ownerDoc, node)
	}

	prevSib := child
	if prevSib == nil {
		prevSib = parent.lastChild
	} else {
		prevSib = child.prevSibling
	}
	nextSib := child

	spliceIn(parent, node, child)
	propagateFlags(node)
	indexSubtreeIDs(node)

	if parent.ownerDoc != nil {
		doc := parent.ownerDoc.node.docu
		doc.generation++
		if doc.mutationSink != nil {
			doc.mutationSink.OnChildListMutation(parent, []*Node{node}, nil, prevSib, nextSib)
		}
	}
	return nil
}

// removeChild is the unvalidated workhorse behind RemoveChild and the
// detach half of ReplaceChild/MoveBefore.
func removeChild(parent, node *Node) {
	prevSib, nextSib := node.prevSibling, node.nextSibling
	deindexSubtreeIDs(node)
	spliceOut(parent, node)
	propagateFlags(node)

	if parent.ownerDoc != nil {
		doc := parent.ownerDoc.node.docu
		doc.generation++
		if doc.mutationSink != nil {
			doc.mutationSink.OnChildListMutation(parent, nil, []*Node{node}, prevSib, nextSib)
		}
	}
}

// InsertBefore validates and performs inserting node into parent,
// immediately before child (or at the end, if child is nil).
func InsertBefore(parent, node, child *Node) (*Node, error) {
	if err := validatePreInsertionOrReplace(parent, node, child, false); err != nil {
		return nil, err
	}
	if err := insertBefore(parent, node, child); err != nil {
		return nil, err
	}
	return node, nil
}

// AppendChild validates and performs appending node as parent's last
// child.
func AppendChild(parent, node *Node) (*Node, error) {
	return InsertBefore(parent, node, nil)
}

// RemoveChild validates and performs removing node from parent.
func RemoveChild(parent, node *Node) (*Node, error) {
	if node.parent != parent {
		return nil, errNotFound("node is not a child of parent")
	}
	removeChild(parent, node)
	return node, nil
}

// ReplaceChild validates and performs replacing child with node under
// parent, per the WHATWG "replace a child" algorithm.
func ReplaceChild(parent, node, child *Node) (*Node, error) {
	if err := validatePreInsertionOrReplace(parent, node, child, true); err != nil {
		return nil, err
	}
	ref := child.nextSibling
	if ref == node {
		ref = node.nextSibling
	}
	removeChild(parent, child)
	if err := insertBefore(parent, node, ref); err != nil {
		return nil, err
	}
	return child, nil
}

// MoveBefore relocates node to immediately before child under parent
// without firing a disconnect notification, per the Open Question
// decision recorded in DESIGN.md: a no-op when node == child.
func MoveBefore(parent, node, child *Node) error {
	if node == child {
		return nil
	}
	if err := validatePreInsertionOrReplace(parent, node, child, false); err != nil {
		return err
	}
	return insertBefore(parent, node, child)
}

// AdoptNode detaches node from its current tree (if any) and reassigns
// its, and its descendants', owner document to doc.
func AdoptNode(doc *Document, node *Node) error {
	if node.nodeType == DocumentNode {
		return errNotSupported("cannot adopt a Document node")
	}
	if oldParent := node.parent; oldParent != nil {
		removeChild(oldParent, node)
	}
	adoptSubtree(doc, node)
	return nil
}

func adoptSubtree(doc *Document, node *Node) {
	if node.ownerDoc == doc {
		return
	}
	oldDoc := node.ownerDoc
	node.ownerDoc = doc
	if oldDoc != nil {
		oldDoc.node.docu.liveNodes--
	}
	doc.node.docu.liveNodes++
	if node.nodeType == ElementNode {
		pool := doc.node.docu.pool
		node.name = pool.Intern(node.name)
		node.elem.localName = pool.Intern(node.elem.localName)
		node.elem.namespaceURI = pool.Intern(node.elem.namespaceURI)
		node.elem.prefix = pool.Intern(node.elem.prefix)
	}
	for c := node.firstChild; c != nil; c = c.nextSibling {
		adoptSubtree(doc, c)
	}
}

func propagateFlags(n *Node) {
	var connected, inShadow bool
	if n.parent == nil {
		connected = n.nodeType == DocumentNode
		inShadow = false
	} else {
		connected = n.parent.flags&flagConnected != 0
		inShadow = n.parent.flags&flagInShadowTree != 0 || n.parent.nodeType == ShadowRootNode
	}
	wasConnected := n.flags&flagConnected != 0
	wasInShadow := n.flags&flagInShadowTree != 0
	setBit(&n.flags, flagConnected, connected)
	setBit(&n.flags, flagInShadowTree, inShadow)
	flagsChanged := wasConnected != connected || wasInShadow != inShadow

	// A host element's shadow tree is a separate non-composed tree (its
	// root's parent pointer is nil, see GetRootNode), so it is not
	// reached by the child recursion below; propagate into it directly,
	// mirroring the host's connectedness.
	if n.flags&flagIsHost != 0 && n.rare != nil && n.rare.shadowRoot != nil {
		sr := n.rare.shadowRoot
		srWasConnected := sr.flags&flagConnected != 0
		setBit(&sr.flags, flagConnected, connected)
		setBit(&sr.flags, flagInShadowTree, false)
		if srWasConnected != connected {
			for c := sr.firstChild; c != nil; c = c.nextSibling {
				propagateFlags(c)
			}
		}
	}

	if !flagsChanged {
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		propagateFlags(c)
	}
}

func indexSubtreeIDs(n *Node) {
	if n.ownerDoc == nil {
		return
	}
	ids := n.ownerDoc.node.docu.ids
	if n.nodeType == ElementNode {
		if id, ok := n.elem.attrs.Get(idAttrName); ok && id != "" {
			if _, exists := ids[id]; !exists {
				ids[id] = n
			}
		}
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		indexSubtreeIDs(c)
	}
}

func deindexSubtreeIDs(n *Node) {
	if n.ownerDoc == nil {
		return
	}
	ids := n.ownerDoc.node.docu.ids
	if n.nodeType == ElementNode {
		if id, ok := n.elem.attrs.Get(idAttrName); ok {
			if cur, exists := ids[id]; exists && cur == n {
				delete(ids, id)
			}
		}
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		deindexSubtreeIDs(c)
	}
}

// Normalize merges adjacent Text node siblings and removes empty ones
// throughout n's subtree, per spec.md's Node.normalize.
func Normalize(n *Node) {
	c := n.firstChild
	for c != nil {
		next := c.nextSibling
		if c.nodeType == TextNode {
			for next != nil && next.nodeType == TextNode {
				c.char.data += next.char.data
				afterNext := next.nextSibling
				removeChild(n, next)
				next = afterNext
			}
			if c.char.data == "" {
				afterC := next
				removeChild(n, c)
				c = afterC
				continue
			}
		} else {
			Normalize(c)
		}
		c = next
	}
}

// SetTextContent implements the textContent setter: replacing all of
// n's children with a single Text node (or none, if text is empty) for
// container kinds, and writing character data directly for
// CharacterData kinds. It is a no-op for Document and DocumentType.
func SetTextContent(n *Node, text string) {
	switch n.nodeType {
	case TextNode, CommentNode, CDATASectionNode, ProcessingInstructionNode:
		setData(n, text)
	case ElementNode, DocumentFragmentNode, ShadowRootNode:
		kids := make([]*Node, 0, 4)
		for c := n.firstChild; c != nil; c = c.nextSibling {
			kids = append(kids, c)
		}
		for _, k := range kids {
			removeChild(n, k)
		}
		if text != "" && n.ownerDoc != nil {
			t := n.ownerDoc.CreateTextNode(text)
			_ = insertBefore(n, t.n(), nil)
		}
	}
}

// TextContent returns the concatenation of n's descendant Text node
// data (for container kinds) or its own data (for CharacterData
// kinds), per spec.md's textContent getter.
func TextContent(n *Node) string {
	switch n.nodeType {
	case TextNode, CommentNode, CDATASectionNode, ProcessingInstructionNode:
		return n.char.data
	case ElementNode, DocumentFragmentNode, ShadowRootNode:
		s := ""
		for c := n.firstChild; c != nil; c = c.nextSibling {
			switch c.nodeType {
			case TextNode, CDATASectionNode:
				s += c.char.data
			case ElementNode, DocumentFragmentNode:
				s += TextContent(c)
			}
		}
		return s
	default:
		return ""
	}
}
