package domrange

import dom "github.com/moznion-helium/domcore"

// WhatToShow bits select which node kinds a NodeIterator visits, per
// spec.md §4.10 (mirroring the standard's SHOW_* bitmask).
type WhatToShow uint32

const (
	ShowAll                   WhatToShow = 0xFFFFFFFF
	ShowElement               WhatToShow = 1 << 0
	ShowAttribute             WhatToShow = 1 << 1
	ShowText                  WhatToShow = 1 << 2
	ShowCDATASection          WhatToShow = 1 << 3
	ShowProcessingInstruction WhatToShow = 1 << 6
	ShowComment               WhatToShow = 1 << 7
	ShowDocument              WhatToShow = 1 << 8
	ShowDocumentType          WhatToShow = 1 << 9
	ShowDocumentFragment      WhatToShow = 1 << 10
)

// FilterResult is the outcome of a NodeFilter callback.
type FilterResult int

const (
	FilterAccept FilterResult = iota
	FilterReject
	FilterSkip
)

// NodeFilter is an optional per-node acceptance predicate, applied after
// the WhatToShow bitmask.
type NodeFilter func(n *dom.Node) FilterResult

func showBitFor(n *dom.Node) WhatToShow {
	switch n.NodeType() {
	case dom.ElementNode:
		return ShowElement
	case dom.AttributeNode:
		return ShowAttribute
	case dom.TextNode:
		return ShowText
	case dom.CDATASectionNode:
		return ShowCDATASection
	case dom.ProcessingInstructionNode:
		return ShowProcessingInstruction
	case dom.CommentNode:
		return ShowComment
	case dom.DocumentNode:
		return ShowDocument
	case dom.DocumentTypeNode:
		return ShowDocumentType
	case dom.DocumentFragmentNode:
		return ShowDocumentFragment
	default:
		return 0
	}
}

// NodeIterator walks root's subtree in document order, yielding nodes
// that pass both the WhatToShow bitmask and an optional NodeFilter, per
// spec.md §4.10. Unlike a plain recursive walk, it keeps a reference
// position so repeated calls to NextNode/PreviousNode resume from where
// the last one left off, including across FilterSkip rejections.
type NodeIterator struct {
	root         *dom.Node
	whatToShow   WhatToShow
	filter       NodeFilter
	reference    *dom.Node
	pointerAfter bool // true: reference was just returned by NextNode; false: by PreviousNode or initial
}

// NewNodeIterator creates an iterator over root's subtree (root
// inclusive), filtered by whatToShow and the optional filter (pass nil
// to accept everything whatToShow allows).
func NewNodeIterator(root *dom.Node, whatToShow WhatToShow, filter NodeFilter) *NodeIterator {
	return &NodeIterator{
		root:         root,
		whatToShow:   whatToShow,
		filter:       filter,
		reference:    root,
		pointerAfter: false,
	}
}

func (it *NodeIterator) accepts(n *dom.Node) FilterResult {
	if it.whatToShow != ShowAll && showBitFor(n)&it.whatToShow == 0 {
		return FilterSkip
	}
	if it.filter == nil {
		return FilterAccept
	}
	return it.filter(n)
}

// nextInDocumentOrder returns the node immediately following n in a
// pre-order walk of root's subtree, or nil if n is the last node.
func (it *NodeIterator) nextInDocumentOrder(n *dom.Node) *dom.Node {
	if c := n.FirstChild(); c != nil {
		return c
	}
	cur := n
	for cur != it.root {
		if sib := cur.NextSibling(); sib != nil {
			return sib
		}
		cur = cur.ParentNode()
		if cur == nil {
			return nil
		}
	}
	return nil
}

// previousInDocumentOrder returns the node immediately preceding n in a
// pre-order walk of root's subtree, or nil if n is root or the first
// node.
func (it *NodeIterator) previousInDocumentOrder(n *dom.Node) *dom.Node {
	if n == it.root {
		return nil
	}
	if sib := n.PreviousSibling(); sib != nil {
		return lastDescendant(sib)
	}
	return n.ParentNode()
}

func lastDescendant(n *dom.Node) *dom.Node {
	for {
		last := n.LastChild()
		if last == nil {
			return n
		}
		n = last
	}
}

// NextNode returns the next node in the iterator's filtered traversal,
// or nil when the traversal is exhausted.
func (it *NodeIterator) NextNode() *dom.Node {
	if it.reference == nil {
		return nil
	}
	cur := it.reference
	if !it.pointerAfter {
		if it.accepts(cur) == FilterAccept {
			it.pointerAfter = true
			return cur
		}
	}
	for {
		next := it.nextInDocumentOrder(cur)
		if next == nil {
			return nil
		}
		cur = next
		switch it.accepts(cur) {
		case FilterAccept:
			it.reference = cur
			it.pointerAfter = true
			return cur
		case FilterReject:
			continue
		default: // FilterSkip
			continue
		}
	}
}

// PreviousNode returns the previous node in the iterator's filtered
// traversal, or nil when the traversal is exhausted.
func (it *NodeIterator) PreviousNode() *dom.Node {
	if it.reference == nil {
		return nil
	}
	cur := it.reference
	if it.pointerAfter {
		if it.accepts(cur) == FilterAccept {
			it.pointerAfter = false
			return cur
		}
	}
	for {
		prev := it.previousInDocumentOrder(cur)
		if prev == nil {
			return nil
		}
		cur = prev
		switch it.accepts(cur) {
		case FilterAccept:
			it.reference = cur
			it.pointerAfter = false
			return cur
		default:
			continue
		}
	}
}

// Root returns the node the iterator was constructed with.
func (it *NodeIterator) Root() *dom.Node { return it.root }

// ReferenceNode returns the node the iterator is currently positioned
// at, and whether that position is just after (true) or just before
// (false) it in traversal order.
func (it *NodeIterator) ReferenceNode() (*dom.Node, bool) {
	return it.reference, it.pointerAfter
}

// Detach is a no-op retained for API parity with the standard's
// NodeIterator.detach; this engine has no live-iterator registry for a
// detach to unregister from.
func (it *NodeIterator) Detach() {}
