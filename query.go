package dom

import "github.com/moznion-helium/domcore/selector"

// This file implements the ParentNode query surface (spec.md §4.7):
// querySelector/querySelectorAll against the selector package's parser,
// cache, and matcher. getElementById and the live tag/class collections
// live in document.go and indices.go respectively.

// QuerySelectorAll returns every Element descendant of root, in tree
// order, matching the CSS selector text sel. The result is a static
// snapshot, not a live collection. A selector that classifies as a
// single id, class, or tag simple selector (selector.Classify) is
// answered directly from the document's id/class/tag indices instead of
// walking the tree.
func QuerySelectorAll(root *Node, sel string) ([]*Element, error) {
	list, err := parseSelector(root, sel)
	if err != nil {
		return nil, err
	}
	if out, ok := fastPathQueryAll(root, list); ok {
		return out, nil
	}
	var out []*Element
	var walk func(*Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode && list.Matches((*Element)(c)) {
				out = append(out, (*Element)(c))
			}
			walk(c)
		}
	}
	walk(root)
	return out, nil
}

// QuerySelector returns the first Element descendant of root, in tree
// order, matching sel, or nil if none matches. Fast-pathed the same way
// as QuerySelectorAll.
func QuerySelector(root *Node, sel string) (*Element, error) {
	list, err := parseSelector(root, sel)
	if err != nil {
		return nil, err
	}
	if out, ok := fastPathQueryAll(root, list); ok {
		if len(out) == 0 {
			return nil, nil
		}
		return out[0], nil
	}
	var found *Node
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode && list.Matches((*Element)(c)) {
				found = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(root)
	if found == nil {
		return nil, nil
	}
	return (*Element)(found), nil
}

// fastPathQueryAll answers a query directly from the document's id/
// class/tag indices when list classifies as one of those simple forms,
// filtering the document-wide index down to root's own subtree. ok is
// false when list does not classify this way, or when root is not in the
// document's own tree (the only tree the indices cover), meaning the
// caller must fall back to a full tree walk.
func fastPathQueryAll(root *Node, list *selector.SelectorList) (out []*Element, ok bool) {
	doc := root.ownerDoc
	if doc == nil || root.GetRootNode(false) != doc.node {
		return nil, false
	}
	kind, value := selector.Classify(list)
	switch kind {
	case selector.FastPathID:
		el := doc.GetElementByID(value)
		if el == nil || el.n() == root || !root.Contains(el.n()) {
			return nil, true
		}
		return []*Element{el}, true
	case selector.FastPathTag:
		return filterDescendants(doc.tagCollection(value), root), true
	case selector.FastPathClass:
		return filterDescendants(doc.classCollection(value), root), true
	case selector.FastPathUniversal:
		return filterDescendants(doc.tagCollection("*"), root), true
	default:
		return nil, false
	}
}

// filterDescendants keeps the nodes of a document-wide index collection
// that lie within root's own subtree (excluding root itself), preserving
// the collection's tree order.
func filterDescendants(nodes []*Node, root *Node) []*Element {
	var out []*Element
	for _, n := range nodes {
		if n != root && root.Contains(n) {
			out = append(out, (*Element)(n))
		}
	}
	return out
}

// Matches reports whether el itself (not a descendant) satisfies sel,
// per Element.matches.
func Matches(el *Element, sel string) (bool, error) {
	list, err := parseSelector(el.n(), sel)
	if err != nil {
		return false, err
	}
	return list.Matches(el), nil
}

func parseSelector(scopeNode *Node, sel string) (*selector.SelectorList, error) {
	doc := scopeNode.ownerDoc
	if doc == nil {
		return nil, errInvalidState("node has no owner document")
	}
	list, err := doc.node.docu.selectorCache.Get(sel)
	if err != nil {
		return nil, errSyntax(err.Error())
	}
	return list, nil
}
