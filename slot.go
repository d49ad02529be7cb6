package dom

import "github.com/moznion-helium/domcore/internal/attrstore"

var slotAttrName = attrstore.Name{LocalName: "slot"}
var nameAttrNameAttr = attrstore.Name{LocalName: "name"}

// This file implements slot assignment (spec.md §4.8): named
// assignment, where a host's light-tree children are matched to <slot>
// elements in its shadow tree by a shared "slot"/"name" attribute pair,
// and manual assignment, where the host (or its controller) assigns
// slottables to slots explicitly via AssignSlotManual.

func isSlottable(n *Node) bool {
	return n.nodeType == ElementNode || n.nodeType == TextNode
}

func isSlotElement(n *Node) bool {
	return n.nodeType == ElementNode && n.elem.localName == "slot"
}

func slotAttrOf(n *Node) string {
	if n.nodeType != ElementNode {
		return ""
	}
	v, _ := n.elem.attrs.Get(slotAttrName)
	return v
}

func nameAttrOf(n *Node) string {
	if n.nodeType != ElementNode {
		return ""
	}
	v, _ := n.elem.attrs.Get(nameAttrNameAttr)
	return v
}

// findShadowHost returns the host of the shadow root that directly
// contains n, or nil if n is not inside a shadow tree one level deep
// (i.e. n is a direct or indirect child of some ShadowRoot reachable by
// ordinary parent pointers).
func findShadowHost(n *Node) *Node {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.nodeType == ShadowRootNode {
			return cur.shadow.host
		}
	}
	return nil
}

// AssignedNodes returns the slottables currently assigned to the <slot>
// element slotNode: computed on the fly for named assignment, or the
// explicitly recorded list for manual assignment.
func AssignedNodes(slotNode *Node) []*Node {
	if !isSlotElement(slotNode) {
		return nil
	}
	host := findShadowHost(slotNode)
	if host == nil || host.rare == nil || host.rare.shadowRoot == nil {
		return nil
	}
	sr := host.rare.shadowRoot
	if sr.shadow.slotAssignment == SlotAssignmentManual {
		if slotNode.rare == nil {
			return nil
		}
		return slotNode.rare.manualAssigned
	}
	name := nameAttrOf(slotNode)
	var out []*Node
	for c := host.firstChild; c != nil; c = c.nextSibling {
		if isSlottable(c) && slotAttrOf(c) == name {
			out = append(out, c)
		}
	}
	return out
}

// AssignSlotManual assigns nodes to slotNode under manual slot
// assignment mode, replacing any previous assignment to that slot.
func AssignSlotManual(slotNode *Node, nodes []*Node) error {
	if !isSlotElement(slotNode) {
		return errInvalidNodeType("not a slot element")
	}
	host := findShadowHost(slotNode)
	if host == nil {
		return errInvalidState("slot is not part of an attached shadow tree")
	}
	sr := host.rare.shadowRoot
	if sr == nil || sr.shadow.slotAssignment != SlotAssignmentManual {
		return errInvalidState("shadow root is not in manual slot assignment mode")
	}
	for c := host.firstChild; c != nil; c = c.nextSibling {
		if c.rare != nil && c.rare.assignedSlot == slotNode {
			c.rare.assignedSlot = nil
		}
	}
	slotNode.rareData().manualAssigned = nodes
	for _, nd := range nodes {
		nd.rareData().assignedSlot = slotNode
	}
	return nil
}

// AssignedSlot returns the <slot> element n is currently assigned to,
// computing named assignment on demand, or nil if n is not a slottable
// child of a shadow host, or no slot claims it.
func AssignedSlot(n *Node) *Node {
	if !isSlottable(n) || n.parent == nil {
		return nil
	}
	host := n.parent
	if host.rare == nil || host.rare.shadowRoot == nil {
		return nil
	}
	sr := host.rare.shadowRoot
	if sr.shadow.slotAssignment == SlotAssignmentManual {
		if n.rare == nil {
			return nil
		}
		return n.rare.assignedSlot
	}
	name := slotAttrOf(n)
	var found *Node
	var walk func(*Node) bool
	walk = func(cur *Node) bool {
		for c := cur.firstChild; c != nil; c = c.nextSibling {
			if isSlotElement(c) && nameAttrOf(c) == name {
				found = c
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(sr)
	return found
}
