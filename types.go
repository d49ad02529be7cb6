// Package dom implements the core tree engine of a standards-conformant
// Document Object Model library: an ordered tree of heterogeneous nodes
// with mutation, indexing, selector matching, shadow trees, event
// dispatch, and range/iterator support, matching the observable
// semantics of the WHATWG DOM Living Standard.
//
// HTML/XML parsing, CSS styling and layout, serialization, URL
// resolution, and a script binding layer are external collaborators: the
// host drives this package's factory and mutation methods directly.
package dom

// NodeType discriminates the kind of a Node, mirroring the WHATWG DOM
// nodeType integers where one exists.
type NodeType uint8

const (
	_ NodeType = iota
	ElementNode
	AttributeNode
	TextNode
	CDATASectionNode
	_ // 5: WHATWG ENTITY_REFERENCE_NODE, not modelled
	_ // 6: WHATWG ENTITY_NODE, not modelled
	ProcessingInstructionNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
	ShadowRootNode
)

// String returns a human-readable name for debugging and test failure
// messages.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case AttributeNode:
		return "Attribute"
	case TextNode:
		return "Text"
	case CDATASectionNode:
		return "CDATASection"
	case ProcessingInstructionNode:
		return "ProcessingInstruction"
	case CommentNode:
		return "Comment"
	case DocumentNode:
		return "Document"
	case DocumentTypeNode:
		return "DocumentType"
	case DocumentFragmentNode:
		return "DocumentFragment"
	case ShadowRootNode:
		return "ShadowRoot"
	default:
		return "Unknown"
	}
}

// Node flag bits, packed into Node.flags.
const (
	flagConnected    uint32 = 1 << iota // composed root is a Document
	flagInShadowTree                    // some ancestor is a ShadowRoot
	flagIsHost                          // this element has an attached shadow root
	flagDispatching                     // dispatchEvent currently in progress
)

// ShadowRootMode is open or closed per spec.md §4.8.
type ShadowRootMode int

const (
	ShadowRootOpen ShadowRootMode = iota
	ShadowRootClosed
)

// SlotAssignmentMode selects how slottables are assigned to slots inside
// a shadow tree.
type SlotAssignmentMode int

const (
	SlotAssignmentNamed SlotAssignmentMode = iota
	SlotAssignmentManual
)

// ShadowRootOptions configures Element.AttachShadow.
type ShadowRootOptions struct {
	Mode           ShadowRootMode
	DelegatesFocus bool
	SlotAssignment SlotAssignmentMode
	Clonable       bool
	Serializable   bool
}
