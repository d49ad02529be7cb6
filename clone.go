package dom

// CloneNode returns a copy of n, detached from any tree, per spec.md's
// clone_node(deep) operation. Element attributes, character data, and
// doctype identity are copied; event listeners, user data, and shadow
// trees are not (a shadow tree's Clonable flag governs whether
// cloneNode walks into it, which this engine does not yet implement —
// see DESIGN.md). When deep is true, children are cloned recursively
// and appended to the copy.
func CloneNode(n *Node, deep bool) *Node {
	doc := n.ownerDoc
	clone := cloneShallow(doc, n)
	if deep {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			childClone := CloneNode(c, true)
			spliceIn(clone, childClone, nil)
		}
	}
	return clone
}

func cloneShallow(doc *Document, n *Node) *Node {
	switch n.nodeType {
	case ElementNode:
		src := (*Element)(n)
		el := doc.CreateElementNS(src.NamespaceURI(), src.Prefix(), src.LocalName())
		for _, a := range n.elem.attrs.All() {
			el.AsNode().elem.attrs.Set(a.Name, a.Value)
		}
		el.recomputeClassBloom(el.ClassName())
		return el.AsNode()
	case TextNode:
		return doc.CreateTextNode(n.char.data).AsNode()
	case CommentNode:
		return doc.CreateComment(n.char.data).AsNode()
	case CDATASectionNode:
		return doc.CreateCDATASection(n.char.data).AsNode()
	case ProcessingInstructionNode:
		return doc.CreateProcessingInstruction(n.char.target, n.char.data).AsNode()
	case DocumentFragmentNode:
		return doc.CreateDocumentFragment().AsNode()
	case DocumentTypeNode:
		return doc.CreateDocumentType(n.doctype.name, n.doctype.publicID, n.doctype.systemID).AsNode()
	case AttributeNode:
		clone := doc.newNode(AttributeNode)
		clone.name = n.name
		clone.attrName = n.attrName
		clone.attrValue = n.attrValue
		return clone
	default:
		clone := doc.newNode(n.nodeType)
		clone.name = n.name
		return clone
	}
}

// DataLength returns the UTF-16 code unit length of n's character data,
// for CharacterData containers used as Range boundary points.
func DataLength(n *Node) int {
	if n.char == nil {
		return 0
	}
	return utf16Len(n.char.data)
}
