package dom

// Attr is a Node known to be an AttributeNode: a live view over one
// entry of its owning element's attribute store, per spec.md §4.2.
// Attr nodes returned from Element.GetAttributeNode share identity
// across repeated calls for the same attribute.
type Attr Node

func (a *Attr) n() *Node      { return (*Node)(a) }
func (a *Attr) AsNode() *Node { return (*Node)(a) }

// Name returns the attribute's qualified name.
func (a *Attr) Name() string { return a.n().name }

// LocalName returns the attribute's local name.
func (a *Attr) LocalName() string { return a.n().attrName.LocalName }

// NamespaceURI returns the attribute's namespace URI, "" for the null
// namespace.
func (a *Attr) NamespaceURI() string { return a.n().attrName.NamespaceURI }

// Value returns the attribute's current value, read live from its
// owning element when attached.
func (a *Attr) Value() string {
	n := a.n()
	if n.attrOwner != nil {
		if v, ok := n.attrOwner.elem.attrs.Get(n.attrName); ok {
			return v
		}
	}
	return n.attrValue
}

// SetValue sets the attribute's value, updating the owning element's
// store in the same step when attached.
func (a *Attr) SetValue(v string) { a.n().setAttrNodeValue(v) }

// OwnerElement returns the element this attribute is attached to, or
// nil for a detached Attr node.
func (a *Attr) OwnerElement() *Element {
	if a.n().attrOwner == nil {
		return nil
	}
	return (*Element)(a.n().attrOwner)
}
