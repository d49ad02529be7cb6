package dom

// ShadowRoot is a Node known to be a ShadowRootNode, per spec.md §4.8.
type ShadowRoot Node

func (s *ShadowRoot) n() *Node      { return (*Node)(s) }
func (s *ShadowRoot) AsNode() *Node { return (*Node)(s) }

// Mode returns the shadow root's open/closed mode.
func (s *ShadowRoot) Mode() ShadowRootMode { return s.n().shadow.mode }

// Host returns the element this shadow root is attached to.
func (s *ShadowRoot) Host() *Element { return (*Element)(s.n().shadow.host) }

// DelegatesFocus reports the delegatesFocus option this root was
// created with.
func (s *ShadowRoot) DelegatesFocus() bool { return s.n().shadow.delegatesFocus }

// SlotAssignment reports whether slottables are assigned by name or
// only via explicit Slot.Assign calls.
func (s *ShadowRoot) SlotAssignment() SlotAssignmentMode { return s.n().shadow.slotAssignment }

// Clonable reports the clonable option this root was created with.
func (s *ShadowRoot) Clonable() bool { return s.n().shadow.clonable }

// Serializable reports the serializable option this root was created
// with.
func (s *ShadowRoot) Serializable() bool { return s.n().shadow.serializable }

// Children returns the shadow root's element children, in tree order.
func (s *ShadowRoot) Children() []*Element {
	var out []*Element
	for c := s.n().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
	}
	return out
}

// GetElementByID returns the element with the given id among this
// shadow root's descendants, or nil. Unlike Document.GetElementByID
// this is a plain subtree walk: a shadow tree is expected to be small
// and its own id namespace is not worth a dedicated index.
func (s *ShadowRoot) GetElementByID(id string) *Element {
	var found *Node
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode {
				if v, ok := c.elem.attrs.Get(idAttrName); ok && v == id {
					found = c
					return true
				}
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(s.n())
	if found == nil {
		return nil
	}
	return (*Element)(found)
}

// AttachShadow creates and attaches a ShadowRoot to e, per spec.md
// §4.8. It fails with NotSupportedError if e already hosts a shadow
// root (attaching a second one is not a supported operation, not an
// invalid-state condition), or with InvalidStateError if e has no owner
// document.
func (e *Element) AttachShadow(opts ShadowRootOptions) (*ShadowRoot, error) {
	n := e.n()
	if n.flags&flagIsHost != 0 {
		return nil, errNotSupported("element already hosts a shadow root")
	}
	if n.ownerDoc == nil {
		return nil, errInvalidState("element has no owner document")
	}
	doc := n.ownerDoc
	sr := doc.newNode(ShadowRootNode)
	sr.shadow = &shadowRootData{
		mode:           opts.Mode,
		host:           n,
		slotAssignment: opts.SlotAssignment,
		delegatesFocus: opts.DelegatesFocus,
		clonable:       opts.Clonable,
		serializable:   opts.Serializable,
	}
	sr.attachParentRef() // the host->shadow-root edge is an owning reference, like a parent edge
	n.flags |= flagIsHost
	n.rareData().shadowRoot = sr
	setBit(&sr.flags, flagConnected, n.flags&flagConnected != 0)
	setBit(&sr.flags, flagInShadowTree, false)
	return (*ShadowRoot)(sr), nil
}
