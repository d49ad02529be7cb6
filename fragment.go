package dom

// DocumentFragment is a Node known to be a DocumentFragmentNode: a
// lightweight container whose children are spliced into place by
// insertion algorithms without the fragment itself ever appearing in
// the resulting tree (spec.md §4.4).
type DocumentFragment Node

func (f *DocumentFragment) n() *Node      { return (*Node)(f) }
func (f *DocumentFragment) AsNode() *Node { return (*Node)(f) }

// Children returns the fragment's element children, in tree order.
func (f *DocumentFragment) Children() []*Element {
	var out []*Element
	for c := f.n().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
	}
	return out
}
