package dom

import (
	"strings"

	"github.com/moznion-helium/domcore/internal/attrstore"
	"github.com/moznion-helium/domcore/internal/bloom"
	"github.com/moznion-helium/domcore/selector"
)

// Element is a thin, zero-cost view over a Node known to be an
// ElementNode. Conversion between *Node and *Element is a pointer
// reinterpretation, not an allocation, matching the tagged-variant
// design of spec.md §9.
type Element Node

func (e *Element) n() *Node { return (*Node)(e) }

// AsNode returns the underlying Node.
func (e *Element) AsNode() *Node { return (*Node)(e) }

// TagName returns the element's qualified name (prefix:localName, or
// just localName when there is no prefix).
func (e *Element) TagName() string { return e.n().name }

// LocalName returns the element's local name, without any prefix.
func (e *Element) LocalName() string { return e.n().elem.localName }

// Prefix returns the element's namespace prefix, or "".
func (e *Element) Prefix() string { return e.n().elem.prefix }

// NamespaceURI returns the element's namespace URI. An empty result
// with HasNamespace false is the null namespace.
func (e *Element) NamespaceURI() string { return e.n().elem.namespaceURI }

// HasNamespace reports whether the element has a non-null namespace.
func (e *Element) HasNamespace() bool { return e.n().elem.hasNamespace }

func attrName(pool func(string) string, namespaceURI, localName string) attrstore.Name {
	return attrstore.Name{
		NamespaceURI: pool(namespaceURI),
		LocalName:    pool(localName),
		HasNamespace: namespaceURI != "",
	}
}

func (e *Element) poolIntern(s string) string {
	return e.n().ownerDoc.node.docu.pool.Intern(s)
}

// GetAttribute returns the value of the non-namespaced attribute named
// localName, and whether it was present.
func (e *Element) GetAttribute(localName string) (string, bool) {
	return e.n().elem.attrs.Get(attrstore.Name{LocalName: localName})
}

// GetAttributeNS returns the value of the attribute identified by
// (namespaceURI, localName), and whether it was present.
func (e *Element) GetAttributeNS(namespaceURI, localName string) (string, bool) {
	return e.n().elem.attrs.Get(attrName(e.poolIntern, namespaceURI, localName))
}

// HasAttribute reports whether the non-namespaced attribute localName
// is present.
func (e *Element) HasAttribute(localName string) bool {
	return e.n().elem.attrs.Has(attrstore.Name{LocalName: localName})
}

// SetAttribute sets the non-namespaced attribute localName to value,
// per spec.md's attribute-mutation invariants: existing attribute nodes
// for the same name keep their identity and are updated in place.
func (e *Element) SetAttribute(localName, value string) error {
	return e.SetAttributeNS("", "", localName, value)
}

// SetAttributeNS sets the attribute identified by (namespaceURI,
// localName) with the given prefix to value.
func (e *Element) SetAttributeNS(namespaceURI, prefix, localName, value string) error {
	if !isValidAttributeLocalName(localName) {
		return errInvalidCharacter("invalid attribute local name: " + localName)
	}
	n := e.n()
	name := attrName(e.poolIntern, namespaceURI, localName)
	old, existed := n.elem.attrs.Set(name, value)
	n.generation++
	if n.ownerDoc != nil {
		n.ownerDoc.bumpGeneration()
	}
	if localName == "class" {
		e.recomputeClassBloom(value)
	}
	if localName == "id" && n.ownerDoc != nil {
		e.reindexID(old, value, existed)
	}
	if n.ownerDoc != nil && n.ownerDoc.node.docu.mutationSink != nil {
		var oldVal string
		if existed {
			oldVal = old
		}
		n.ownerDoc.node.docu.mutationSink.OnAttributeMutation(n, namespaceURI, localName, oldVal, value)
	}
	_ = prefix
	return nil
}

func (e *Element) reindexID(oldValue, newValue string, hadOld bool) {
	ids := e.n().ownerDoc.node.docu.ids
	if hadOld && oldValue != "" {
		if cur, ok := ids[oldValue]; ok && cur == e.n() {
			delete(ids, oldValue)
		}
	}
	if newValue != "" {
		ids[newValue] = e.n()
	}
}

func (e *Element) recomputeClassBloom(classAttr string) {
	tokens := strings.Fields(classAttr)
	e.n().elem.classBloom = bloom.FromTokens(tokens)
}

// RemoveAttribute removes the non-namespaced attribute localName, if
// present.
func (e *Element) RemoveAttribute(localName string) {
	e.RemoveAttributeNS("", localName)
}

// RemoveAttributeNS removes the attribute identified by (namespaceURI,
// localName), if present.
func (e *Element) RemoveAttributeNS(namespaceURI, localName string) {
	n := e.n()
	name := attrName(e.poolIntern, namespaceURI, localName)
	old, existed := n.elem.attrs.Remove(name)
	if !existed {
		return
	}
	n.generation++
	if n.ownerDoc != nil {
		n.ownerDoc.bumpGeneration()
	}
	if localName == "class" {
		e.recomputeClassBloom("")
	}
	if localName == "id" && n.ownerDoc != nil {
		e.reindexID(old, "", true)
	}
	if n.ownerDoc != nil && n.ownerDoc.node.docu.mutationSink != nil {
		n.ownerDoc.node.docu.mutationSink.OnAttributeMutation(n, namespaceURI, localName, old, "")
	}
}

// ToggleAttribute flips the presence of the boolean-style attribute
// localName, honoring an explicit force value when provided.
func (e *Element) ToggleAttribute(localName string, force *bool) bool {
	has := e.HasAttribute(localName)
	want := !has
	if force != nil {
		want = *force
	}
	if want && !has {
		e.SetAttribute(localName, "")
		return true
	}
	if !want && has {
		e.RemoveAttribute(localName)
		return false
	}
	return has
}

// ID returns the element's id attribute, or "".
func (e *Element) ID() string {
	v, _ := e.GetAttribute("id")
	return v
}

// SetID sets the element's id attribute.
func (e *Element) SetID(id string) { e.SetAttribute("id", id) }

// ClassName returns the raw class attribute value.
func (e *Element) ClassName() string {
	v, _ := e.GetAttribute("class")
	return v
}

// SetClassName sets the class attribute to the given raw value.
func (e *Element) SetClassName(v string) { e.SetAttribute("class", v) }

// ClassList returns the whitespace-separated tokens of the class
// attribute, in source order, duplicates included, matching DOMTokenList
// iteration semantics minus the live-view identity.
func (e *Element) ClassList() []string {
	return strings.Fields(e.ClassName())
}

// ContainsClass reports whether token is one of the element's class
// tokens, using the per-element Bloom filter to short-circuit the
// common negative case before falling back to a real scan.
func (e *Element) ContainsClass(token string) bool {
	bf := e.n().elem.classBloom
	if bf != nil && !bf.MightContain(token) {
		return false
	}
	for _, t := range e.ClassList() {
		if t == token {
			return true
		}
	}
	return false
}

// GetAttributeNode returns the live Attr node for the non-namespaced
// attribute localName, creating and caching it on first access, or nil
// if the attribute is not present.
func (e *Element) GetAttributeNode(localName string) *Attr {
	return e.GetAttributeNodeNS("", localName)
}

// GetAttributeNodeNS returns the live Attr node for (namespaceURI,
// localName), creating and caching it on first access, or nil if the
// attribute is not present.
func (e *Element) GetAttributeNodeNS(namespaceURI, localName string) *Attr {
	n := e.n()
	name := attrName(e.poolIntern, namespaceURI, localName)
	if !n.elem.attrs.Has(name) {
		return nil
	}
	rare := n.rareData()
	if rare.attrNodes == nil {
		rare.attrNodes = make(map[attrstore.Name]*Node)
	}
	if existing, ok := rare.attrNodes[name]; ok {
		return (*Attr)(existing)
	}
	attrNode := n.ownerDoc.CreateAttributeNS(namespaceURI, "", localName).n()
	attrNode.attrOwner = n
	rare.attrNodes[name] = attrNode
	return (*Attr)(attrNode)
}

// Attributes returns a snapshot of the element's attributes in
// insertion order.
func (e *Element) Attributes() []attrstore.Entry {
	return e.n().elem.attrs.All()
}

func isValidAttributeLocalName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == ' ' || r == '"' || r == '\'' || r == '>' || r == '/' || r == '=' {
			return false
		}
	}
	return true
}

// Children returns the element's element children, in tree order.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.n().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			out = append(out, (*Element)(c))
		}
	}
	return out
}

// FirstElementChild returns the first child that is an Element, or nil.
func (e *Element) FirstElementChild() *Element {
	if el := e.n().firstElementChild(); el != nil {
		return (*Element)(el)
	}
	return nil
}

// LastElementChild returns the last child that is an Element, or nil.
func (e *Element) LastElementChild() *Element {
	for c := e.n().lastChild; c != nil; c = c.prevSibling {
		if c.nodeType == ElementNode {
			return (*Element)(c)
		}
	}
	return nil
}

// ChildElementCount returns the number of element children.
func (e *Element) ChildElementCount() int {
	n := 0
	for c := e.n().firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			n++
		}
	}
	return n
}

// IsHost reports whether this element has an attached ShadowRoot.
func (e *Element) IsHost() bool { return e.n().flags&flagIsHost != 0 }

// The methods below implement selector.Element, letting *Element be
// matched against a parsed selector list without selector importing
// this package.

// ElementID returns the element's id attribute, or "".
func (e *Element) ElementID() string { return e.ID() }

// ClassTokens returns the element's class attribute tokens.
func (e *Element) ClassTokens() []string { return e.ClassList() }

// HasClassToken reports whether token is one of the element's class
// tokens, via the Bloom-filter-accelerated ContainsClass.
func (e *Element) HasClassToken(token string) bool { return e.ContainsClass(token) }

// Attr returns the non-namespaced attribute named name.
func (e *Element) Attr(name string) (string, bool) { return e.GetAttribute(name) }

// ParentElement returns e's parent when it is itself an Element, or
// nil. DOM's parentElement does not skip over a non-Element parent.
func (e *Element) ParentElement() selector.Element {
	p := e.n().parent
	if p != nil && p.nodeType == ElementNode {
		return (*Element)(p)
	}
	return nil
}

// PreviousElementSibling returns the nearest preceding sibling that is
// an Element, or nil.
func (e *Element) PreviousElementSibling() selector.Element {
	for s := e.n().prevSibling; s != nil; s = s.prevSibling {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}

// NextElementSibling returns the nearest following sibling that is an
// Element, or nil.
func (e *Element) NextElementSibling() selector.Element {
	for s := e.n().nextSibling; s != nil; s = s.nextSibling {
		if s.nodeType == ElementNode {
			return (*Element)(s)
		}
	}
	return nil
}

// IsEmpty reports whether the element has no children at all.
func (e *Element) IsEmpty() bool { return !e.n().HasChildNodes() }

// FirstChildElement returns e's first child that is itself an Element,
// or nil. Used only by selector's :has() descendant search.
func (e *Element) FirstChildElement() selector.Element {
	c := e.FirstElementChild()
	if c == nil {
		return nil
	}
	return c
}

// ElementIndex returns e's 1-based position among its parent's element
// children, in source order.
func (e *Element) ElementIndex() int {
	i := 1
	for s := e.n().prevSibling; s != nil; s = s.prevSibling {
		if s.nodeType == ElementNode {
			i++
		}
	}
	return i
}

// ElementCount returns the number of element children of e's parent,
// including e itself (1 if e has no parent).
func (e *Element) ElementCount() int {
	p := e.n().parent
	if p == nil {
		return 1
	}
	n := 0
	for c := p.firstChild; c != nil; c = c.nextSibling {
		if c.nodeType == ElementNode {
			n++
		}
	}
	return n
}

// ShadowRoot returns the element's attached shadow root, honoring mode:
// a closed shadow root is only returned to callers that already hold a
// reference to it directly (AttachShadow's return value), not via this
// accessor, matching the open/closed visibility rule of spec.md §4.8.
func (e *Element) ShadowRoot() *ShadowRoot {
	if e.n().rare == nil || e.n().rare.shadowRoot == nil {
		return nil
	}
	sr := e.n().rare.shadowRoot
	if sr.shadow.mode == ShadowRootClosed {
		return nil
	}
	return (*ShadowRoot)(sr)
}
