// Package domrange implements the tree engine's Range, StaticRange, and
// NodeIterator component: boundary points into a node tree, the
// mutating range operations, and a static-snapshot variant, per
// spec.md §4.10.
package domrange

import (
	"strings"

	dom "github.com/moznion-helium/domcore"
)

// boundaryPoint is a (container, offset) pair. For a CharacterData
// container, offset is a UTF-16 code unit count; otherwise it is a
// child-node index, per the WHATWG boundary point definition.
type boundaryPoint struct {
	node   *dom.Node
	offset int
}

func isCharacterData(n *dom.Node) bool {
	switch n.NodeType() {
	case dom.TextNode, dom.CommentNode, dom.CDATASectionNode, dom.ProcessingInstructionNode:
		return true
	default:
		return false
	}
}

func maxOffset(n *dom.Node) int {
	if isCharacterData(n) {
		return dom.DataLength(n)
	}
	return n.ChildCount()
}

// Range is a mutable pair of boundary points into a single node tree,
// changed only through its own methods. The mutation engine does not
// adjust a Range's boundary points when the tree changes; a Range whose
// nodes have since moved keeps its old (container, offset) pairs.
type Range struct {
	start boundaryPoint
	end   boundaryPoint
}

// NewRange creates a collapsed Range at the start of root (or, if root
// is nil, with no boundary points set — callers must call SetStart and
// SetEnd before using it).
func NewRange(root *dom.Node) *Range {
	r := &Range{}
	if root != nil {
		r.start = boundaryPoint{node: root, offset: 0}
		r.end = boundaryPoint{node: root, offset: 0}
	}
	return r
}

func validateOffset(n *dom.Node, offset int) error {
	if offset < 0 || offset > maxOffset(n) {
		return dom.ErrIndexSize("offset out of range")
	}
	return nil
}

// SetStart sets the range's start boundary point.
func (r *Range) SetStart(node *dom.Node, offset int) error {
	if err := validateOffset(node, offset); err != nil {
		return err
	}
	r.start = boundaryPoint{node: node, offset: offset}
	if r.boundaryPointPosition(r.end, r.start) < 0 {
		r.end = r.start
	}
	return nil
}

// SetEnd sets the range's end boundary point.
func (r *Range) SetEnd(node *dom.Node, offset int) error {
	if err := validateOffset(node, offset); err != nil {
		return err
	}
	r.end = boundaryPoint{node: node, offset: offset}
	if r.boundaryPointPosition(r.end, r.start) < 0 {
		r.start = r.end
	}
	return nil
}

// SetStartBefore sets the range to start immediately before node.
func (r *Range) SetStartBefore(node *dom.Node) error {
	p := node.ParentNode()
	if p == nil {
		return dom.ErrInvalidNodeType("node has no parent")
	}
	return r.SetStart(p, node.Index())
}

// SetStartAfter sets the range to start immediately after node.
func (r *Range) SetStartAfter(node *dom.Node) error {
	p := node.ParentNode()
	if p == nil {
		return dom.ErrInvalidNodeType("node has no parent")
	}
	return r.SetStart(p, node.Index()+1)
}

// SetEndBefore sets the range to end immediately before node.
func (r *Range) SetEndBefore(node *dom.Node) error {
	p := node.ParentNode()
	if p == nil {
		return dom.ErrInvalidNodeType("node has no parent")
	}
	return r.SetEnd(p, node.Index())
}

// SetEndAfter sets the range to end immediately after node.
func (r *Range) SetEndAfter(node *dom.Node) error {
	p := node.ParentNode()
	if p == nil {
		return dom.ErrInvalidNodeType("node has no parent")
	}
	return r.SetEnd(p, node.Index()+1)
}

// Collapse collapses the range to its start (or end, if toEnd).
func (r *Range) Collapse(toEnd bool) {
	if toEnd {
		r.start = r.end
	} else {
		r.end = r.start
	}
}

// SelectNode sets the range to exactly contain node as a child of its
// parent.
func (r *Range) SelectNode(node *dom.Node) error {
	p := node.ParentNode()
	if p == nil {
		return dom.ErrInvalidNodeType("node has no parent")
	}
	idx := node.Index()
	r.start = boundaryPoint{node: p, offset: idx}
	r.end = boundaryPoint{node: p, offset: idx + 1}
	return nil
}

// SelectNodeContents sets the range to exactly contain node's children.
func (r *Range) SelectNodeContents(node *dom.Node) {
	r.start = boundaryPoint{node: node, offset: 0}
	r.end = boundaryPoint{node: node, offset: maxOffset(node)}
}

// StartContainer, StartOffset, EndContainer, EndOffset expose the
// range's boundary points.
func (r *Range) StartContainer() *dom.Node { return r.start.node }
func (r *Range) StartOffset() int          { return r.start.offset }
func (r *Range) EndContainer() *dom.Node   { return r.end.node }
func (r *Range) EndOffset() int            { return r.end.offset }

// Collapsed reports whether the range's two boundary points are equal.
func (r *Range) Collapsed() bool {
	return r.start.node == r.end.node && r.start.offset == r.end.offset
}

// CommonAncestorContainer returns the deepest node that is an inclusive
// ancestor of both boundary points' containers.
func (r *Range) CommonAncestorContainer() *dom.Node {
	return commonAncestor(r.start.node, r.end.node)
}

func commonAncestor(a, b *dom.Node) *dom.Node {
	ancestors := map[*dom.Node]bool{}
	for cur := a; cur != nil; cur = cur.ParentNode() {
		ancestors[cur] = true
	}
	for cur := b; cur != nil; cur = cur.ParentNode() {
		if ancestors[cur] {
			return cur
		}
	}
	return nil
}

// boundaryPointPosition returns -1, 0, or 1 according to whether bp1
// precedes, equals, or follows bp2 in tree order.
func (r *Range) boundaryPointPosition(bp1, bp2 boundaryPoint) int {
	return comparePoints(bp1, bp2)
}

func comparePoints(a, b boundaryPoint) int {
	if a.node == b.node {
		switch {
		case a.offset < b.offset:
			return -1
		case a.offset > b.offset:
			return 1
		default:
			return 0
		}
	}
	pos := a.node.CompareDocumentPosition(b.node)
	switch {
	case pos&dom.DocumentPositionContainedBy != 0:
		// a.node is an ancestor of b.node: compare a's offset against the
		// index, among a's children, of the child that is an
		// ancestor-or-self of b.node.
		childIdx := indexOfDescendant(a.node, b.node)
		if a.offset <= childIdx {
			return -1
		}
		return 1
	case pos&dom.DocumentPositionContains != 0:
		return -comparePoints(b, a)
	case pos&dom.DocumentPositionFollowing != 0:
		return -1
	case pos&dom.DocumentPositionPreceding != 0:
		return 1
	default:
		return 0
	}
}

// indexOfDescendant returns the index, among ancestor's children, of
// the child that is an inclusive ancestor of descendant.
func indexOfDescendant(ancestor, descendant *dom.Node) int {
	cur := descendant
	for cur.ParentNode() != ancestor {
		cur = cur.ParentNode()
		if cur == nil {
			return -1
		}
	}
	return cur.Index()
}

// CompareBoundaryPoints compares this range's boundary points against
// other's, per the WHATWG how-to-compare constants: 0=START_TO_START,
// 1=START_TO_END, 2=END_TO_END, 3=END_TO_START.
func (r *Range) CompareBoundaryPoints(how int, other *Range) (int, error) {
	switch how {
	case 0:
		return comparePoints(r.start, other.start), nil
	case 1:
		return comparePoints(r.start, other.end), nil
	case 2:
		return comparePoints(r.end, other.end), nil
	case 3:
		return comparePoints(r.end, other.start), nil
	default:
		return 0, dom.ErrNotSupported("unknown comparison mode")
	}
}

// DeleteContents removes the range's contents from the tree, collapsing
// the range to its start.
func (r *Range) DeleteContents() error {
	_, err := r.extractOrClone(true, false)
	if err != nil {
		return err
	}
	r.end = r.start
	return nil
}

// ExtractContents removes the range's contents from the tree and
// returns them as a new DocumentFragment, collapsing the range to its
// start.
func (r *Range) ExtractContents() (*dom.DocumentFragment, error) {
	frag, err := r.extractOrClone(true, true)
	if err != nil {
		return nil, err
	}
	r.end = r.start
	return frag, nil
}

// CloneContents returns a new DocumentFragment containing copies of the
// range's contents, without modifying the tree.
func (r *Range) CloneContents() (*dom.DocumentFragment, error) {
	return r.extractOrClone(false, true)
}

// extractOrClone implements a simplified version of the WHATWG
// "extract"/"clone the contents of a range" algorithms: text nodes at
// the boundary are split/trimmed, and every node fully contained
// between the split points is either moved (extract) or deep-cloned
// (clone) into the result fragment, in tree order. Boundary splitting
// covers both the same-container case and the common case of distinct
// CharacterData boundary nodes sharing the range's common ancestor as
// their direct parent; it does not attempt the full
// partial-containment-of-non-text-ancestors re-nesting the standard
// describes for ranges whose two CharacterData boundaries sit at
// different depths (see DESIGN.md's Open Question on this).
func (r *Range) extractOrClone(remove, collect bool) (*dom.DocumentFragment, error) {
	doc := r.start.node.OwnerDocument()
	if doc == nil {
		if r.start.node.NodeType() == dom.DocumentNode {
			return nil, dom.ErrNotSupported("cannot extract a Document's own contents this way")
		}
		return nil, dom.ErrInvalidState("range container has no owner document")
	}
	var frag *dom.DocumentFragment
	if collect {
		frag = doc.CreateDocumentFragment()
	}

	if r.Collapsed() {
		return frag, nil
	}

	if r.start.node == r.end.node && isCharacterData(r.start.node) {
		data, _ := dom.SubstringData(r.start.node, r.start.offset, r.end.offset-r.start.offset)
		if collect {
			t := doc.CreateTextNode(data)
			dom.AppendChild(frag.AsNode(), t.AsNode())
		}
		if remove {
			dom.DeleteData(r.start.node, r.start.offset, r.end.offset-r.start.offset)
		}
		return frag, nil
	}

	ancestor := r.CommonAncestorContainer()

	// A partially-selected start CharacterData node sharing ancestor as
	// its parent: split off its tail (from the start offset onward)
	// ahead of the fully-contained middle nodes.
	if isCharacterData(r.start.node) && r.start.node.ParentNode() == ancestor {
		n := r.start.node
		length := dom.DataLength(n)
		if r.start.offset < length {
			tail, _ := dom.SubstringData(n, r.start.offset, length-r.start.offset)
			if collect {
				t := doc.CreateTextNode(tail)
				dom.AppendChild(frag.AsNode(), t.AsNode())
			}
			if remove {
				dom.DeleteData(n, r.start.offset, length-r.start.offset)
			}
		}
	}

	startNodes := containedTopLevelNodes(r)
	for _, n := range startNodes {
		if remove {
			if p := n.ParentNode(); p != nil {
				dom.RemoveChild(p, n)
			}
		}
		if collect && remove {
			dom.AppendChild(frag.AsNode(), n)
		} else if collect {
			dom.AppendChild(frag.AsNode(), dom.CloneNode(n, true))
		}
	}

	// A partially-selected end CharacterData node sharing ancestor as
	// its parent: split off its head (up to the end offset) after the
	// fully-contained middle nodes.
	if isCharacterData(r.end.node) && r.end.node.ParentNode() == ancestor {
		n := r.end.node
		if r.end.offset > 0 {
			head, _ := dom.SubstringData(n, 0, r.end.offset)
			if collect {
				t := doc.CreateTextNode(head)
				dom.AppendChild(frag.AsNode(), t.AsNode())
			}
			if remove {
				dom.DeleteData(n, 0, r.end.offset)
			}
		}
	}

	return frag, nil
}

// containedTopLevelNodes returns, in tree order, the children of the
// range's common ancestor container that are entirely within [start,
// end): the top-level nodes a clone/extract operation should act on.
func containedTopLevelNodes(r *Range) []*dom.Node {
	ancestor := r.CommonAncestorContainer()
	var out []*dom.Node
	for c := ancestor.FirstChild(); c != nil; c = c.NextSibling() {
		if pointBeforeOrAtNode(r.start, c) && pointAfterOrAtNode(r.end, c) {
			out = append(out, c)
		}
	}
	return out
}

func pointBeforeOrAtNode(bp boundaryPoint, n *dom.Node) bool {
	idx := n.Index()
	p := n.ParentNode()
	return comparePoints(bp, boundaryPoint{node: p, offset: idx}) <= 0
}

func pointAfterOrAtNode(bp boundaryPoint, n *dom.Node) bool {
	idx := n.Index()
	p := n.ParentNode()
	return comparePoints(bp, boundaryPoint{node: p, offset: idx + 1}) >= 0
}

// hasPartiallyContainedNonTextNode reports whether some non-CharacterData
// node is an inclusive ancestor of exactly one of the range's two
// boundary nodes (the WHATWG definition of "partially contained"),
// stopping the ancestor walk at the range's common ancestor container,
// which by construction contains both boundaries fully.
func hasPartiallyContainedNonTextNode(r *Range) bool {
	ancestor := r.CommonAncestorContainer()
	partial := func(boundary, other *dom.Node) bool {
		for cur := boundary; cur != nil && cur != ancestor; cur = cur.ParentNode() {
			if isCharacterData(cur) {
				continue
			}
			if cur == other || cur.Contains(other) {
				continue
			}
			return true
		}
		return false
	}
	return partial(r.start.node, r.end.node) || partial(r.end.node, r.start.node)
}

// InsertNode inserts node at the range's start, per Range.insertNode. If
// the start container is a Text node and the offset falls strictly
// inside its data, the text is split there first so node lands between
// the two halves.
func (r *Range) InsertNode(node *dom.Node) error {
	container := r.start.node
	if isCharacterData(container) {
		p := container.ParentNode()
		if p == nil {
			return dom.ErrInvalidNodeType("character data container has no parent")
		}
		if container.NodeType() == dom.TextNode && r.start.offset > 0 && r.start.offset < dom.DataLength(container) {
			text := (*dom.Text)(container)
			tail, err := text.SplitText(r.start.offset)
			if err != nil {
				return err
			}
			_, err = dom.InsertBefore(p, node, tail.AsNode())
			return err
		}
		ref := container
		if r.start.offset > 0 {
			ref = container.NextSibling()
		}
		_, err := dom.InsertBefore(p, node, ref)
		return err
	}
	ref := container.ChildAt(r.start.offset)
	_, err := dom.InsertBefore(container, node, ref)
	return err
}

// SurroundContents wraps the range's contents in newParent, which must
// currently have no children, per Range.surroundContents. It raises
// InvalidStateError if the range partially selects a non-text node (an
// element that is an inclusive ancestor of one of the range's boundary
// points but not the other), since such a node cannot be unambiguously
// split between the wrapper and its surroundings.
func (r *Range) SurroundContents(newParent *dom.Node) error {
	if newParent.FirstChild() != nil {
		return dom.ErrNotSupported("surroundContents requires an empty wrapper node")
	}
	if hasPartiallyContainedNonTextNode(r) {
		return dom.ErrInvalidState("range partially contains a non-text node")
	}
	frag, err := r.ExtractContents()
	if err != nil {
		return err
	}
	for c := frag.AsNode().FirstChild(); c != nil; {
		next := c.NextSibling()
		if _, err := dom.AppendChild(newParent, c); err != nil {
			return err
		}
		c = next
	}
	return r.InsertNode(newParent)
}

// String returns the concatenation of the character data of every Text
// node wholly or partially within the range, in tree order, trimmed to
// the range's boundary points within the start/end Text nodes.
func (r *Range) String() string {
	var sb strings.Builder
	if r.start.node == r.end.node && isCharacterData(r.start.node) {
		data, _ := dom.SubstringData(r.start.node, r.start.offset, r.end.offset-r.start.offset)
		return data
	}
	var walk func(*dom.Node, bool) bool
	inRange := false
	walk = func(n *dom.Node, _ bool) bool {
		if n == r.start.node && isCharacterData(n) {
			inRange = true
		}
		if n.NodeType() == dom.TextNode && inRange {
			data := dom.TextContent(n)
			if n == r.start.node {
				data, _ = dom.SubstringData(n, r.start.offset, dom.DataLength(n)-r.start.offset)
			}
			if n == r.end.node {
				data, _ = dom.SubstringData(n, 0, r.end.offset)
			}
			sb.WriteString(data)
		}
		i := 0
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if n == r.start.node && i == r.start.offset {
				inRange = true
			}
			if n == r.end.node && i == r.end.offset {
				return true
			}
			if walk(c, false) {
				return true
			}
			i++
		}
		if n == r.start.node {
			inRange = true
		}
		if n == r.end.node {
			return true
		}
		return false
	}
	root := r.CommonAncestorContainer()
	walk(root, true)
	return sb.String()
}

// CloneRange returns an independent copy of r's boundary points.
func (r *Range) CloneRange() *Range {
	cp := *r
	return &cp
}
