package domrange

import dom "github.com/moznion-helium/domcore"

// StaticRange is an immutable snapshot of two boundary points, per
// spec.md §4.10. Unlike Range, its boundary points are never adjusted
// by tree mutation — IsValid lets a caller detect, after the fact,
// whether the snapshot still describes a coherent position.
type StaticRange struct {
	startNode   *dom.Node
	startOffset int
	endNode     *dom.Node
	endOffset   int
}

// NewStaticRange constructs a StaticRange from explicit boundary
// points, without validating them against the current tree shape.
func NewStaticRange(startNode *dom.Node, startOffset int, endNode *dom.Node, endOffset int) *StaticRange {
	return &StaticRange{startNode: startNode, startOffset: startOffset, endNode: endNode, endOffset: endOffset}
}

func (sr *StaticRange) StartContainer() *dom.Node { return sr.startNode }
func (sr *StaticRange) StartOffset() int          { return sr.startOffset }
func (sr *StaticRange) EndContainer() *dom.Node   { return sr.endNode }
func (sr *StaticRange) EndOffset() int            { return sr.endOffset }

// Collapsed reports whether the range's two boundary points are equal.
func (sr *StaticRange) Collapsed() bool {
	return sr.startNode == sr.endNode && sr.startOffset == sr.endOffset
}

// IsValid reports whether the range's boundary points still describe a
// coherent position: both containers belong to the same node tree,
// neither container is a doctype or attribute, and both offsets are
// within range for their container, per spec.md's static-range validity
// check.
func (sr *StaticRange) IsValid() bool {
	if sr.startNode == nil || sr.endNode == nil {
		return false
	}
	if !isValidRangeContainer(sr.startNode) || !isValidRangeContainer(sr.endNode) {
		return false
	}
	if sr.startNode.GetRootNode(true) != sr.endNode.GetRootNode(true) {
		return false
	}
	if sr.startOffset < 0 || sr.startOffset > maxOffset(sr.startNode) {
		return false
	}
	if sr.endOffset < 0 || sr.endOffset > maxOffset(sr.endNode) {
		return false
	}
	start := boundaryPoint{node: sr.startNode, offset: sr.startOffset}
	end := boundaryPoint{node: sr.endNode, offset: sr.endOffset}
	return comparePoints(start, end) <= 0
}

func isValidRangeContainer(n *dom.Node) bool {
	switch n.NodeType() {
	case dom.DocumentTypeNode, dom.AttributeNode:
		return false
	default:
		return true
	}
}

// ToRange returns a live Range with the same boundary points, or an
// error if the StaticRange is not currently valid.
func (sr *StaticRange) ToRange() (*Range, error) {
	if !sr.IsValid() {
		return nil, dom.ErrInvalidState("static range boundary points are no longer valid")
	}
	r := &Range{
		start: boundaryPoint{node: sr.startNode, offset: sr.startOffset},
		end:   boundaryPoint{node: sr.endNode, offset: sr.endOffset},
	}
	return r, nil
}
