package dom

import "unicode/utf16"

// CharacterData-kind wrapper types. All four share the same UTF-16
// offset semantics over UTF-8-backed storage (spec.md §4.11): offsets
// and lengths passed across the API are UTF-16 code unit counts, even
// though charData.data is stored as an ordinary Go string.

// Text is a Node known to be a TextNode.
type Text Node

// Comment is a Node known to be a CommentNode.
type Comment Node

// CDATASection is a Node known to be a CDATASectionNode.
type CDATASection Node

// ProcessingInstruction is a Node known to be a ProcessingInstructionNode.
type ProcessingInstruction Node

func (t *Text) n() *Node                  { return (*Node)(t) }
func (c *Comment) n() *Node               { return (*Node)(c) }
func (c *CDATASection) n() *Node          { return (*Node)(c) }
func (p *ProcessingInstruction) n() *Node { return (*Node)(p) }

// AsNode accessors, one per wrapper, matching Element.AsNode.
func (t *Text) AsNode() *Node                  { return (*Node)(t) }
func (c *Comment) AsNode() *Node               { return (*Node)(c) }
func (c *CDATASection) AsNode() *Node          { return (*Node)(c) }
func (p *ProcessingInstruction) AsNode() *Node { return (*Node)(p) }

// Data returns the node's character data.
func (t *Text) Data() string                  { return t.n().char.data }
func (c *Comment) Data() string               { return c.n().char.data }
func (c *CDATASection) Data() string          { return c.n().char.data }
func (p *ProcessingInstruction) Data() string { return p.n().char.data }

// Target returns the processing instruction's target.
func (p *ProcessingInstruction) Target() string { return p.n().char.target }

// Length returns the UTF-16 code unit length of the node's data.
func (t *Text) Length() int                  { return utf16Len(t.n().char.data) }
func (c *Comment) Length() int               { return utf16Len(c.n().char.data) }
func (c *CDATASection) Length() int          { return utf16Len(c.n().char.data) }
func (p *ProcessingInstruction) Length() int { return utf16Len(p.n().char.data) }

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += len(utf16.Encode([]rune{r}))
	}
	return n
}

// utf16ToByteOffset converts a UTF-16 code unit offset into the
// corresponding byte offset in s's UTF-8 encoding.
func utf16ToByteOffset(s string, u16Offset int) int {
	if u16Offset <= 0 {
		return 0
	}
	units := 0
	for i, r := range s {
		n := len(utf16.Encode([]rune{r}))
		if units+n > u16Offset {
			return i
		}
		units += n
		if units == u16Offset {
			return i + runeByteLen(r)
		}
	}
	return len(s)
}

func runeByteLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

func setData(n *Node, newData string) {
	old := n.char.data
	n.char.data = newData
	n.generation++
	if n.ownerDoc != nil {
		doc := n.ownerDoc.node.docu
		doc.generation++
		if doc.mutationSink != nil {
			doc.mutationSink.OnCharacterDataMutation(n, old, newData)
		}
	}
}

// SetData replaces the node's entire character data.
func (t *Text) SetData(v string)                  { setData(t.n(), v) }
func (c *Comment) SetData(v string)               { setData(c.n(), v) }
func (c *CDATASection) SetData(v string)          { setData(c.n(), v) }
func (p *ProcessingInstruction) SetData(v string) { setData(p.n(), v) }

// SubstringData returns the UTF-16 substring [offset, offset+count) of
// the node's data, per spec.md's UTF-16 offset invariant.
func SubstringData(n *Node, offset, count int) (string, error) {
	if offset < 0 || offset > utf16Len(n.char.data) {
		return "", errIndexSize("offset out of range")
	}
	start := utf16ToByteOffset(n.char.data, offset)
	end := utf16ToByteOffset(n.char.data, offset+count)
	if end > len(n.char.data) {
		end = len(n.char.data)
	}
	return n.char.data[start:end], nil
}

// AppendData appends data to the node's character data.
func AppendData(n *Node, data string) { setData(n, n.char.data+data) }

// InsertData inserts data at the UTF-16 offset into the node's data.
func InsertData(n *Node, offset int, data string) error {
	if offset < 0 || offset > utf16Len(n.char.data) {
		return errIndexSize("offset out of range")
	}
	b := utf16ToByteOffset(n.char.data, offset)
	setData(n, n.char.data[:b]+data+n.char.data[b:])
	return nil
}

// DeleteData removes the UTF-16 range [offset, offset+count) from the
// node's data.
func DeleteData(n *Node, offset, count int) error {
	if offset < 0 || offset > utf16Len(n.char.data) {
		return errIndexSize("offset out of range")
	}
	start := utf16ToByteOffset(n.char.data, offset)
	end := utf16ToByteOffset(n.char.data, offset+count)
	if end > len(n.char.data) {
		end = len(n.char.data)
	}
	setData(n, n.char.data[:start]+n.char.data[end:])
	return nil
}

// ReplaceData replaces the UTF-16 range [offset, offset+count) with
// data.
func ReplaceData(n *Node, offset, count int, data string) error {
	if offset < 0 || offset > utf16Len(n.char.data) {
		return errIndexSize("offset out of range")
	}
	start := utf16ToByteOffset(n.char.data, offset)
	end := utf16ToByteOffset(n.char.data, offset+count)
	if end > len(n.char.data) {
		end = len(n.char.data)
	}
	setData(n, n.char.data[:start]+data+n.char.data[end:])
	return nil
}

// SplitText splits the Text node at the UTF-16 offset, inserting a new
// Text node holding the tail immediately after t and truncating t to
// the head, per spec.md's Text.splitText.
func (t *Text) SplitText(offset int) (*Text, error) {
	n := t.n()
	if offset < 0 || offset > utf16Len(n.char.data) {
		return nil, errIndexSize("offset out of range")
	}
	b := utf16ToByteOffset(n.char.data, offset)
	head, tail := n.char.data[:b], n.char.data[b:]
	setData(n, head)
	newText := n.ownerDoc.CreateTextNode(tail)
	if n.parent != nil {
		if err := insertBefore(n.parent, newText.n(), n.nextSibling); err != nil {
			return nil, err
		}
	}
	return newText, nil
}

// WholeText returns the concatenation of t's data with every
// contiguous Text-node sibling's data, in tree order.
func (t *Text) WholeText() string {
	n := t.n()
	start := n
	for start.prevSibling != nil && start.prevSibling.nodeType == TextNode {
		start = start.prevSibling
	}
	s := ""
	for c := start; c != nil && c.nodeType == TextNode; c = c.nextSibling {
		s += c.char.data
	}
	return s
}
