package dom

// liveCollection is a cached snapshot behind getElementsByTagName and
// getElementsByClassName: recomputed lazily, the next time it is read,
// whenever the document's generation counter has advanced since the
// snapshot was taken (spec.md §4.5 / §9's generation-counter design
// note), rather than incrementally maintained on every mutation.
type liveCollection struct {
	generation uint64
	nodes      []*Node
}

func (d *Document) tagCollection(tagName string) []*Node {
	doc := d.node.docu
	if c, ok := doc.tagIndex[tagName]; ok && c.generation == doc.generation {
		return c.nodes
	}
	var nodes []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode && (tagName == "*" || c.name == tagName) {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	walk(d.node)
	doc.tagIndex[tagName] = &liveCollection{generation: doc.generation, nodes: nodes}
	return nodes
}

func (d *Document) classCollection(className string) []*Node {
	doc := d.node.docu
	if c, ok := doc.classIndex[className]; ok && c.generation == doc.generation {
		return c.nodes
	}
	var nodes []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode && (*Element)(c).ContainsClass(className) {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	walk(d.node)
	doc.classIndex[className] = &liveCollection{generation: doc.generation, nodes: nodes}
	return nodes
}

// GetElementsByTagName returns every Element descendant of root whose
// qualified name is tagName ("*" matches all), in tree order. The
// result is a point-in-time snapshot, recomputed from the cache
// whenever the document has mutated since the last call.
func (d *Document) GetElementsByTagName(tagName string) []*Element {
	return wrapElements(d.tagCollection(tagName))
}

// GetElementsByTagNameNS returns every Element descendant whose
// namespace URI and local name match (namespaceURI, localName); "*"
// matches any namespace or any local name.
func (d *Document) GetElementsByTagNameNS(namespaceURI, localName string) []*Element {
	return wrapElements(subtreeByTagNS(d.node, namespaceURI, localName))
}

// GetElementsByClassName returns every Element descendant carrying
// className as one of its class tokens, in tree order.
func (d *Document) GetElementsByClassName(className string) []*Element {
	return wrapElements(d.classCollection(className))
}

// GetElementsByTagName returns every Element descendant of e (not
// including e itself) whose qualified name is tagName ("*" matches
// all), in tree order. Unlike the Document-level method, this is a
// fresh walk of e's own subtree rather than a document-wide cached
// collection, since the cache is keyed document-wide and a
// subtree-scoped filter over it would still need a full scan to
// exclude nodes outside e.
func (e *Element) GetElementsByTagName(tagName string) []*Element {
	return wrapElements(subtreeByTag(e.n(), tagName))
}

// GetElementsByTagNameNS returns every Element descendant of e whose
// namespace URI and local name match (namespaceURI, localName); "*"
// matches any namespace or any local name.
func (e *Element) GetElementsByTagNameNS(namespaceURI, localName string) []*Element {
	return wrapElements(subtreeByTagNS(e.n(), namespaceURI, localName))
}

// GetElementsByClassName returns every Element descendant of e carrying
// className as one of its class tokens, in tree order.
func (e *Element) GetElementsByClassName(className string) []*Element {
	var nodes []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode && (*Element)(c).ContainsClass(className) {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	walk(e.n())
	return wrapElements(nodes)
}

func subtreeByTag(root *Node, tagName string) []*Node {
	var nodes []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode && (tagName == "*" || c.name == tagName) {
				nodes = append(nodes, c)
			}
			walk(c)
		}
	}
	walk(root)
	return nodes
}

func subtreeByTagNS(root *Node, namespaceURI, localName string) []*Node {
	var nodes []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		for c := n.firstChild; c != nil; c = c.nextSibling {
			if c.nodeType == ElementNode {
				el := c.elem
				nsOK := namespaceURI == "*" || el.namespaceURI == namespaceURI
				nameOK := localName == "*" || el.localName == localName
				if nsOK && nameOK {
					nodes = append(nodes, c)
				}
			}
			walk(c)
		}
	}
	walk(root)
	return nodes
}

func wrapElements(nodes []*Node) []*Element {
	out := make([]*Element, len(nodes))
	for i, n := range nodes {
		out[i] = (*Element)(n)
	}
	return out
}

// selectorCacheSize bounds the number of distinct selector texts kept
// parsed per document before the oldest is evicted.
const selectorCacheSize = 256
