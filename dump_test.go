package dom

import (
	"fmt"
	"strings"
)

// dumpTree renders n and its descendants as a compact, deterministic
// XML-like string, for use in test assertions that want to compare
// whole subtrees at a glance rather than poking individual accessors.
// It is not a conformant serializer (no namespace declaration
// reconstruction, attributes written by local name only, doctype public
// and system ids omitted) — see DESIGN.md on why this engine does not
// ship one.
func dumpTree(n *Node) string {
	var sb strings.Builder
	dumpNode(&sb, n)
	return sb.String()
}

func dumpNode(sb *strings.Builder, n *Node) {
	switch n.NodeType() {
	case DocumentNode:
		for c := n.firstChild; c != nil; c = c.nextSibling {
			dumpNode(sb, c)
		}
	case DocumentFragmentNode:
		sb.WriteString("#fragment[")
		for c := n.firstChild; c != nil; c = c.nextSibling {
			dumpNode(sb, c)
		}
		sb.WriteString("]")
	case ShadowRootNode:
		sb.WriteString("#shadow-root[")
		for c := n.firstChild; c != nil; c = c.nextSibling {
			dumpNode(sb, c)
		}
		sb.WriteString("]")
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(escapeText(n.char.data))
		sb.WriteString("-->")
	case TextNode:
		sb.WriteString(escapeText(n.char.data))
	case CDATASectionNode:
		sb.WriteString("<![CDATA[")
		sb.WriteString(n.char.data)
		sb.WriteString("]]>")
	case ProcessingInstructionNode:
		fmt.Fprintf(sb, "<?%s %s?>", n.char.target, n.char.data)
	case DocumentTypeNode:
		fmt.Fprintf(sb, "<!DOCTYPE %s>", n.doctype.name)
	case ElementNode:
		el := (*Element)(n)
		sb.WriteString("<")
		sb.WriteString(el.TagName())
		for _, a := range n.elem.attrs.All() {
			fmt.Fprintf(sb, " %s=%q", a.Name.LocalName, escapeAttrValue(a.Value))
		}
		if n.firstChild == nil {
			sb.WriteString("/>")
			return
		}
		sb.WriteString(">")
		for c := n.firstChild; c != nil; c = c.nextSibling {
			dumpNode(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(el.TagName())
		sb.WriteString(">")
	default:
		sb.WriteString(n.NodeName())
	}
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func escapeAttrValue(s string) string {
	r := strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;")
	return r.Replace(s)
}
