package selector

// FastPathKind classifies a selector list as simple enough to dispatch
// directly to an index lookup (id/class/tag) instead of the general
// matcher, per the tree engine's selector component.
type FastPathKind uint8

const (
	FastPathGeneric FastPathKind = iota
	FastPathID
	FastPathClass
	FastPathTag
	FastPathUniversal
)

// Classify inspects list and, when it consists of exactly one complex
// selector made of exactly one compound with exactly one simple
// selector, returns the matching fast-path kind and that selector's
// value (id, class token, or tag name). Any richer selector — a
// combinator, multiple simples, or a pseudo-class — falls back to
// FastPathGeneric, whose value is "".
func Classify(list *SelectorList) (FastPathKind, string) {
	if len(list.Selectors) != 1 {
		return FastPathGeneric, ""
	}
	cs := &list.Selectors[0]
	if len(cs.Compounds) != 1 || len(cs.Compounds[0].Simples) != 1 {
		return FastPathGeneric, ""
	}
	s := cs.Compounds[0].Simples[0]
	switch s.Kind {
	case KindID:
		return FastPathID, s.ID
	case KindClass:
		return FastPathClass, s.Class
	case KindTag:
		return FastPathTag, s.Tag
	case KindUniversal:
		return FastPathUniversal, ""
	default:
		return FastPathGeneric, ""
	}
}
