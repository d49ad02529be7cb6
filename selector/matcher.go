package selector

import "strings"

// Element is the minimal read-only view of an element the matcher
// needs. The dom package's Element type implements this directly, so
// selector never imports dom (dom imports selector instead, in
// query.go), avoiding an import cycle.
type Element interface {
	TagName() string
	ElementID() string
	ClassTokens() []string
	HasClassToken(token string) bool
	Attr(name string) (string, bool)
	ParentElement() Element
	PreviousElementSibling() Element
	NextElementSibling() Element
	IsEmpty() bool
	ElementIndex() int // 1-based position among element siblings, source order
	ElementCount() int // number of element siblings (including self)

	// FirstChildElement returns the first child that is itself an
	// Element, or nil. Used only by :has()'s descendant search.
	FirstChildElement() Element
}

// Matches reports whether el satisfies any selector in list.
func (list *SelectorList) Matches(el Element) bool {
	for i := range list.Selectors {
		if complexMatches(&list.Selectors[i], el) {
			return true
		}
	}
	return false
}

func complexMatches(cs *ComplexSelector, el Element) bool {
	idx := len(cs.Compounds) - 1
	if !compoundMatches(&cs.Compounds[idx], el) {
		return false
	}
	return matchContext(cs, idx, el)
}

// matchContext walks leftward from compound index idx (already matched
// against el), verifying the remaining compounds against el's ancestors
// or siblings per the combinators that join them.
func matchContext(cs *ComplexSelector, idx int, el Element) bool {
	if idx == 0 {
		return true
	}
	comb := cs.Combinators[idx-1]
	compound := &cs.Compounds[idx-1]
	switch comb {
	case Descendant:
		for anc := el.ParentElement(); anc != nil; anc = anc.ParentElement() {
			if compoundMatches(compound, anc) && matchContext(cs, idx-1, anc) {
				return true
			}
		}
		return false
	case Child:
		p := el.ParentElement()
		return p != nil && compoundMatches(compound, p) && matchContext(cs, idx-1, p)
	case AdjacentSibling:
		s := el.PreviousElementSibling()
		return s != nil && compoundMatches(compound, s) && matchContext(cs, idx-1, s)
	case GeneralSibling:
		for s := el.PreviousElementSibling(); s != nil; s = s.PreviousElementSibling() {
			if compoundMatches(compound, s) && matchContext(cs, idx-1, s) {
				return true
			}
		}
		return false
	}
	return false
}

func compoundMatches(c *CompoundSelector, el Element) bool {
	for i := range c.Simples {
		if !simpleMatches(&c.Simples[i], el) {
			return false
		}
	}
	return true
}

func simpleMatches(s *SimpleSelector, el Element) bool {
	switch s.Kind {
	case KindUniversal:
		return true
	case KindTag:
		return el.TagName() == s.Tag
	case KindID:
		return el.ElementID() == s.ID
	case KindClass:
		return el.HasClassToken(s.Class)
	case KindAttr:
		return attrMatches(&s.Attr, el)
	case KindPseudo:
		return pseudoMatches(&s.Pseudo, el)
	}
	return false
}

func attrMatches(m *AttrMatcher, el Element) bool {
	v, ok := el.Attr(m.Name)
	if !ok {
		return false
	}
	if m.Op == AttrExists {
		return true
	}
	value, target := v, m.Value
	if m.CaseInsensitive {
		value, target = strings.ToLower(value), strings.ToLower(target)
	}
	switch m.Op {
	case AttrEquals:
		return value == target
	case AttrIncludes:
		for _, tok := range strings.Fields(value) {
			if tok == target {
				return true
			}
		}
		return false
	case AttrDashMatch:
		return value == target || strings.HasPrefix(value, target+"-")
	case AttrPrefix:
		return target != "" && strings.HasPrefix(value, target)
	case AttrSuffix:
		return target != "" && strings.HasSuffix(value, target)
	case AttrSubstring:
		return target != "" && strings.Contains(value, target)
	}
	return false
}

func pseudoMatches(pc *PseudoClass, el Element) bool {
	switch pc.Name {
	case "first-child":
		return el.ElementIndex() == 1
	case "last-child":
		return el.ElementIndex() == el.ElementCount()
	case "only-child":
		return el.ElementCount() == 1
	case "empty":
		return el.IsEmpty()
	case "root":
		return el.ParentElement() == nil
	case "nth-child":
		return matchesNth(pc.NthA, pc.NthB, el.ElementIndex())
	case "nth-last-child":
		return matchesNth(pc.NthA, pc.NthB, el.ElementCount()-el.ElementIndex()+1)
	case "not":
		if pc.Not == nil {
			return true
		}
		return !pc.Not.Matches(el)
	case "first-of-type":
		return isFirstOfType(el)
	case "last-of-type":
		return isLastOfType(el)
	case "is", "where":
		return pc.List == nil || pc.List.Matches(el)
	case "has":
		return pc.List != nil && hasDescendantMatch(pc.List, el)
	default:
		return false
	}
}

// isFirstOfType reports whether no preceding sibling element shares el's
// tag name.
func isFirstOfType(el Element) bool {
	for s := el.PreviousElementSibling(); s != nil; s = s.PreviousElementSibling() {
		if s.TagName() == el.TagName() {
			return false
		}
	}
	return true
}

// isLastOfType reports whether no following sibling element shares el's
// tag name.
func isLastOfType(el Element) bool {
	for s := el.NextElementSibling(); s != nil; s = s.NextElementSibling() {
		if s.TagName() == el.TagName() {
			return false
		}
	}
	return true
}

// hasDescendantMatch reports whether any descendant of el (not el
// itself) matches list. This implements the common, non-relative form
// of :has(); an argument with an explicit leading combinator (e.g.
// ":has(> p)") is not supported: the parser rejects it.
func hasDescendantMatch(list *SelectorList, el Element) bool {
	for c := el.FirstChildElement(); c != nil; c = c.NextElementSibling() {
		if list.Matches(c) || hasDescendantMatch(list, c) {
			return true
		}
	}
	return false
}

// matchesNth reports whether position (1-based) satisfies An+B for
// some non-negative integer n.
func matchesNth(a, b, position int) bool {
	if a == 0 {
		return position == b
	}
	diff := position - b
	if diff%a != 0 {
		return false
	}
	return diff/a >= 0
}
