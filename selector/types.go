// Package selector implements a CSS selector tokenizer, parser, and
// matcher against the tree engine's Element abstraction, per the tree
// engine's selector component: compound and complex selectors,
// combinators, attribute matchers, structural pseudo-classes, and a
// fast-path classifier that lets single-simple-selector queries bypass
// full matching.
package selector

// Combinator connects two compound selectors within a complex selector.
type Combinator uint8

const (
	// Descendant is the implicit whitespace combinator.
	Descendant Combinator = iota
	// Child is '>'.
	Child
	// AdjacentSibling is '+'.
	AdjacentSibling
	// GeneralSibling is '~'.
	GeneralSibling
)

// AttrOp is the comparison operator of an attribute selector.
type AttrOp uint8

const (
	AttrExists AttrOp = iota
	AttrEquals
	AttrIncludes  // ~=
	AttrDashMatch // |=
	AttrPrefix    // ^=
	AttrSuffix    // $=
	AttrSubstring // *=
)

// AttrMatcher is an attribute simple selector, e.g. [href^="https:"].
type AttrMatcher struct {
	Name            string
	Op              AttrOp
	Value           string
	CaseInsensitive bool
}

// PseudoClass is a structural or negation pseudo-class, e.g.
// :first-child or :not(.skip).
type PseudoClass struct {
	Name string
	NthA int
	NthB int
	Not  *SelectorList // :not(...)
	List *SelectorList // :is(...), :where(...), :has(...)
}

// SimpleKind discriminates the variants of SimpleSelector.
type SimpleKind uint8

const (
	KindUniversal SimpleKind = iota
	KindTag
	KindID
	KindClass
	KindAttr
	KindPseudo
)

// SimpleSelector is one non-divisible selector component.
type SimpleSelector struct {
	Kind   SimpleKind
	Tag    string
	ID     string
	Class  string
	Attr   AttrMatcher
	Pseudo PseudoClass
}

// CompoundSelector is a run of simple selectors with implicit
// conjunction, e.g. "div.card#main".
type CompoundSelector struct {
	Simples []SimpleSelector
}

// ComplexSelector is a sequence of compound selectors joined by
// combinators, e.g. "ul.menu > li + li". Compounds[len-1] is the
// subject: the element being tested; earlier compounds constrain its
// ancestors/siblings.
type ComplexSelector struct {
	Compounds   []CompoundSelector
	Combinators []Combinator // len(Compounds)-1 entries; Combinators[i] joins Compounds[i] to Compounds[i+1]
}

// Subject returns the rightmost compound selector: the one tested
// directly against a candidate element.
func (c *ComplexSelector) Subject() *CompoundSelector {
	return &c.Compounds[len(c.Compounds)-1]
}

// SelectorList is a comma-separated group of complex selectors; it
// matches if any member matches.
type SelectorList struct {
	Selectors []ComplexSelector
}
