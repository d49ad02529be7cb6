// Package strpool implements the document-scoped string interning table
// described in the tree engine's string pool component: tag names,
// namespace URIs, attribute names, and class tokens are deduplicated into
// stable, pointer-comparable canonical strings.
package strpool

// Canonical namespace URIs pre-interned into every new Pool.
const (
	XMLNamespace   = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
	HTMLNamespace  = "http://www.w3.org/1999/xhtml"
	SVGNamespace   = "http://www.w3.org/2000/svg"
	MathMLNamespace = "http://www.w3.org/1998/Math/MathML"
)

// Pool deduplicates string content into stable canonical copies. Two
// calls to Intern with equal content return strings sharing the same
// underlying bytes, so callers may compare interned strings by identity
// (same header data pointer) on the hot path instead of by content.
type Pool struct {
	entries map[string]string
}

// New creates a Pool with the five canonical namespaces pre-interned.
func New() *Pool {
	p := &Pool{entries: make(map[string]string, 16)}
	for _, ns := range []string{
		"",
		XMLNamespace,
		XMLNSNamespace,
		HTMLNamespace,
		SVGNamespace,
		MathMLNamespace,
	} {
		p.Intern(ns)
	}
	return p
}

// Intern returns the pool's canonical copy of s, allocating and
// recording one if this is the first time s has been seen. The pool
// lives for the owning document's lifetime; there is no eviction.
func (p *Pool) Intern(s string) string {
	if canon, ok := p.entries[s]; ok {
		return canon
	}
	// Copy so the canonical string never aliases caller-owned memory
	// that might be part of a larger, longer-lived buffer.
	canon := string([]byte(s))
	p.entries[canon] = canon
	return canon
}

// Lookup reports whether s has already been interned, returning the
// canonical copy if so, without interning it as a side effect.
func (p *Pool) Lookup(s string) (string, bool) {
	canon, ok := p.entries[s]
	return canon, ok
}

// Len reports the number of distinct interned strings.
func (p *Pool) Len() int {
	return len(p.entries)
}
