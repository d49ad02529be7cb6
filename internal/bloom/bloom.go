// Package bloom provides the small per-element class-token bloom filter
// described in the tree engine's attribute store and selector matcher
// components: a filter that must contain every class token actually
// present on an element (no false negatives), used to short-circuit
// negative class tests before a full linear scan.
package bloom

import "github.com/bits-and-blooms/bitset"

// bits is the filter width in bits. 64 bits gives a workably low false
// positive rate for the handful of class tokens a typical element
// carries, while staying small enough to recompute on every `class`
// attribute write without measurable cost.
const bits = 64

// hashFuncs is the number of independent hash probes per token.
const hashFuncs = 3

// Filter is a fixed-size Bloom filter over class tokens.
type Filter struct {
	set *bitset.BitSet
}

// New returns an empty Filter.
func New() *Filter {
	return &Filter{set: bitset.New(bits)}
}

func fnv1aSeeded(s string, seed uint64) uint64 {
	h := seed ^ 0xcbf29ce484222325
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 0x100000001b3
	}
	return h
}

// Add records token in the filter.
func (f *Filter) Add(token string) {
	for i := 0; i < hashFuncs; i++ {
		f.set.Set(uint(fnv1aSeeded(token, uint64(i)) % bits))
	}
}

// MightContain reports whether token may be present. A false result is
// definitive proof of absence; a true result may be a false positive.
func (f *Filter) MightContain(token string) bool {
	for i := 0; i < hashFuncs; i++ {
		if !f.set.Test(uint(fnv1aSeeded(token, uint64(i)) % bits)) {
			return false
		}
	}
	return true
}

// Reset clears the filter back to empty, for recomputation when the
// `class` attribute is rewritten wholesale.
func (f *Filter) Reset() {
	f.set.ClearAll()
}

// FromTokens builds a fresh Filter containing exactly tokens.
func FromTokens(tokens []string) *Filter {
	f := New()
	for _, t := range tokens {
		f.Add(t)
	}
	return f
}
