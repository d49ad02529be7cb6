// Package attrstore implements the per-element ordered attribute
// container described in the tree engine's attribute store component: a
// small fixed-capacity inline array to avoid heap allocation on typical
// elements, spilling to a growing slice past the inline capacity.
package attrstore

// inlineCapacity is the number of attribute slots stored directly in the
// Store struct before spilling to the heap-resident overflow slice.
const inlineCapacity = 4

// Name identifies an attribute by its namespace URI and local name.
// HasNamespace separates the null namespace (false) from a namespace URI
// that is present, possibly as "" (true), so the two are distinct keys.
type Name struct {
	NamespaceURI string
	LocalName    string
	HasNamespace bool // false => "null" namespace, true => NamespaceURI is authoritative (possibly "")
}

type entry struct {
	name  Name
	value string
}

// Store is an ordered (namespace?, localName) -> value map. Iteration
// order is insertion order; Set on an existing key replaces the value in
// place without changing its position.
type Store struct {
	inline      [inlineCapacity]entry
	inlineCount int
	overflow    []entry
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

func (s *Store) find(name Name) (idx int, inOverflow bool, ok bool) {
	for i := 0; i < s.inlineCount; i++ {
		if s.inline[i].name == name {
			return i, false, true
		}
	}
	for i := range s.overflow {
		if s.overflow[i].name == name {
			return i, true, true
		}
	}
	return 0, false, false
}

// Set inserts or replaces the value for name, returning the previous
// value and whether one existed.
func (s *Store) Set(name Name, value string) (old string, existed bool) {
	if idx, overflow, ok := s.find(name); ok {
		if overflow {
			old = s.overflow[idx].value
			s.overflow[idx].value = value
		} else {
			old = s.inline[idx].value
			s.inline[idx].value = value
		}
		return old, true
	}

	if s.inlineCount < inlineCapacity && len(s.overflow) == 0 {
		s.inline[s.inlineCount] = entry{name: name, value: value}
		s.inlineCount++
		return "", false
	}
	s.overflow = append(s.overflow, entry{name: name, value: value})
	return "", false
}

// Get returns the value for name and whether it is present.
func (s *Store) Get(name Name) (string, bool) {
	idx, overflow, ok := s.find(name)
	if !ok {
		return "", false
	}
	if overflow {
		return s.overflow[idx].value, true
	}
	return s.inline[idx].value, true
}

// Has reports whether name is present.
func (s *Store) Has(name Name) bool {
	_, _, ok := s.find(name)
	return ok
}

// Remove deletes name from the store, returning its value and whether it
// was present. Removal preserves the relative order of the remaining
// entries.
func (s *Store) Remove(name Name) (string, bool) {
	if idx, overflow, ok := s.find(name); ok {
		if overflow {
			old := s.overflow[idx].value
			s.overflow = append(s.overflow[:idx], s.overflow[idx+1:]...)
			return old, true
		}
		old := s.inline[idx].value
		for i := idx; i < s.inlineCount-1; i++ {
			s.inline[i] = s.inline[i+1]
		}
		s.inlineCount--
		s.inline[s.inlineCount] = entry{}
		return old, true
	}
	return "", false
}

// Len returns the total number of attributes stored.
func (s *Store) Len() int {
	return s.inlineCount + len(s.overflow)
}

// Entry is a read-only view of one stored attribute, returned by All.
type Entry struct {
	Name  Name
	Value string
}

// All returns every entry in insertion order: inline slots first, then
// overflow slots, matching the iteration contract of spec.md §4.2.
func (s *Store) All() []Entry {
	out := make([]Entry, 0, s.Len())
	for i := 0; i < s.inlineCount; i++ {
		out = append(out, Entry{Name: s.inline[i].name, Value: s.inline[i].value})
	}
	for _, e := range s.overflow {
		out = append(out, Entry{Name: e.name, Value: e.value})
	}
	return out
}

// At returns the i'th entry in iteration order, or ok=false if out of
// range.
func (s *Store) At(i int) (Entry, bool) {
	if i < 0 || i >= s.Len() {
		return Entry{}, false
	}
	if i < s.inlineCount {
		return Entry{Name: s.inline[i].name, Value: s.inline[i].value}, true
	}
	e := s.overflow[i-s.inlineCount]
	return Entry{Name: e.name, Value: e.value}, true
}
