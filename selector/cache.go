package selector

import lru "github.com/hashicorp/golang-lru"

// Cache memoizes Parse results keyed by selector source text. It pairs
// golang-lru's Peek (which does not promote recency) with Add to get
// true FIFO eviction: repeatedly looking up a hot selector should not
// let it live forever at the expense of selectors used earlier in a
// batch of queries.
type Cache struct {
	cache *lru.Cache
}

// NewCache returns a Cache holding at most size parsed selector lists.
func NewCache(size int) *Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err) // only on size <= 0, which callers never pass
	}
	return &Cache{cache: c}
}

// Get parses key, reusing a cached SelectorList when one already exists
// for this exact source text.
func (c *Cache) Get(key string) (*SelectorList, error) {
	if v, ok := c.cache.Peek(key); ok {
		return v.(*SelectorList), nil
	}
	list, err := Parse(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, list)
	return list, nil
}
