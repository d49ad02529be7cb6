package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moznion-helium/domcore/selector"
)

func TestCacheGetReturnsEquivalentParseResult(t *testing.T) {
	c := selector.NewCache(4)

	list1, err := c.Get("div.item")
	require.NoError(t, err)
	list2, err := c.Get("div.item")
	require.NoError(t, err)

	assert.Same(t, list1, list2)
}

func TestCacheGetPropagatesParseErrors(t *testing.T) {
	c := selector.NewCache(4)
	_, err := c.Get("a >")
	require.Error(t, err)
}

func TestCacheEvictsOldestWhenFull(t *testing.T) {
	c := selector.NewCache(2)

	first, err := c.Get("a")
	require.NoError(t, err)
	_, err = c.Get("b")
	require.NoError(t, err)
	_, err = c.Get("c")
	require.NoError(t, err)

	again, err := c.Get("a")
	require.NoError(t, err)
	assert.NotSame(t, first, again)
}
