package selector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moznion-helium/domcore/selector"
)

func classify(t *testing.T, sel string) (selector.FastPathKind, string) {
	t.Helper()
	list, err := selector.Parse(sel)
	require.NoError(t, err)
	return selector.Classify(list)
}

func TestClassifyID(t *testing.T) {
	kind, value := classify(t, "#main")
	assert.Equal(t, selector.FastPathID, kind)
	assert.Equal(t, "main", value)
}

func TestClassifyClass(t *testing.T) {
	kind, value := classify(t, ".item")
	assert.Equal(t, selector.FastPathClass, kind)
	assert.Equal(t, "item", value)
}

func TestClassifyTag(t *testing.T) {
	kind, value := classify(t, "span")
	assert.Equal(t, selector.FastPathTag, kind)
	assert.Equal(t, "span", value)
}

func TestClassifyUniversal(t *testing.T) {
	kind, _ := classify(t, "*")
	assert.Equal(t, selector.FastPathUniversal, kind)
}

func TestClassifyFallsBackToGenericForCompoundOrGroup(t *testing.T) {
	kind, value := classify(t, "div.item")
	assert.Equal(t, selector.FastPathGeneric, kind)
	assert.Equal(t, "", value)

	kind2, _ := classify(t, "div, span")
	assert.Equal(t, selector.FastPathGeneric, kind2)

	kind3, _ := classify(t, "div p")
	assert.Equal(t, selector.FastPathGeneric, kind3)

	kind4, _ := classify(t, ":first-child")
	assert.Equal(t, selector.FastPathGeneric, kind4)
}
