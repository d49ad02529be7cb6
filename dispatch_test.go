package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/moznion-helium/domcore"
)

func buildDispatchTree(t *testing.T) (doc *dom.Document, grandparent, parent, child *dom.Element) {
	t.Helper()
	doc = dom.NewDocument()
	grandparent = doc.CreateElement("div")
	parent = doc.CreateElement("section")
	child = doc.CreateElement("button")

	_, err := dom.AppendChild(doc.AsNode(), grandparent.AsNode())
	require.NoError(t, err)
	_, err = dom.AppendChild(grandparent.AsNode(), parent.AsNode())
	require.NoError(t, err)
	_, err = dom.AppendChild(parent.AsNode(), child.AsNode())
	require.NoError(t, err)
	return
}

func TestDispatchBubblesInOrder(t *testing.T) {
	_, grandparent, parent, child := buildDispatchTree(t)

	var order []string
	dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "child")
	}, dom.ListenerOptions{})
	dom.AddEventListener(parent.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "parent")
	}, dom.ListenerOptions{})
	dom.AddEventListener(grandparent.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "grandparent")
	}, dom.ListenerOptions{})

	ev := dom.NewEvent("click", true, true, false)
	ok, err := dom.DispatchEvent(child.AsNode(), ev)

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"child", "parent", "grandparent"}, order)
}

func TestDispatchCapturingRunsBeforeBubbling(t *testing.T) {
	_, grandparent, parent, child := buildDispatchTree(t)

	var order []string
	dom.AddEventListener(grandparent.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "grandparent-capture")
	}, dom.ListenerOptions{Capture: true})
	dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "child-target")
	}, dom.ListenerOptions{})
	dom.AddEventListener(parent.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "parent-bubble")
	}, dom.ListenerOptions{})

	ev := dom.NewEvent("click", true, true, false)
	_, err := dom.DispatchEvent(child.AsNode(), ev)

	require.NoError(t, err)
	assert.Equal(t, []string{"grandparent-capture", "child-target", "parent-bubble"}, order)
}

func TestNonBubblingEventStopsAtTarget(t *testing.T) {
	_, _, parent, child := buildDispatchTree(t)

	called := false
	dom.AddEventListener(parent.AsNode(), "focus", func(ev *dom.Event) {
		called = true
	}, dom.ListenerOptions{})

	ev := dom.NewEvent("focus", false, true, false)
	_, err := dom.DispatchEvent(child.AsNode(), ev)

	require.NoError(t, err)
	assert.False(t, called)
}

func TestPreventDefaultReflectsInReturnValue(t *testing.T) {
	_, _, _, child := buildDispatchTree(t)

	dom.AddEventListener(child.AsNode(), "submit", func(ev *dom.Event) {
		ev.PreventDefault()
	}, dom.ListenerOptions{})

	ev := dom.NewEvent("submit", true, true, false)
	ok, err := dom.DispatchEvent(child.AsNode(), ev)

	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, ev.DefaultPrevented())
}

func TestStopImmediatePropagationSkipsSiblingListeners(t *testing.T) {
	_, _, _, child := buildDispatchTree(t)

	var order []string
	dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "first")
		ev.StopImmediatePropagation()
	}, dom.ListenerOptions{})
	dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		order = append(order, "second")
	}, dom.ListenerOptions{})

	ev := dom.NewEvent("click", true, true, false)
	_, err := dom.DispatchEvent(child.AsNode(), ev)

	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, order)
}

func TestOnceListenerFiresOnlyOnce(t *testing.T) {
	_, _, _, child := buildDispatchTree(t)

	count := 0
	dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		count++
	}, dom.ListenerOptions{Once: true})

	_, err := dom.DispatchEvent(child.AsNode(), dom.NewEvent("click", true, true, false))
	require.NoError(t, err)
	_, err = dom.DispatchEvent(child.AsNode(), dom.NewEvent("click", true, true, false))
	require.NoError(t, err)

	assert.Equal(t, 1, count)
}

func TestRemoveEventListener(t *testing.T) {
	_, _, _, child := buildDispatchTree(t)

	count := 0
	h := dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		count++
	}, dom.ListenerOptions{})
	dom.RemoveEventListener(h)

	_, err := dom.DispatchEvent(child.AsNode(), dom.NewEvent("click", true, true, false))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestComposedPathCrossesShadowBoundaryWhenComposed(t *testing.T) {
	doc := dom.NewDocument()
	host := doc.CreateElement("my-widget")
	_, err := dom.AppendChild(doc.AsNode(), host.AsNode())
	require.NoError(t, err)

	sr, err := host.AttachShadow(dom.ShadowRootOptions{Mode: dom.ShadowRootOpen})
	require.NoError(t, err)

	inner := doc.CreateElement("span")
	_, err = dom.AppendChild(sr.AsNode(), inner.AsNode())
	require.NoError(t, err)

	composed := dom.NewEvent("custom", true, false, true)
	_, err = dom.DispatchEvent(inner.AsNode(), composed)
	require.NoError(t, err)
	assert.Contains(t, composed.ComposedPath(), host.AsNode())

	notComposed := dom.NewEvent("custom", true, false, false)
	_, err = dom.DispatchEvent(inner.AsNode(), notComposed)
	require.NoError(t, err)
	assert.NotContains(t, notComposed.ComposedPath(), host.AsNode())
}

func TestDispatchEventReentrantRaisesInvalidState(t *testing.T) {
	_, _, _, child := buildDispatchTree(t)

	var inner error
	dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		_, inner = dom.DispatchEvent(child.AsNode(), dom.NewEvent("click", true, true, false))
	}, dom.ListenerOptions{})

	_, err := dom.DispatchEvent(child.AsNode(), dom.NewEvent("click", true, true, false))
	require.NoError(t, err)
	require.Error(t, inner)
	assert.ErrorIs(t, inner, &dom.DOMError{Name: dom.InvalidStateError})
}

func TestAddEventListenerWithSignalRemovesOnAbort(t *testing.T) {
	_, _, _, child := buildDispatchTree(t)

	signal := dom.NewAbortSignal()
	count := 0
	dom.AddEventListener(child.AsNode(), "click", func(ev *dom.Event) {
		count++
	}, dom.ListenerOptions{Signal: signal})

	_, err := dom.DispatchEvent(child.AsNode(), dom.NewEvent("click", true, true, false))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	signal.Abort()

	_, err = dom.DispatchEvent(child.AsNode(), dom.NewEvent("click", true, true, false))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
