package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/moznion-helium/domcore"
)

func TestNamedSlotAssignment(t *testing.T) {
	doc := dom.NewDocument()
	host := doc.CreateElement("my-widget")
	_, err := dom.AppendChild(doc.AsNode(), host.AsNode())
	require.NoError(t, err)

	sr, err := host.AttachShadow(dom.ShadowRootOptions{Mode: dom.ShadowRootOpen})
	require.NoError(t, err)

	slot := doc.CreateElement("slot")
	require.NoError(t, slot.SetAttribute("name", "title"))
	_, err = dom.AppendChild(sr.AsNode(), slot.AsNode())
	require.NoError(t, err)

	lightChild := doc.CreateElement("h1")
	require.NoError(t, lightChild.SetAttribute("slot", "title"))
	_, err = dom.AppendChild(host.AsNode(), lightChild.AsNode())
	require.NoError(t, err)

	assigned := dom.AssignedNodes(slot.AsNode())
	require.Len(t, assigned, 1)
	assert.Equal(t, lightChild.AsNode(), assigned[0])

	assert.Equal(t, slot.AsNode(), dom.AssignedSlot(lightChild.AsNode()))
}

func TestManualSlotAssignment(t *testing.T) {
	doc := dom.NewDocument()
	host := doc.CreateElement("my-widget")
	_, err := dom.AppendChild(doc.AsNode(), host.AsNode())
	require.NoError(t, err)

	sr, err := host.AttachShadow(dom.ShadowRootOptions{
		Mode:           dom.ShadowRootOpen,
		SlotAssignment: dom.SlotAssignmentManual,
	})
	require.NoError(t, err)

	slot := doc.CreateElement("slot")
	_, err = dom.AppendChild(sr.AsNode(), slot.AsNode())
	require.NoError(t, err)

	child := doc.CreateElement("p")
	_, err = dom.AppendChild(host.AsNode(), child.AsNode())
	require.NoError(t, err)

	require.NoError(t, dom.AssignSlotManual(slot.AsNode(), []*dom.Node{child.AsNode()}))

	assigned := dom.AssignedNodes(slot.AsNode())
	require.Len(t, assigned, 1)
	assert.Equal(t, child.AsNode(), assigned[0])
	assert.Equal(t, slot.AsNode(), dom.AssignedSlot(child.AsNode()))

	require.NoError(t, dom.AssignSlotManual(slot.AsNode(), nil))
	assert.Empty(t, dom.AssignedNodes(slot.AsNode()))
	assert.Nil(t, dom.AssignedSlot(child.AsNode()))
}

func TestAssignSlotManualRejectsNonSlot(t *testing.T) {
	doc := dom.NewDocument()
	notASlot := doc.CreateElement("div")
	err := dom.AssignSlotManual(notASlot.AsNode(), nil)
	require.Error(t, err)
}

func TestAssignSlotManualWrongModeRejected(t *testing.T) {
	doc := dom.NewDocument()
	host := doc.CreateElement("my-widget")
	sr, err := host.AttachShadow(dom.ShadowRootOptions{Mode: dom.ShadowRootOpen})
	require.NoError(t, err)

	slot := doc.CreateElement("slot")
	_, err = dom.AppendChild(sr.AsNode(), slot.AsNode())
	require.NoError(t, err)

	err = dom.AssignSlotManual(slot.AsNode(), nil)
	require.Error(t, err)
}
