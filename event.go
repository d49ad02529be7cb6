package dom

// EventPhase mirrors the WHATWG Event phase constants.
type EventPhase uint8

const (
	PhaseNone EventPhase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// EventListener is a callback registered via AddEventListener.
type EventListener func(ev *Event)

// ListenerOptions configures AddEventListener, per spec.md's event
// dispatch component.
type ListenerOptions struct {
	Capture bool
	Once    bool
	Passive bool
	// Signal, when non-nil, is an AbortSignal whose firing removes this
	// listener before its next invocation.
	Signal *AbortSignal
}

// AbortSignal is a value-level cancellation capability: passing one to
// ListenerOptions.Signal ties a registered listener's lifetime to it, so
// a single Abort call can remove listeners across many nodes at once.
// This engine never constructs one itself (there is no request/timeout
// machinery here) — it only honors a signal the host hands in.
type AbortSignal struct {
	aborted bool
	onAbort []func()
}

// NewAbortSignal returns a fresh, not-yet-fired AbortSignal.
func NewAbortSignal() *AbortSignal { return &AbortSignal{} }

// Aborted reports whether Abort has been called.
func (s *AbortSignal) Aborted() bool { return s.aborted }

// Abort fires the signal, running every callback registered against it
// (in registration order) exactly once. Calling Abort again is a no-op.
func (s *AbortSignal) Abort() {
	if s.aborted {
		return
	}
	s.aborted = true
	cbs := s.onAbort
	s.onAbort = nil
	for _, cb := range cbs {
		cb()
	}
}

// onAbortFunc runs cb when the signal fires, or immediately if it has
// already fired.
func (s *AbortSignal) onAbortFunc(cb func()) {
	if s.aborted {
		cb()
		return
	}
	s.onAbort = append(s.onAbort, cb)
}

type listenerEntry struct {
	typ      string
	callback EventListener
	capture  bool
	once     bool
	passive  bool
}

// ListenerHandle identifies one registered listener, returned by
// AddEventListener and consumed by RemoveEventListener. Go function
// values are not comparable, so unlike addEventListener/
// removeEventListener's use of callback identity, this engine hands
// back an explicit handle instead.
type ListenerHandle struct {
	node  *Node
	typ   string
	entry *listenerEntry
}

// AddEventListener registers cb for events of type typ on n.
func AddEventListener(n *Node, typ string, cb EventListener, opts ListenerOptions) *ListenerHandle {
	rare := n.rareData()
	if rare.listeners == nil {
		rare.listeners = make(map[string][]*listenerEntry)
	}
	e := &listenerEntry{typ: typ, callback: cb, capture: opts.Capture, once: opts.Once, passive: opts.Passive}
	rare.listeners[typ] = append(rare.listeners[typ], e)
	h := &ListenerHandle{node: n, typ: typ, entry: e}
	if opts.Signal != nil {
		opts.Signal.onAbortFunc(func() { RemoveEventListener(h) })
	}
	return h
}

// RemoveEventListener unregisters the listener identified by h.
func RemoveEventListener(h *ListenerHandle) {
	if h == nil || h.node.rare == nil {
		return
	}
	list := h.node.rare.listeners[h.typ]
	for i, e := range list {
		if e == h.entry {
			h.node.rare.listeners[h.typ] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Event carries the state of one dispatchEvent call as it travels
// through the capturing, at-target, and bubbling phases.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool
	Composed   bool

	target             *Node
	currentTarget      *Node
	phase              EventPhase
	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
	path               []*Node // target, then ancestors, to the composed root
}

// NewEvent constructs an Event ready for DispatchEvent.
func NewEvent(typ string, bubbles, cancelable, composed bool) *Event {
	return &Event{Type: typ, Bubbles: bubbles, Cancelable: cancelable, Composed: composed}
}

// Target returns the event's retargeted target as seen from
// CurrentTarget: the nearest inclusive ancestor of the real target that
// shares CurrentTarget's (non-composed) tree, per the retargeting rule
// recorded for this engine's event dispatch design.
func (ev *Event) Target() *Node {
	if ev.currentTarget == nil {
		return ev.target
	}
	return retargetFor(ev.target, ev.currentTarget)
}

// CurrentTarget returns the node whose listener is currently running.
func (ev *Event) CurrentTarget() *Node { return ev.currentTarget }

// Phase returns the dispatch phase currently in progress.
func (ev *Event) Phase() EventPhase { return ev.phase }

// ComposedPath returns the path the event traveled, target first.
func (ev *Event) ComposedPath() []*Node { return ev.path }

// PreventDefault marks the event's default action as canceled, if
// Cancelable.
func (ev *Event) PreventDefault() {
	if ev.Cancelable {
		ev.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault has been called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation halts further capturing/bubbling after the current
// node's listeners finish running.
func (ev *Event) StopPropagation() { ev.propagationStopped = true }

// StopImmediatePropagation halts propagation immediately, skipping any
// remaining listeners on the current node too.
func (ev *Event) StopImmediatePropagation() {
	ev.propagationStopped = true
	ev.immediateStopped = true
}

func retargetFor(actualTarget, listenerNode *Node) *Node {
	listenerRoot := listenerNode.GetRootNode(false)
	cur := actualTarget
	for cur != nil {
		if cur.GetRootNode(false) == listenerRoot {
			return cur
		}
		if cur.parent != nil {
			cur = cur.parent
			continue
		}
		if cur.nodeType == ShadowRootNode && cur.shadow.host != nil {
			cur = cur.shadow.host
			continue
		}
		break
	}
	return actualTarget
}
