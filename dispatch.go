package dom

// composedPath builds the event dispatch path for target: target
// itself, then its ancestors, crossing from a shadow root to its host
// when the event is Composed, per spec.md §4.9. A non-composed event
// stops at the nearest enclosing ShadowRoot instead of continuing into
// the host's tree.
func composedPath(target *Node, composed bool) []*Node {
	path := make([]*Node, 0, 8)
	cur := target
	for cur != nil {
		path = append(path, cur)
		if cur.parent != nil {
			cur = cur.parent
			continue
		}
		if composed && cur.nodeType == ShadowRootNode && cur.shadow.host != nil {
			cur = cur.shadow.host
			continue
		}
		break
	}
	return path
}

// DispatchEvent runs ev through the capturing, at-target, and bubbling
// phases against target, invoking matching listeners along
// composedPath(target, ev.Composed). It returns false if
// PreventDefault was called on a cancelable event, true otherwise, per
// spec.md's dispatch return value. Dispatching an Event that is already
// being dispatched, or dispatching any event at a target whose own
// dispatch is still in progress, raises InvalidStateError.
func DispatchEvent(target *Node, ev *Event) (bool, error) {
	if ev.phase != PhaseNone {
		return false, errInvalidState("event already being dispatched")
	}
	if target.flags&flagDispatching != 0 {
		return false, errInvalidState("event already being dispatched")
	}
	target.flags |= flagDispatching
	defer func() { target.flags &^= flagDispatching }()

	ev.target = target
	ev.path = composedPath(target, ev.Composed)
	path := ev.path

	ev.phase = PhaseCapturing
	for i := len(path) - 1; i >= 1; i-- {
		invokeListeners(path[i], ev, true)
		if ev.propagationStopped {
			goto done
		}
	}

	ev.phase = PhaseAtTarget
	invokeListeners(path[0], ev, true)
	if ev.immediateStopped {
		goto done
	}
	invokeListeners(path[0], ev, false)
	if ev.propagationStopped {
		goto done
	}

	if ev.Bubbles {
		ev.phase = PhaseBubbling
		for i := 1; i < len(path); i++ {
			invokeListeners(path[i], ev, false)
			if ev.propagationStopped {
				break
			}
		}
	}

done:
	ev.phase = PhaseNone
	ev.currentTarget = nil
	return !ev.defaultPrevented, nil
}

func invokeListeners(n *Node, ev *Event, capture bool) {
	if n.rare == nil {
		return
	}
	list := n.rare.listeners[ev.Type]
	if len(list) == 0 {
		return
	}
	snapshot := append([]*listenerEntry(nil), list...)
	ev.currentTarget = n
	for _, e := range snapshot {
		if e.capture != capture {
			continue
		}
		if ev.immediateStopped {
			return
		}
		e.callback(ev)
		if e.once {
			RemoveEventListener(&ListenerHandle{node: n, typ: ev.Type, entry: e})
		}
	}
}
