package selection

import "sync"

// State is a mirror's lifecycle state.
type State int

const (
	// Idle means no curation session has been observed.
	Idle State = iota
	// Curating means a session is active and items may be toggled.
	Curating
)

// Mirror maintains one subscriber's view of the curation session: the
// idle/curating state machine and a local selection set in insertion order.
// Selection membership toggles freely inside Curating and is discarded on
// any exit transition. A mirror attached after curation-start stays Idle
// until the next session; the bus does not replay.
type Mirror struct {
	mu       sync.Mutex
	state    State
	order    []string
	selected map[string]struct{}
	unsub    func()
}

// Attach subscribes a fresh mirror to bus. Call Detach on unmount.
func Attach(bus *Bus) *Mirror {
	m := &Mirror{
		state:    Idle,
		selected: make(map[string]struct{}),
	}
	m.unsub = bus.Subscribe(m.apply)
	return m
}

func (m *Mirror) apply(ev Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev.Kind {
	case CurationStart:
		m.state = Curating
		m.reset()
	case CurationCancel, CurationEnd:
		m.state = Idle
		m.reset()
	case ItemSelect:
		if m.state != Curating {
			return
		}
		if _, ok := m.selected[ev.Slug]; ok {
			return
		}
		m.selected[ev.Slug] = struct{}{}
		m.order = append(m.order, ev.Slug)
	case ItemDeselect:
		if m.state != Curating {
			return
		}
		if _, ok := m.selected[ev.Slug]; !ok {
			return
		}
		delete(m.selected, ev.Slug)
		for i, s := range m.order {
			if s == ev.Slug {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
}

func (m *Mirror) reset() {
	m.order = nil
	m.selected = make(map[string]struct{})
}

// State returns the current lifecycle state.
func (m *Mirror) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Curating reports whether a session is active.
func (m *Mirror) Curating() bool {
	return m.State() == Curating
}

// Has reports whether slug is currently selected.
func (m *Mirror) Has(slug string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.selected[slug]
	return ok
}

// Selected returns the selection in the order items were first selected.
func (m *Mirror) Selected() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the selection size.
func (m *Mirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.selected)
}

// Detach unsubscribes the mirror from its bus. Safe to call twice.
func (m *Mirror) Detach() {
	if m.unsub != nil {
		m.unsub()
	}
}
