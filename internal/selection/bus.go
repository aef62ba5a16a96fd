// Package selection implements the curation session coordinator: a typed
// publish/subscribe bus that lets independently mounted UI regions (grid,
// featured card, action bar) agree on one ephemeral selection without a
// shared parent owning the state.
package selection

import "sync"

// EventKind enumerates the bus event vocabulary.
type EventKind string

const (
	// CurationStart begins a session; subscribers reset their local selection.
	CurationStart EventKind = "curation-start"
	// CurationCancel abandons the session; selection is discarded.
	CurationCancel EventKind = "curation-cancel"
	// CurationEnd completes the session successfully (a link was produced).
	CurationEnd EventKind = "curation-end"
	// ItemSelect adds Slug to any subscriber's selection mirror.
	ItemSelect EventKind = "item-select"
	// ItemDeselect removes Slug from any subscriber's selection mirror.
	ItemDeselect EventKind = "item-deselect"
)

// Event is one bus dispatch. Slug is set only for item events.
type Event struct {
	Kind EventKind
	Slug string
}

// Handler receives a single event. It runs to completion before the
// publisher regains control, so handlers must not publish re-entrantly from
// the same goroutine chain without accepting the recursion.
type Handler func(Event)

type subscriber struct {
	id      int
	handler Handler
}

// Bus broadcasts curation events to every current subscriber. Delivery is
// fire-and-forget and at most once per dispatch: there is no acknowledgement
// and no replay, so a component that subscribes after curation-start has
// already fired must treat "no session observed" as "not curating". One Bus
// is instantiated per page/session, not globally.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
	closed bool
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler and returns an unsubscribe function for
// teardown on unmount. Calling the returned function more than once is a
// no-op.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscriber{id: id, handler: h})
	return func() { b.remove(id) }
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish dispatches an event to every subscriber present at dispatch time,
// in subscription order, each handler running to completion before the next.
// Publishing on a closed bus is a no-op.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	// Snapshot so handlers can subscribe/unsubscribe without deadlocking;
	// newcomers still miss the in-flight event (at-most-once, no replay).
	snapshot := make([]subscriber, len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, sub := range snapshot {
		sub.handler(ev)
	}
}

// StartCuration broadcasts curation-start.
func (b *Bus) StartCuration() { b.Publish(Event{Kind: CurationStart}) }

// CancelCuration broadcasts curation-cancel.
func (b *Bus) CancelCuration() { b.Publish(Event{Kind: CurationCancel}) }

// EndCuration broadcasts curation-end.
func (b *Bus) EndCuration() { b.Publish(Event{Kind: CurationEnd}) }

// SelectItem broadcasts item-select for slug. The bus does not validate that
// the slug exists anywhere; callers must only toggle slugs they rendered.
func (b *Bus) SelectItem(slug string) { b.Publish(Event{Kind: ItemSelect, Slug: slug}) }

// DeselectItem broadcasts item-deselect for slug.
func (b *Bus) DeselectItem(slug string) { b.Publish(Event{Kind: ItemDeselect, Slug: slug}) }

// Close drops all subscribers and ignores further publishes.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = nil
}

// SubscriberCount reports how many handlers are currently attached.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
