package store

import "sync"

// notifier is the change-notification half of every store. Each successful
// persist broadcasts a scope-agnostic signal; subscribers re-derive their own
// views rather than receiving deltas. Broadcast is exported through the
// embedding stores so a platform adapter (file watcher, IPC) can inject
// external-change signals into the same channel; subscribers cannot tell
// the two apart.
type notifier struct {
	subMu sync.Mutex
	subs  map[int]func()
	next  int
}

// Subscribe registers a callback invoked after every change broadcast. The
// returned function unregisters the callback; after it returns, the callback
// receives no further notifications.
func (n *notifier) Subscribe(onChange func()) (unsubscribe func()) {
	n.subMu.Lock()
	defer n.subMu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = onChange
	return func() {
		n.subMu.Lock()
		defer n.subMu.Unlock()
		delete(n.subs, id)
	}
}

// Broadcast invokes every subscribed callback. Callbacks run synchronously on
// the calling goroutine, outside the store's data lock, so they may call back
// into the store.
func (n *notifier) Broadcast() {
	n.subMu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
