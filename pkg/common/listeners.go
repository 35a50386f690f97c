package common

import "sync"

type listener[V any] struct {
	id uint64
	fn func(V)
}

// Listeners is a list of callbacks notified in registration order.
type Listeners[V any] struct {
	mu        sync.Mutex
	nextId    uint64
	listeners []listener[V]
}

// Add registers fn and returns a function that removes it again.
// The returned function is safe to call more than once.
func (l *Listeners[V]) Add(fn func(V)) func() {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextId++
	id := l.nextId
	l.listeners = append(l.listeners, listener[V]{id: id, fn: fn})
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		for i, entry := range l.listeners {
			if entry.id == id {
				// copy instead of removing in place, Notify may hold the old slice
				l.listeners = append(l.listeners[:i:i], l.listeners[i+1:]...)
				return
			}
		}
	}
}

// Notify calls every registered listener with value. Listeners may add or
// remove listeners while being notified.
func (l *Listeners[V]) Notify(value V) {
	l.mu.Lock()
	snapshot := l.listeners
	l.mu.Unlock()

	for _, entry := range snapshot {
		if l.active(entry.id) {
			entry.fn(value)
		}
	}
}

func (l *Listeners[V]) active(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range l.listeners {
		if entry.id == id {
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (l *Listeners[V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.listeners)
}
