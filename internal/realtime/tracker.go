package realtime

import "sync"

// Tracker counts in-flight operations and notifies subscribers on every
// change. The count never goes below zero.
type Tracker struct {
	mu     sync.Mutex
	count  int
	nextID int
	subs   map[int]func(int)
}

func NewTracker() *Tracker {
	return &Tracker{subs: make(map[int]func(int))}
}

func (t *Tracker) Inc() {
	t.mu.Lock()
	t.count++
	t.notifyLocked()
	t.mu.Unlock()
}

// Dec is a no-op at zero, so unmatched decrements are harmless.
func (t *Tracker) Dec() {
	t.mu.Lock()
	if t.count > 0 {
		t.count--
		t.notifyLocked()
	}
	t.mu.Unlock()
}

func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

func (t *Tracker) Active() bool {
	return t.Count() > 0
}

// Subscribe registers fn to be called synchronously with the new count.
// fn must not call back into the tracker.
func (t *Tracker) Subscribe(fn func(count int)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

func (t *Tracker) notifyLocked() {
	for _, fn := range t.subs {
		fn(t.count)
	}
}
