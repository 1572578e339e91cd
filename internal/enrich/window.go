package enrich

import (
	"time"

	"github.com/omarhimada/loginsynth/internal/event"
)

// window is an insertion-ordered history of already-observed events for one
// key. Events are appended at the tail and only ever removed from the head by
// pruning, so a plain slice with a pop pointer is enough.
type window struct {
	events []event.LoginEvent
	head   int
}

func (w *window) append(e event.LoginEvent) {
	w.events = append(w.events, e)
}

// pruneBefore drops leading events older than cutoff. Arrival order is not
// timestamp order here, so pruning stops at the first young-enough head; a
// stale event hiding behind a younger one stays until the younger one ages
// out, which is fine for windows this small.
func (w *window) pruneBefore(cutoff time.Time) {
	for w.head < len(w.events) && w.events[w.head].Timestamp.Before(cutoff) {
		w.head++
	}
	if w.head > 64 && w.head > len(w.events)/2 {
		remaining := len(w.events) - w.head
		copy(w.events, w.events[w.head:])
		w.events = w.events[:remaining]
		w.head = 0
	}
}

func (w *window) len() int {
	return len(w.events) - w.head
}

// all returns the live span of the window, oldest insertion first.
func (w *window) all() []event.LoginEvent {
	return w.events[w.head:]
}

// last returns the most recently observed event and whether one exists.
func (w *window) last() (event.LoginEvent, bool) {
	if w.len() == 0 {
		return event.LoginEvent{}, false
	}
	return w.events[len(w.events)-1], true
}
