package engine

// Listener receives its own copy of the table after every accepted change. It must
// not call back into a mutating Engine method.
type Listener func(State)

type listenerEntry struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (e *Engine) Subscribe(fn Listener) (unsubscribe func()) {
	id := e.nextSub
	e.nextSub++
	e.listeners = append(e.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *Engine) notify() {
	for _, l := range e.listeners {
		l.fn(e.state.clone())
	}
}
