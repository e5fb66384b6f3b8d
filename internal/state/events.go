package state

import "sync"

// Events lets outside code subscribe to paths the picker opens or creates.
// Callbacks run synchronously in subscription order.
type Events struct {
	mu     sync.Mutex
	nextID int
	open   []subscriber
	create []subscriber
}

type subscriber struct {
	id int
	fn func(string)
}

// NewEvents returns an emitter with no subscribers.
func NewEvents() *Events {
	return &Events{}
}

// OnDidOpenPath registers fn for every opened absolute path.
func (e *Events) OnDidOpenPath(fn func(path string)) (unsubscribe func()) {
	if e == nil {
		return func() {}
	}
	return e.subscribe(&e.open, fn)
}

// OnDidCreatePath registers fn for every created absolute path.
func (e *Events) OnDidCreatePath(fn func(path string)) (unsubscribe func()) {
	if e == nil {
		return func() {}
	}
	return e.subscribe(&e.create, fn)
}

func (e *Events) subscribe(list *[]subscriber, fn func(string)) func() {
	if fn == nil {
		return func() {}
	}
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	*list = append(*list, subscriber{id: id, fn: fn})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, sub := range *list {
				if sub.id == id {
					*list = append((*list)[:i:i], (*list)[i+1:]...)
					return
				}
			}
		})
	}
}

func (e *Events) emitOpen(path string) {
	if e != nil {
		e.emit(&e.open, path)
	}
}

func (e *Events) emitCreate(path string) {
	if e != nil {
		e.emit(&e.create, path)
	}
}

func (e *Events) emit(list *[]subscriber, path string) {
	e.mu.Lock()
	subs := append([]subscriber(nil), (*list)...)
	e.mu.Unlock()
	for _, sub := range subs {
		sub.fn(path)
	}
}
