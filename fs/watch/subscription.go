package watch

import (
	"sync"

	"github.com/jmgilman/vfs/fs/core"
)

// subscription queues events without bound so a slow subscriber never
// blocks the backend or its siblings.
type subscription struct {
	id  string
	hub *Hub
	key streamKey

	out    chan core.WatchEvent
	notify chan struct{}
	done   chan struct{}

	mu    sync.Mutex
	queue []core.WatchEvent

	stopOnce  sync.Once
	leaveOnce sync.Once
}

func newSubscription(id string, hub *Hub, key streamKey) *subscription {
	return &subscription{
		id:     id,
		hub:    hub,
		key:    key,
		out:    make(chan core.WatchEvent),
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

func (s *subscription) Events() <-chan core.WatchEvent {
	return s.out
}

func (s *subscription) Unsubscribe() {
	s.leaveOnce.Do(func() {
		s.stop()
		s.hub.release(s.key, s.id)
	})
}

func (s *subscription) stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

func (s *subscription) push(ev core.WatchEvent) {
	s.mu.Lock()
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *subscription) next() (core.WatchEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return core.WatchEvent{}, false
	}
	ev := s.queue[0]
	s.queue = s.queue[1:]
	return ev, true
}

func (s *subscription) run() {
	defer close(s.out)
	for {
		select {
		case <-s.done:
			return
		case <-s.notify:
		}

		for {
			ev, ok := s.next()
			if !ok {
				break
			}
			select {
			case s.out <- ev:
			case <-s.done:
				return
			}
		}
	}
}
