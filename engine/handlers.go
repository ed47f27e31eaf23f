package engine

import "sync"

// TickHandler is invoked once per delivered frame
type TickHandler func()

// handlerSet keeps tick handlers in subscription order, addressed by id
type handlerSet struct {
	mu       sync.Mutex
	nextID   uint64
	ids      []uint64
	handlers []TickHandler
}

func (s *handlerSet) add(h TickHandler) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.ids = append(s.ids, s.nextID)
	s.handlers = append(s.handlers, h)
	return s.nextID
}

func (s *handlerSet) remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.ids {
		if v != id {
			continue
		}
		// Fresh slices so snapshots taken by an in-flight tick stay valid
		ids := make([]uint64, 0, len(s.ids)-1)
		ids = append(ids, s.ids[:i]...)
		s.ids = append(ids, s.ids[i+1:]...)

		hs := make([]TickHandler, 0, len(s.handlers)-1)
		hs = append(hs, s.handlers[:i]...)
		s.handlers = append(hs, s.handlers[i+1:]...)
		return
	}
}

func (s *handlerSet) snapshot() []TickHandler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handlers
}

func (s *handlerSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.handlers)
}
