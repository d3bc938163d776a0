package netstate

import (
	"context"
	"sync"
)

// Static is a connectivity source whose state is set by hand.
type Static struct {
	subs subscribers

	mu        sync.Mutex
	available bool
}

func NewStatic(available bool) *Static {
	return &Static{available: available}
}

func (s *Static) Current(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}

func (s *Static) Subscribe(fn func(bool)) func() {
	return s.subs.add(fn)
}

// Set stores the state and notifies subscribers when it changed.
func (s *Static) Set(available bool) {
	s.mu.Lock()
	changed := s.available != available
	s.available = available
	s.mu.Unlock()

	if changed {
		s.subs.emit(available)
	}
}
