package usecase_test

import (
	"context"
	"sync"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
)

type memorySession struct {
	mu      sync.Mutex
	current *user.Profile
	saves   int
	clears  int
}

func newMemorySession(initial *user.Profile) *memorySession {
	return &memorySession{current: initial}
}

func (s *memorySession) Current() (user.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return user.Profile{}, false
	}
	return *s.current, true
}

func (s *memorySession) Save(_ context.Context, profile user.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &profile
	s.saves++
	return nil
}

func (s *memorySession) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.clears++
	return nil
}

type countingCredentials struct {
	mu     sync.Mutex
	clears int
}

func (c *countingCredentials) Clear(context.Context) error {
	c.mu.Lock()
	c.clears++
	c.mu.Unlock()
	return nil
}
