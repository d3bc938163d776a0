package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
)

// UserRepository keeps records in insertion order.
type UserRepository struct {
	mu     sync.RWMutex
	items  map[string]user.Record
	orders []string
}

func NewUserRepository(records []user.Record) *UserRepository {
	items := make(map[string]user.Record, len(records))
	orders := make([]string, 0, len(records))

	for _, r := range records {
		if _, exists := items[r.Username]; exists {
			continue
		}
		items[r.Username] = r
		orders = append(orders, r.Username)
	}

	return &UserRepository{
		items:  items,
		orders: orders,
	}
}

func (r *UserRepository) Create(_ context.Context, record user.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[record.Username]; exists {
		return user.ErrUsernameTaken
	}
	r.items[record.Username] = record
	r.orders = append(r.orders, record.Username)
	return nil
}

func (r *UserRepository) Get(_ context.Context, username string) (user.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[username]
	if !ok {
		return user.Record{}, false, nil
	}
	return record, true, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.Record, 0, len(r.orders))
	for _, username := range r.orders {
		out = append(out, r.items[username])
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, record user.Record) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[record.Username]; !exists {
		return false, nil
	}
	r.items[record.Username] = record
	return true, nil
}

func (r *UserRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[username]; !exists {
		return nil
	}
	delete(r.items, username)
	for i, name := range r.orders {
		if name == username {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			break
		}
	}
	return nil
}
