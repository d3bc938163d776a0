package user

import "context"

// Repository describes user record persistence needs from use cases.
// Create reports ErrUsernameTaken for an existing username.
type Repository interface {
	Create(ctx context.Context, record Record) error
	Get(ctx context.Context, username string) (Record, bool, error)
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, record Record) (bool, error)
	Delete(ctx context.Context, username string) error
}
