package usecase

import (
	"context"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
)

// AccountEnvelope is the response body shared by every account endpoint.
type AccountEnvelope struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message,omitempty"`
	User     *user.Profile  `json:"user,omitempty"`
	Users    []user.Profile `json:"users,omitempty"`
	LoggedIn bool           `json:"loggedIn,omitempty"`
}

type RegisterPayload struct {
	Username     string `json:"username" validate:"required,min=3,max=64"`
	Password     string `json:"password" validate:"required,min=6,max=128"`
	Organization string `json:"organization,omitempty" validate:"max=128"`
}

// AccountAPI is the remote account backend reached through the resilient client.
type AccountAPI interface {
	TestConnection(ctx context.Context) bool
	RegisterUser(ctx context.Context, payload RegisterPayload) (AccountEnvelope, error)
	Login(ctx context.Context, username, password string) (AccountEnvelope, error)
	Logout(ctx context.Context) (AccountEnvelope, error)
	CurrentUser(ctx context.Context) (AccountEnvelope, error)
	CheckLoginStatus(ctx context.Context) bool
	GetUser(ctx context.Context, username string) (AccountEnvelope, error)
	UpdateUser(ctx context.Context, username string, stats user.Stats) (AccountEnvelope, error)
	UpdateOrganization(ctx context.Context, username, organization string) (AccountEnvelope, error)
	ListUsers(ctx context.Context) (AccountEnvelope, error)
	DeleteUser(ctx context.Context, username string) (AccountEnvelope, error)
}

// SessionCache holds the single signed-in user. Current never blocks on storage.
type SessionCache interface {
	Current() (user.Profile, bool)
	Save(ctx context.Context, profile user.Profile) error
	Clear(ctx context.Context) error
}

// CredentialStore owns the persisted session credentials (cookies).
type CredentialStore interface {
	Clear(ctx context.Context) error
}

// ConnectivitySource reports host network availability.
type ConnectivitySource interface {
	Current(ctx context.Context) bool
	Subscribe(fn func(available bool)) (unsubscribe func())
}
