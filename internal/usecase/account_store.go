package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

const (
	msgUserCreated         = "user created"
	msgUserNotFound        = "user not found"
	msgWrongPassword       = "wrong password"
	msgLoginSuccessful     = "login successful"
	msgOrganizationUpdated = "organization updated"
	msgUserDeleted         = "user deleted"
	msgUserUpdated         = "user updated"
)

// AccountStore serves account operations from a local record repository, for
// hosts running without the remote backend.
type AccountStore struct {
	repo      user.Repository
	session   SessionCache
	validator *validator.Validate
	now       func() time.Time
	logger    *logging.Logger
}

func NewAccountStore(repo user.Repository, session SessionCache, logger *logging.Logger) *AccountStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &AccountStore{
		repo:      repo,
		session:   session,
		validator: validator.New(),
		now:       time.Now,
		logger:    logger,
	}
}

// AddUser stores a new record with zeroed counters. Duplicates fail with user.ErrUsernameTaken.
func (s *AccountStore) AddUser(ctx context.Context, payload RegisterPayload) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountStore.AddUser")
	defer span.End()

	payload.Username = strings.TrimSpace(payload.Username)
	payload.Organization = strings.TrimSpace(payload.Organization)
	if err := s.validator.StructCtx(ctx, payload); err != nil {
		return AccountEnvelope{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	record := user.Record{
		Username:     payload.Username,
		Password:     payload.Password,
		Organization: payload.Organization,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return AccountEnvelope{}, fmt.Errorf("add user %s: %w", record.Username, err)
	}

	return AccountEnvelope{Success: true, Message: msgUserCreated}, nil
}

// Authenticate checks the credential and caches the profile on success.
func (s *AccountStore) Authenticate(ctx context.Context, username, password string) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountStore.Authenticate")
	defer span.End()

	record, ok, err := s.repo.Get(ctx, strings.TrimSpace(username))
	if err != nil {
		return AccountEnvelope{}, fmt.Errorf("get user %s: %w", username, err)
	}
	if !ok {
		return AccountEnvelope{Success: false, Message: msgUserNotFound}, nil
	}
	if subtle.ConstantTimeCompare([]byte(record.Password), []byte(password)) != 1 {
		return AccountEnvelope{Success: false, Message: msgWrongPassword}, nil
	}

	profile := record.Profile()
	if s.session != nil {
		if err := s.session.Save(ctx, profile); err != nil {
			s.logger.WarnContext(ctx, "persist local session failed", "username", profile.Username, "error", err)
		}
	}
	return AccountEnvelope{Success: true, Message: msgLoginSuccessful, User: &profile}, nil
}

func (s *AccountStore) UpdateOrganization(ctx context.Context, username, organization string) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountStore.UpdateOrganization")
	defer span.End()

	record, ok, err := s.repo.Get(ctx, strings.TrimSpace(username))
	if err != nil {
		return AccountEnvelope{}, fmt.Errorf("get user %s: %w", username, err)
	}
	if !ok {
		return AccountEnvelope{Success: false, Message: msgUserNotFound}, nil
	}

	record.Organization = strings.TrimSpace(organization)
	if _, err := s.repo.Update(ctx, record); err != nil {
		return AccountEnvelope{}, fmt.Errorf("update organization for %s: %w", record.Username, err)
	}
	return AccountEnvelope{Success: true, Message: msgOrganizationUpdated}, nil
}

// ListUsers returns profiles only.
func (s *AccountStore) ListUsers(ctx context.Context) ([]user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountStore.ListUsers")
	defer span.End()

	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]user.Profile, 0, len(records))
	for _, record := range records {
		out = append(out, record.Profile())
	}
	return out, nil
}

func (s *AccountStore) DeleteUser(ctx context.Context, username string) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountStore.DeleteUser")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return AccountEnvelope{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if err := s.repo.Delete(ctx, username); err != nil {
		return AccountEnvelope{}, fmt.Errorf("delete user %s: %w", username, err)
	}
	return AccountEnvelope{Success: true, Message: msgUserDeleted}, nil
}

// GetUser returns the profile, or ok=false when no such user exists.
func (s *AccountStore) GetUser(ctx context.Context, username string) (user.Profile, bool, error) {
	record, ok, err := s.repo.Get(ctx, strings.TrimSpace(username))
	if err != nil {
		return user.Profile{}, false, fmt.Errorf("get user %s: %w", username, err)
	}
	if !ok {
		return user.Profile{}, false, nil
	}
	return record.Profile(), true, nil
}

// UpdateUser replaces the stored record except for its password and creation time.
func (s *AccountStore) UpdateUser(ctx context.Context, record user.Record) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AccountStore.UpdateUser")
	defer span.End()

	record.Username = strings.TrimSpace(record.Username)
	existing, ok, err := s.repo.Get(ctx, record.Username)
	if err != nil {
		return AccountEnvelope{}, fmt.Errorf("get user %s: %w", record.Username, err)
	}
	if !ok {
		return AccountEnvelope{Success: false, Message: msgUserNotFound}, nil
	}

	record.Password = existing.Password
	record.CreatedAt = existing.CreatedAt
	if err := record.Validate(); err != nil {
		return AccountEnvelope{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return AccountEnvelope{}, fmt.Errorf("update user %s: %w", record.Username, err)
	}
	if !updated {
		return AccountEnvelope{Success: false, Message: msgUserNotFound}, nil
	}

	profile := record.Profile()
	if s.session != nil {
		if current, ok := s.session.Current(); ok && current.Username == profile.Username {
			if err := s.session.Save(ctx, profile); err != nil {
				s.logger.WarnContext(ctx, "persist local session failed", "username", profile.Username, "error", err)
			}
		}
	}
	return AccountEnvelope{Success: true, Message: msgUserUpdated, User: &profile}, nil
}

func (s *AccountStore) IsUserLoggedIn() bool {
	if s.session == nil {
		return false
	}
	_, ok := s.session.Current()
	return ok
}

func (s *AccountStore) CurrentUser() (user.Profile, bool) {
	if s.session == nil {
		return user.Profile{}, false
	}
	return s.session.Current()
}

func (s *AccountStore) Logout(ctx context.Context) error {
	if s.session == nil {
		return nil
	}
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear local session: %w", err)
	}
	return nil
}

// IsUsernameTaken reports whether err came from a duplicate registration.
func IsUsernameTaken(err error) bool {
	return errors.Is(err, user.ErrUsernameTaken)
}
