package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/billiards-tracker/internal/domain/user"
	"github.com/riskibarqy/billiards-tracker/internal/platform/logging"
)

// SessionService keeps the locally cached user in step with the account backend.
type SessionService struct {
	api         AccountAPI
	cache       SessionCache
	credentials CredentialStore
	validator   *validator.Validate
	logger      *logging.Logger
}

// NewSessionService wires the service. credentials may be nil when the transport
// keeps no persistent session state.
func NewSessionService(api AccountAPI, cache SessionCache, credentials CredentialStore, logger *logging.Logger) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SessionService{
		api:         api,
		cache:       cache,
		credentials: credentials,
		validator:   validator.New(),
		logger:      logger,
	}
}

// InitializeConnection probes the backend and, when a user is cached, refreshes it.
func (s *SessionService) InitializeConnection(ctx context.Context) bool {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.InitializeConnection")
	defer span.End()

	if !s.api.TestConnection(ctx) {
		s.logger.WarnContext(ctx, "account api unreachable, using local session cache")
		return false
	}

	if _, ok := s.cache.Current(); ok {
		s.RefreshCurrentUser(ctx)
	}
	return true
}

// GetCurrentUser returns the cached user unless forceRefresh is set or nothing is
// cached. Backend failures fall back to the cached value.
func (s *SessionService) GetCurrentUser(ctx context.Context, forceRefresh bool) (user.Profile, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.GetCurrentUser")
	defer span.End()

	cached, ok := s.cache.Current()
	if ok && !forceRefresh {
		return cached, true
	}

	resp, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch current user failed, using cached session", "error", err)
		return s.cache.Current()
	}
	if !resp.Success || resp.User == nil {
		return user.Profile{}, false
	}

	s.save(ctx, *resp.User)
	return *resp.User, true
}

func (s *SessionService) RefreshCurrentUser(ctx context.Context) {
	if _, ok := s.GetCurrentUser(ctx, true); !ok {
		s.logger.DebugContext(ctx, "refresh current user returned no user")
	}
}

func (s *SessionService) Register(ctx context.Context, username, password, organization string) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Register")
	defer span.End()

	payload := RegisterPayload{
		Username:     strings.TrimSpace(username),
		Password:     password,
		Organization: strings.TrimSpace(organization),
	}
	if err := s.validator.StructCtx(ctx, payload); err != nil {
		return AccountEnvelope{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	resp, err := s.api.RegisterUser(ctx, payload)
	if err != nil {
		return resp, fmt.Errorf("register user %s: %w", payload.Username, err)
	}
	return resp, nil
}

// Login caches the returned user on success. A rejected login is returned as-is.
func (s *SessionService) Login(ctx context.Context, username, password string) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Login")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return AccountEnvelope{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return resp, fmt.Errorf("login %s: %w", username, err)
	}
	if resp.Success && resp.User != nil {
		s.save(ctx, *resp.User)
	}
	return resp, nil
}

// Logout always drops the local session, even when the backend call fails.
func (s *SessionService) Logout(ctx context.Context) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Logout")
	defer span.End()

	resp, err := s.api.Logout(ctx)
	s.clearLocal(ctx)
	if err != nil {
		return resp, fmt.Errorf("logout: %w", err)
	}
	return resp, nil
}

func (s *SessionService) IsLoggedIn(ctx context.Context) bool {
	if _, ok := s.cache.Current(); !ok {
		return false
	}
	return s.api.CheckLoginStatus(ctx)
}

func (s *SessionService) UpdateUserStats(ctx context.Context, username string, stats user.Stats) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.UpdateUserStats")
	defer span.End()

	username = strings.TrimSpace(username)
	if err := (user.Record{Username: username, Stats: stats}).Validate(); err != nil {
		return AccountEnvelope{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	resp, err := s.api.UpdateUser(ctx, username, stats)
	if err != nil {
		return resp, fmt.Errorf("update stats for %s: %w", username, err)
	}
	if resp.Success && resp.User != nil && s.isCurrent(username) {
		s.save(ctx, *resp.User)
	}
	return resp, nil
}

func (s *SessionService) UpdateOrganization(ctx context.Context, username, organization string) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.UpdateOrganization")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return AccountEnvelope{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	resp, err := s.api.UpdateOrganization(ctx, username, organization)
	if err != nil {
		return resp, fmt.Errorf("update organization for %s: %w", username, err)
	}
	if resp.Success {
		if current, ok := s.cache.Current(); ok && current.Username == username {
			current.Organization = organization
			s.save(ctx, current)
		}
	}
	return resp, nil
}

// ListUsers returns an empty list on any failure.
func (s *SessionService) ListUsers(ctx context.Context) []user.Profile {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.ListUsers")
	defer span.End()

	resp, err := s.api.ListUsers(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "list users failed", "error", err)
		return []user.Profile{}
	}
	if !resp.Success || resp.Users == nil {
		return []user.Profile{}
	}
	return resp.Users
}

func (s *SessionService) GetUserInfo(ctx context.Context, username string) (user.Profile, bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.GetUserInfo")
	defer span.End()

	resp, err := s.api.GetUser(ctx, strings.TrimSpace(username))
	if err != nil {
		s.logger.WarnContext(ctx, "get user info failed", "username", username, "error", err)
		return user.Profile{}, false
	}
	if !resp.Success || resp.User == nil {
		return user.Profile{}, false
	}
	return *resp.User, true
}

// DeleteUser clears the cached session when the deleted user is the signed-in one.
func (s *SessionService) DeleteUser(ctx context.Context, username string) (AccountEnvelope, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.DeleteUser")
	defer span.End()

	username = strings.TrimSpace(username)
	if username == "" {
		return AccountEnvelope{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	resp, err := s.api.DeleteUser(ctx, username)
	if err != nil {
		return resp, fmt.Errorf("delete user %s: %w", username, err)
	}
	if resp.Success && s.isCurrent(username) {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.WarnContext(ctx, "clear session cache failed", "error", err)
		}
	}
	return resp, nil
}

func (s *SessionService) isCurrent(username string) bool {
	current, ok := s.cache.Current()
	return ok && current.Username == username
}

func (s *SessionService) save(ctx context.Context, profile user.Profile) {
	if err := s.cache.Save(ctx, profile); err != nil {
		s.logger.WarnContext(ctx, "persist session cache failed", "username", profile.Username, "error", err)
	}
}

func (s *SessionService) clearLocal(ctx context.Context) {
	if err := s.cache.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "clear session cache failed", "error", err)
	}
	if s.credentials == nil {
		return
	}
	if err := s.credentials.Clear(ctx); err != nil {
		s.logger.WarnContext(ctx, "clear session credentials failed", "error", err)
	}
}
