package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"toolrent-console/internal/apiclient"
	"toolrent-console/internal/domain"
	"toolrent-console/internal/logger"
)

var ErrNotAuthenticated = errors.New("not signed in")

// AuthAPI is the slice of the remote service the session needs
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*apiclient.Envelope[domain.AuthResult], error)
	Register(ctx context.Context, req domain.RegisterRequest) (*apiclient.Envelope[domain.AuthResult], error)
	GetProfile(ctx context.Context) (*apiclient.Envelope[domain.User], error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*apiclient.Ack, error)
}

// CredentialStore holds the durable credential
type CredentialStore interface {
	Token() string
	Set(token string) error
	Clear() error
}

// Session is the process-wide identity: anonymous or authenticated.
// It is created once and handed to whatever needs it.
type Session struct {
	api    AuthAPI
	tokens CredentialStore

	initOnce sync.Once
	mu       sync.RWMutex
	user     *domain.User
	loading  bool
	onChange []func()
}

func New(api AuthAPI, tokens CredentialStore) *Session {
	return &Session{api: api, tokens: tokens, loading: true}
}

// Init resolves a stored credential into an identity. It runs once per
// process; any failure drops the credential and leaves the session anonymous.
func (s *Session) Init(ctx context.Context) {
	s.initOnce.Do(func() {
		defer func() {
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}()

		if s.tokens.Token() == "" {
			return
		}

		user, err := apiclient.Unwrap(s.api.GetProfile(ctx))
		if err != nil {
			logger.Info("Stored credential rejected, continuing anonymously", "error", err)
			if clearErr := s.tokens.Clear(); clearErr != nil {
				logger.Warn("Failed to clear credential", "error", clearErr)
			}
			return
		}

		s.mu.Lock()
		s.user = &user
		s.mu.Unlock()
	})
}

// User returns a copy of the identity, or nil when anonymous
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin()
}

// OnIdentityChange registers fn to run after every login, registration and
// logout, once the new identity is in place
func (s *Session) OnIdentityChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

func (s *Session) identityChanged() {
	s.mu.RLock()
	hooks := append([]func(){}, s.onChange...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

// IsLoading is true until Init has settled
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login exchanges credentials for a token. Failures are returned unchanged
// and leave the session as it was.
func (s *Session) Login(ctx context.Context, email, password string) (*domain.User, error) {
	logger.EnterMethod("session.Login", "email", email)
	result, err := apiclient.Unwrap(s.api.Login(ctx, email, password))
	if err != nil {
		logger.ExitMethodWithError("session.Login", err)
		return nil, err
	}
	if err := s.establish(result); err != nil {
		return nil, err
	}
	logger.ExitMethod("session.Login", "user_id", result.User.ID)
	return s.User(), nil
}

// Register creates an account and signs in with it
func (s *Session) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	logger.EnterMethod("session.Register", "email", req.Email)
	result, err := apiclient.Unwrap(s.api.Register(ctx, req))
	if err != nil {
		logger.ExitMethodWithError("session.Register", err)
		return nil, err
	}
	if err := s.establish(result); err != nil {
		return nil, err
	}
	logger.ExitMethod("session.Register", "user_id", result.User.ID)
	return s.User(), nil
}

func (s *Session) establish(result domain.AuthResult) error {
	if err := s.tokens.Set(result.Token); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	s.mu.Lock()
	s.user = &result.User
	s.mu.Unlock()
	s.identityChanged()
	return nil
}

// Logout forgets the credential and identity. There is no server call.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	err := s.tokens.Clear()
	s.identityChanged()
	return err
}

// UpdateProfile sends a partial update and then re-reads the profile so the
// session holds what the server stored.
func (s *Session) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	if _, err := apiclient.Unwrap(s.api.UpdateProfile(ctx, update)); err != nil {
		return nil, err
	}
	user, err := apiclient.Unwrap(s.api.GetProfile(ctx))
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return s.User(), nil
}
