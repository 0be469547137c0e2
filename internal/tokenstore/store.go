package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/yaml.v3"

	"toolrent-console/internal/logger"
)

var (
	ErrNoToken      = errors.New("no credential stored")
	ErrInvalidToken = errors.New("credential is not a decodable token")
)

// credentialsFile is the on-disk layout: a single item under a fixed key
type credentialsFile struct {
	AuthToken string `yaml:"authToken"`
}

// Claims is the display-only view of the stored credential
type Claims struct {
	UserID string `json:"userId,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Store holds at most one credential, mirrored to a file so a restart does not
// force re-authentication.
type Store struct {
	mu    sync.RWMutex
	path  string
	token string
}

// New opens the store backed by path. A missing file means no credential.
func New(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var f credentialsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		logger.Warn("Ignoring unreadable credentials file", "path", path, "error", err)
		return s, nil
	}
	s.token = f.AuthToken
	return s, nil
}

// Token returns the current credential or "" when none is held
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) HasToken() bool {
	return s.Token() != ""
}

// Set replaces the credential in memory and on disk. Setting "" is Clear.
func (s *Store) Set(token string) error {
	if token == "" {
		return s.Clear()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(credentialsFile{AuthToken: token})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	s.token = token
	return nil
}

// Clear drops the credential from memory and deletes the file
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// Claims decodes the credential payload without verifying its signature.
// The result is for display only; the remote service is the authority.
func (s *Store) Claims() (*Claims, error) {
	token := s.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
