package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/evoapps/evodo/internal/credential"
	"github.com/evoapps/evodo/internal/model"
	"github.com/evoapps/evodo/internal/store"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// SecretStore persists password digests keyed by account. The production
// implementation is backed by the system keyring; tests substitute an
// in-memory map.
type SecretStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// KeyringSecrets is the SecretStore backed by the system keyring.
type KeyringSecrets struct{}

func (KeyringSecrets) Get(key string) (string, error) { return credential.Get(key) }
func (KeyringSecrets) Set(key, value string) error    { return credential.Set(key, value) }

// Service handles account registration and login. Passwords never reach
// the database; their digests live in the secret store.
type Service struct {
	store   store.Store
	secrets SecretStore
}

func NewService(st store.Store, secrets SecretStore) *Service {
	if secrets == nil {
		secrets = KeyringSecrets{}
	}
	return &Service{store: st, secrets: secrets}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return ErrInvalidEmail
	}
	if strings.ToLower(addr.Address) != email {
		return ErrInvalidEmail
	}
	return nil
}

func hashPassword(email, password string) string {
	sum := sha256.Sum256([]byte(email + ":" + password))
	return hex.EncodeToString(sum[:])
}

// Register creates a new account and stores its password digest.
func (s *Service) Register(ctx context.Context, email, displayName, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("checking for existing account: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = email[:strings.Index(email, "@")]
	}

	user := model.User{Email: email, DisplayName: displayName}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}
	if err := s.secrets.Set(credential.PasswordKey(email), hashPassword(email, password)); err != nil {
		return nil, fmt.Errorf("storing password: %w", err)
	}

	created, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("loading created account: %w", err)
	}
	return created, nil
}

// Login verifies the password for an existing account.
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("loading account: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	stored, err := s.secrets.Get(credential.PasswordKey(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(hashPassword(email, password))) != 1 {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
