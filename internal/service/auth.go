package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pizzalab/pizza-service/internal/hash"
	"github.com/pizzalab/pizza-service/internal/models"
	"github.com/pizzalab/pizza-service/internal/repository"
	"github.com/pizzalab/pizza-service/internal/token"
)

// AuthService handles signup, login and token refresh
type AuthService struct {
	store  repository.Store
	tokens *token.Service
	log    *logrus.Logger
}

// NewAuthService initializes a new auth service
func NewAuthService(store repository.Store, tokens *token.Service, log *logrus.Logger) *AuthService {
	return &AuthService{store: store, tokens: tokens, log: log}
}

// Signup creates a new user with a hashed password. The email is checked
// for duplicates before the username.
func (s *AuthService) Signup(ctx context.Context, username, email, password string, isActive, isStaff bool) (*models.User, error) {
	user := &models.User{
		Username: username,
		Email:    email,
		IsActive: isActive,
		IsStaff:  isStaff,
	}

	err := s.store.Transact(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().FindByEmail(ctx, email); err == nil {
			return ErrConflict
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		if _, err := tx.Users().FindByUsername(ctx, username); err == nil {
			return ErrConflict
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		digest, err := hash.Hash(password)
		if err != nil {
			return err
		}
		user.PasswordHash = digest

		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login authenticates a user and issues an access and a refresh token.
// Unknown usernames and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (access, refresh string, err error) {
	user, err := s.store.Users().FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrAuthFailed
		}
		return "", "", err
	}

	if !hash.Verify(user.PasswordHash, password) {
		return "", "", ErrAuthFailed
	}

	if access, err = s.tokens.IssueAccess(user.Username); err != nil {
		return "", "", fmt.Errorf("failed to issue access token: %w", err)
	}
	if refresh, err = s.tokens.IssueRefresh(user.Username); err != nil {
		return "", "", fmt.Errorf("failed to issue refresh token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return access, refresh, nil
}

// Refresh mints a new access token from a valid refresh token. The refresh
// token itself is not rotated.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	subject, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrUnauthenticated
	}

	access, err := s.tokens.IssueAccess(subject)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, nil
}

// Authenticate verifies an access token and resolves its subject to a user
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	subject, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.store.Users().FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}
