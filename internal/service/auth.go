// Package service holds the business logic between the HTTP boundary
// and the repositories.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/nordqvist/webshop/internal/apperr"
	"github.com/nordqvist/webshop/internal/models"
	"github.com/nordqvist/webshop/internal/repository"
)

// AuthService registers users and verifies credentials. Session
// establishment happens at the HTTP boundary; per identity the flow is
// Anonymous -> Authenticated -> Anonymous and nothing else.
type AuthService struct {
	db  *sql.DB
	log *logrus.Logger
}

// NewAuthService initializes the authentication service.
func NewAuthService(db *sql.DB, log *logrus.Logger) *AuthService {
	return &AuthService{db: db, log: log}
}

// Register validates the input, hashes the password and creates the user
// inside one unit of work. A taken email yields apperr.ErrConflict; the
// caller logs in separately (no auto-login).
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperr.ErrValidation)
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", apperr.ErrValidation)
	}
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: please enter a valid email address", apperr.ErrValidation)
	}
	if strings.TrimSpace(password) == "" {
		return nil, fmt.Errorf("%w: password is required", apperr.ErrValidation)
	}
	if !validPassword(password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters long and contain a digit", apperr.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}

	err = repository.WithTx(ctx, s.db, func(ctx context.Context, r *repository.Repository) error {
		if _, err := r.FindUserByEmail(ctx, email); err == nil {
			return fmt.Errorf("%w: email address is already registered", apperr.ErrConflict)
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return err
		}
		return r.CreateUser(ctx, user)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			// The insert itself can lose a race and hit the unique index;
			// either way the caller sees the same conflict.
			return nil, fmt.Errorf("%w: email address is already registered", apperr.ErrConflict)
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login verifies credentials and returns the authenticated user. Unknown
// email and wrong password are deliberately indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: wrong email or password", apperr.ErrAuthentication)
	}

	user, err := repository.New(s.db).FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%w: wrong email or password", apperr.ErrAuthentication)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: wrong email or password", apperr.ErrAuthentication)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return user, nil
}
