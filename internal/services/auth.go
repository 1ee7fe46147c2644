// Package services holds the business rules that sit between the HTTP layer
// and the stores: account signup/login and owner-scoped note access.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"scribe/internal/auth"
	"scribe/internal/common"
	"scribe/internal/database/models"
	"scribe/internal/database/repositories"
	"scribe/internal/utils"
)

// AuthService registers users and exchanges credentials for access tokens.
type AuthService struct {
	users  repositories.UserRepository
	tokens *auth.TokenService
	ttl    time.Duration

	// hashed once so failed lookups cost the same as failed password checks
	dummyHash string
}

func NewAuthService(users repositories.UserRepository, tokens *auth.TokenService, ttl time.Duration) (*AuthService, error) {
	dummy, err := utils.HashPassword("scribe-dummy-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{users: users, tokens: tokens, ttl: ttl, dummyHash: dummy}, nil
}

// Signup creates a user. A second signup with the same email fails with
// common.ErrEmailTaken.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}
	user := &models.User{Email: email, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login returns a signed access token. Unknown email and wrong password are
// both reported as common.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, common.ErrNotFound) {
		utils.CheckPasswordHash(password, s.dummyHash)
		return "", common.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", common.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.Email, s.ttl)
}

func validateCredentials(email, password string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email address", common.ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	return nil
}
