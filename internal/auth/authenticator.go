package auth

import (
	"context"
	"errors"
	"fmt"

	"scribe/internal/common"
	"scribe/internal/database/models"
)

// UserFinder resolves a token subject to a user.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Authenticator turns a raw bearer token into the current user.
type Authenticator struct {
	tokens *TokenService
	users  UserFinder
}

func NewAuthenticator(tokens *TokenService, users UserFinder) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

// Authenticate fails with common.ErrUnauthenticated for an empty, invalid or
// expired token and for a subject that no longer exists. Storage failures are
// returned wrapped.
func (a *Authenticator) Authenticate(ctx context.Context, rawToken string) (*models.User, error) {
	if rawToken == "" {
		return nil, common.ErrUnauthenticated
	}
	subject, err := a.tokens.Verify(rawToken)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}
	user, err := a.users.GetByEmail(ctx, subject)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("error resolving token subject: %w", err)
	}
	return user, nil
}
