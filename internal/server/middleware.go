package server

import (
	"scribe/internal/auth"
	"scribe/internal/common"
	"scribe/internal/database/models"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenLocalsKey = "token"

// requireAuth reads "Authorization: Bearer <token>", checks the signature and
// resolves the token subject to a stored user. The user is put on the
// request's user context for the handlers behind it.
func (s *FiberServer) requireAuth() fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:     s.tokens.Keyfunc,
		TokenLookup: "header:" + fiber.HeaderAuthorization,
		AuthScheme:  "Bearer",
		ContextKey:  tokenLocalsKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenLocalsKey).(*jwt.Token)
			if !ok {
				return common.ErrUnauthenticated
			}
			user, err := s.authenticator.Authenticate(c.UserContext(), token.Raw)
			if err != nil {
				return err
			}
			c.SetUserContext(auth.WithUser(c.UserContext(), user))
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ErrUnauthenticated
		},
	})
}

// currentUser returns the user placed on the context by requireAuth.
func currentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := auth.UserFromContext(c.UserContext())
	if !ok {
		return nil, common.ErrUnauthenticated
	}
	return user, nil
}
