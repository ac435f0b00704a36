package auth

import (
	"context"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// Strategy decides whether a request is authenticated. Implementations are
// selected per-route at composition time; a route uses exactly one strategy.
type Strategy interface {
	Name() string
	// Authenticate returns the authenticated user or an error describing
	// the rejection. It must not mutate application state.
	Authenticate(c *fiber.Ctx) (*models.User, error)
}

// BearerStrategy authenticates via an "Authorization: Bearer <token>" header.
// The token subject is re-checked against the user store so claims for a
// since-deleted user are rejected rather than trusted.
type BearerStrategy struct {
	tokens *TokenService
	users  repository.UserRepository
}

// NewBearerStrategy creates a BearerStrategy.
func NewBearerStrategy(tokens *TokenService, users repository.UserRepository) *BearerStrategy {
	return &BearerStrategy{tokens: tokens, users: users}
}

func (s *BearerStrategy) Name() string { return "bearer" }

func (s *BearerStrategy) Authenticate(c *fiber.Ctx) (*models.User, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, models.NewUnauthorizedError("Authorization required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, models.NewUnauthorizedError("Invalid authorization header format")
	}

	claims, err := s.tokens.Verify(parts[1])
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(c.UserContext(), claims.UserID)
	if err != nil {
		if models.StatusForError(err) == fiber.StatusNotFound {
			return nil, models.NewUnauthorizedError("Token subject no longer exists")
		}
		return nil, err
	}

	return user, nil
}

// PasswordStrategy authenticates via a username/password pair in the request
// body. It is used only by the login route.
type PasswordStrategy struct {
	creds *CredentialStore
}

// NewPasswordStrategy creates a PasswordStrategy.
func NewPasswordStrategy(creds *CredentialStore) *PasswordStrategy {
	return &PasswordStrategy{creds: creds}
}

func (s *PasswordStrategy) Name() string { return "password" }

func (s *PasswordStrategy) Authenticate(c *fiber.Ctx) (*models.User, error) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return nil, models.NewValidationError("Username and password are required")
	}

	return s.creds.Verify(c.UserContext(), req.Username, req.Password)
}

// Required returns middleware gating a route behind the given strategy.
// Rejected requests are answered immediately and never reach the handler.
// On success the user is stored in locals and the request context.
func Required(strategy Strategy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := strategy.Authenticate(c)
		if err != nil {
			observability.AuthRejections.WithLabelValues(strategy.Name()).Inc()
			return models.RespondWithError(c, models.StatusForError(err), err)
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
