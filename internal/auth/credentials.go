package auth

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// CredentialStore owns user identity records and their password hashes.
// Plaintext passwords exist only transiently on the stack; they are never
// persisted or logged.
type CredentialStore struct {
	users repository.UserRepository
}

// NewCredentialStore creates a CredentialStore backed by the given repository.
func NewCredentialStore(users repository.UserRepository) *CredentialStore {
	return &CredentialStore{users: users}
}

// Register creates a user with a bcrypt-hashed password. A user with the
// same username and email pair is reported as a conflict. A concurrent
// registration losing the race against the store's uniqueness constraint
// also surfaces as a conflict, from the repository.
func (s *CredentialStore) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	existing, err := s.users.GetByUsernameAndEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Verify checks a username/password pair against the stored hash and returns
// the matching user. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	return user, nil
}

// HashPassword derives a bcrypt hash at the default adaptive cost (10).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
