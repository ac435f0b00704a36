// Package service holds the business rules between the HTTP layer and the
// repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/search"
	"inkwell/internal/validation"
)

// UserSearcher is the read surface of the user search index.
type UserSearcher interface {
	SearchUsers(ctx context.Context, query string, limit int) ([]search.UserDocument, error)
}

type UserService struct {
	userRepo repository.UserRepository
	creds    *auth.CredentialStore
	mirror   *search.Mirror
	searcher UserSearcher
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type UpdateUserInput struct {
	UserID   uint
	Username string
	Email    string
	Password string
}

func NewUserService(
	userRepo repository.UserRepository,
	creds *auth.CredentialStore,
	mirror *search.Mirror,
	searcher UserSearcher,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		creds:    creds,
		mirror:   mirror,
		searcher: searcher,
	}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user, err := s.creds.Register(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		return nil, err
	}

	s.mirror.Upsert(search.DocumentFromUser(user))
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = in.Username
	}
	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, models.NewConflictError("Email already taken")
		}
		user.Email = in.Email
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.mirror.Upsert(search.DocumentFromUser(user))
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.mirror.Delete(id)
	return nil
}

// SearchUsers queries the secondary index. Results may lag recent writes;
// the primary store stays authoritative.
func (s *UserService) SearchUsers(ctx context.Context, query string, limit int) ([]search.UserDocument, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	if s.searcher == nil {
		return nil, models.NewInternalError(errors.New("search backend not configured"))
	}

	docs, err := s.searcher.SearchUsers(ctx, query, limit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return docs, nil
}
