package auth

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// userRepoStub is a function-field stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn              func(ctx context.Context, id uint) (*models.User, error)
	getByEmailFn           func(ctx context.Context, email string) (*models.User, error)
	getByUsernameFn        func(ctx context.Context, username string) (*models.User, error)
	getByUsernameAndEmailF func(ctx context.Context, username, email string) (*models.User, error)
	createFn               func(ctx context.Context, user *models.User) error
	updateFn               func(ctx context.Context, user *models.User) error
	deleteFn               func(ctx context.Context, id uint) error
	listFn                 func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	return s.getByUsernameAndEmailF(ctx, username, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(context.Context, uint) (*models.User, error) { return nil, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, nil
		},
		getByUsernameFn: func(context.Context, string) (*models.User, error) {
			return nil, nil
		},
		getByUsernameAndEmailF: func(context.Context, string, string) (*models.User, error) {
			return nil, nil
		},
		createFn: func(context.Context, *models.User) error { return nil },
		updateFn: func(context.Context, *models.User) error { return nil },
		deleteFn: func(context.Context, uint) error { return nil },
		listFn: func(context.Context, int, int) ([]models.User, error) {
			return nil, nil
		},
	}
}

func TestCredentialStore_Register(t *testing.T) {
	t.Parallel()

	t.Run("hashes the password before storing", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var created *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			created = u
			u.ID = 1
			return nil
		}

		store := NewCredentialStore(repo)
		user, err := store.Register(context.Background(), "alice", "alice@example.com", "Secret123")
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.NotEqual(t, "Secret123", created.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(created.Password), []byte("Secret123")))
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("existing username and email pair conflicts", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameAndEmailF = func(context.Context, string, string) (*models.User, error) {
			return &models.User{ID: 3, Username: "alice"}, nil
		}
		repo.createFn = func(context.Context, *models.User) error {
			t.Fatal("create should not be called")
			return nil
		}

		store := NewCredentialStore(repo)
		_, err := store.Register(context.Background(), "alice", "alice@example.com", "Secret123")
		require.Error(t, err)
		assert.Equal(t, 409, models.StatusForError(err))
	})

	t.Run("repository conflict propagates", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(context.Context, *models.User) error {
			return models.NewConflictError("User already exists")
		}

		store := NewCredentialStore(repo)
		_, err := store.Register(context.Background(), "alice", "alice@example.com", "Secret123")
		require.Error(t, err)
		assert.Equal(t, 409, models.StatusForError(err))
	})
}

func TestCredentialStore_Verify(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	stored := &models.User{ID: 1, Username: "alice", Password: hash}

	t.Run("correct password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return stored, nil
		}

		store := NewCredentialStore(repo)
		user, err := store.Verify(context.Background(), "alice", "Secret123")
		require.NoError(t, err)
		assert.Equal(t, uint(1), user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return stored, nil
		}

		store := NewCredentialStore(repo)
		_, err := store.Verify(context.Background(), "alice", "WrongPass1")
		require.Error(t, err)
		assert.Equal(t, 401, models.StatusForError(err))
	})

	t.Run("unknown user is indistinguishable from wrong password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()

		store := NewCredentialStore(repo)
		_, unknownErr := store.Verify(context.Background(), "nobody", "Secret123")
		require.Error(t, unknownErr)

		repo.getByUsernameFn = func(context.Context, string) (*models.User, error) {
			return stored, nil
		}
		_, wrongErr := store.Verify(context.Background(), "alice", "WrongPass1")
		require.Error(t, wrongErr)

		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})
}
