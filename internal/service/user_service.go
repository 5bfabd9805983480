package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"fitlink/api/internal/models"
	"fitlink/api/internal/security"
)

// UserAdminStore extends UserStore with the mutations profile management
// needs.
type UserAdminStore interface {
	UserStore
	ListShort(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, id int64, username, email string, passwordHash []byte) error
	DeleteCascade(ctx context.Context, id int64) error
}

type UserService struct {
	users UserAdminStore
	log   zerolog.Logger
}

func NewUserService(users UserAdminStore, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.ListShort(ctx)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

type UpdateUserInput struct {
	Username string
	Email    string
	Password string
}

// Update rewrites the target's username, email and password. The acting
// principal must be the target itself or hold the elevated role count;
// uniqueness of a changed username or email is re-checked before writing.
func (s *UserService) Update(ctx context.Context, acting models.User, targetID int64, input UpdateUserInput) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !security.CanMutate(acting, target.ID) {
		return ErrForbidden
	}

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return ErrBlankField
	}

	if input.Username != target.Username {
		taken, err := s.users.ExistsByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}
	}
	if input.Email != target.Email {
		inUse, err := s.users.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if inUse {
			return ErrEmailTaken
		}
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return err
	}
	return s.users.UpdateProfile(ctx, target.ID, input.Username, input.Email, hash)
}

// Delete removes the user and cascades over its tokens, activities and
// graph edges. Role gating happens at the route; the cascade itself is
// unconditional.
func (s *UserService) Delete(ctx context.Context, targetID int64) error {
	return s.users.DeleteCascade(ctx, targetID)
}
