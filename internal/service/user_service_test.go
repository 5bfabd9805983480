package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlink/api/internal/models"
	"fitlink/api/internal/repository"
	"fitlink/api/internal/security"
)

var allMainRoles = []models.MainRole{
	models.MainRoleUser,
	models.MainRoleModerator,
	models.MainRoleAdministrator,
}

func TestUserUpdateSelf(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice", Email: "alice@example.com"})

	err := svc.Update(ctx, alice, alice.ID, UpdateUserInput{
		Username: "alice2",
		Email:    "alice2@example.com",
		Password: "newpass",
	})
	require.NoError(t, err)

	updated, err := users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, "alice2@example.com", updated.Email)

	ok, err := security.VerifyPassword("newpass", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserUpdateOtherForbidden(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice", Email: "alice@example.com"})
	bob := users.add(models.User{Username: "bob", Email: "bob@example.com", MainRoles: []models.MainRole{models.MainRoleUser}})

	err := svc.Update(ctx, bob, alice.ID, UpdateUserInput{Username: "x", Email: "x@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUserUpdateWithFullRoleSet(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice", Email: "alice@example.com"})
	admin := users.add(models.User{Username: "admin", Email: "admin@example.com", MainRoles: allMainRoles})

	err := svc.Update(ctx, admin, alice.ID, UpdateUserInput{
		Username: "renamed",
		Email:    "renamed@example.com",
		Password: "x",
	})
	require.NoError(t, err)
}

func TestUserUpdateUniquenessRecheck(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice", Email: "alice@example.com"})
	users.add(models.User{Username: "bob", Email: "bob@example.com"})

	err := svc.Update(ctx, alice, alice.ID, UpdateUserInput{Username: "bob", Email: "alice@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	err = svc.Update(ctx, alice, alice.ID, UpdateUserInput{Username: "alice", Email: "bob@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Keeping your own identifiers does not trip the check.
	err = svc.Update(ctx, alice, alice.ID, UpdateUserInput{Username: "alice", Email: "alice@example.com", Password: "x"})
	require.NoError(t, err)
}

func TestUserUpdateMissingTarget(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zerolog.Nop())

	err := svc.Update(context.Background(), models.User{ID: 1}, 99, UpdateUserInput{Username: "x", Email: "x@x", Password: "x"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserDelete(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, zerolog.Nop())
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice", Email: "alice@example.com"})

	require.NoError(t, svc.Delete(ctx, alice.ID))
	_, err := users.GetByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, alice.ID), repository.ErrUserNotFound)
}
