package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlink/api/internal/models"
	"fitlink/api/internal/repository"
)

func TestTagAssignPinsFirstLevel(t *testing.T) {
	tags := newFakeTagStore()
	svc := NewTagService(tags, zerolog.Nop())
	ctx := context.Background()
	user := models.User{ID: 1}

	require.NoError(t, svc.Assign(ctx, user, []string{"JOGGING", "CROSSFIT"}))

	mine, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, tag := range mine {
		require.NotNil(t, tag.Level)
		assert.Equal(t, models.LevelFirst, tag.Level.Name)
	}
}

func TestTagAssignUnknownTagFailsWhole(t *testing.T) {
	tags := newFakeTagStore()
	svc := NewTagService(tags, zerolog.Nop())
	ctx := context.Background()
	user := models.User{ID: 1}

	err := svc.Assign(ctx, user, []string{"JOGGING", "YOGA"})
	var unknownTag *UnknownTagError
	require.ErrorAs(t, err, &unknownTag)
	assert.Equal(t, "YOGA", unknownTag.Name)

	mine, err := svc.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestTagChangeLevel(t *testing.T) {
	tags := newFakeTagStore()
	svc := NewTagService(tags, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, svc.ChangeLevel(ctx, "FITNESS", 10))

	tag, err := tags.GetByName(ctx, models.TagFitness)
	require.NoError(t, err)
	require.NotNil(t, tag.Level)
	assert.Equal(t, models.LevelTenth, tag.Level.Name)
}

func TestTagChangeLevelUnknownLevel(t *testing.T) {
	tags := newFakeTagStore()
	svc := NewTagService(tags, zerolog.Nop())

	err := svc.ChangeLevel(context.Background(), "FITNESS", 11)
	assert.ErrorIs(t, err, repository.ErrLevelNotFound)
}

func TestTagRemoveKeepsTaxonomy(t *testing.T) {
	tags := newFakeTagStore()
	svc := NewTagService(tags, zerolog.Nop())
	ctx := context.Background()
	alice := models.User{ID: 1}
	bob := models.User{ID: 2}

	require.NoError(t, svc.Assign(ctx, alice, []string{"JOGGING"}))
	require.NoError(t, svc.Assign(ctx, bob, []string{"JOGGING"}))

	require.NoError(t, svc.Remove(ctx, alice, []string{"JOGGING"}))

	mine, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	// Bob's link and the tag row itself survive.
	theirs, err := svc.ListForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)
}
