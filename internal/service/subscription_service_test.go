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

func newTestSubscriptionService() (*SubscriptionService, *fakeUserStore, *fakeSubscriptionStore) {
	users := newFakeUserStore()
	edges := newFakeSubscriptionStore()
	return NewSubscriptionService(users, edges, zerolog.Nop()), users, edges
}

func TestToggleSubscriptionRoundTrip(t *testing.T) {
	svc, users, edges := newTestSubscriptionService()
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice"})
	bob := users.add(models.User{Username: "bob"})

	profile, err := svc.ToggleSubscription(ctx, alice, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, profile.User.ID)
	require.Len(t, profile.Subscribers, 1)
	assert.Equal(t, alice.ID, profile.Subscribers[0].ID)

	// Second toggle removes the edge again.
	profile, err = svc.ToggleSubscription(ctx, alice, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Subscribers)
	assert.Empty(t, edges.edges)
}

func TestToggleSubscriptionSelfIsNoOp(t *testing.T) {
	svc, users, edges := newTestSubscriptionService()
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice"})

	profile, err := svc.ToggleSubscription(ctx, alice, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.User.ID)
	assert.Empty(t, profile.Subscriptions)
	assert.Empty(t, profile.Subscribers)
	assert.Empty(t, edges.edges)
}

func TestToggleSubscriptionMissingChannel(t *testing.T) {
	svc, users, _ := newTestSubscriptionService()

	alice := users.add(models.User{Username: "alice"})

	_, err := svc.ToggleSubscription(context.Background(), alice, 99)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestProfileListsBothDirections(t *testing.T) {
	svc, users, _ := newTestSubscriptionService()
	ctx := context.Background()

	alice := users.add(models.User{Username: "alice"})
	bob := users.add(models.User{Username: "bob"})
	carol := users.add(models.User{Username: "carol"})

	_, err := svc.ToggleSubscription(ctx, alice, bob.ID)
	require.NoError(t, err)
	_, err = svc.ToggleSubscription(ctx, bob, carol.ID)
	require.NoError(t, err)

	profile, err := svc.Profile(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, profile.Subscriptions, 1)
	assert.Equal(t, carol.ID, profile.Subscriptions[0].ID)
	require.Len(t, profile.Subscribers, 1)
	assert.Equal(t, alice.ID, profile.Subscribers[0].ID)
}

func TestProfileMissingUser(t *testing.T) {
	svc, _, _ := newTestSubscriptionService()
	_, err := svc.Profile(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
