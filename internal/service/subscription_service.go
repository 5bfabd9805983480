package service

import (
	"context"

	"github.com/rs/zerolog"

	"fitlink/api/internal/models"
)

type SubscriptionStore interface {
	Toggle(ctx context.Context, subscriberID, channelID int64) (bool, error)
	ListSubscriptions(ctx context.Context, userID int64) ([]models.User, error)
	ListSubscribers(ctx context.Context, userID int64) ([]models.User, error)
}

type SubscriptionService struct {
	users UserStore
	edges SubscriptionStore
	log   zerolog.Logger
}

func NewSubscriptionService(users UserStore, edges SubscriptionStore, log zerolog.Logger) *SubscriptionService {
	return &SubscriptionService{users: users, edges: edges, log: log}
}

// Profile is a user together with both directions of the follow graph.
type Profile struct {
	User          models.User
	Subscriptions []models.User
	Subscribers   []models.User
}

func (s *SubscriptionService) Profile(ctx context.Context, userID int64) (Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	subscriptions, err := s.edges.ListSubscriptions(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	subscribers, err := s.edges.ListSubscribers(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	return Profile{User: user, Subscriptions: subscriptions, Subscribers: subscribers}, nil
}

// ToggleSubscription flips the follow edge from the acting user to the
// channel: an existing edge is removed, a missing one added. Subscribing to
// oneself is a no-op that returns the channel profile unchanged.
func (s *SubscriptionService) ToggleSubscription(ctx context.Context, acting models.User, channelID int64) (Profile, error) {
	if acting.ID == channelID {
		return s.Profile(ctx, channelID)
	}

	// resolve first so a missing channel surfaces as not-found
	if _, err := s.users.GetByID(ctx, channelID); err != nil {
		return Profile{}, err
	}

	subscribed, err := s.edges.Toggle(ctx, acting.ID, channelID)
	if err != nil {
		return Profile{}, err
	}
	s.log.Debug().
		Int64("subscriber", acting.ID).
		Int64("channel", channelID).
		Bool("subscribed", subscribed).
		Msg("subscription toggled")

	return s.Profile(ctx, channelID)
}
