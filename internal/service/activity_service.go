package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fitlink/api/internal/models"
	"fitlink/api/internal/security"
)

type ActivityStore interface {
	Create(ctx context.Context, activity models.Activity) (int64, error)
	GetByID(ctx context.Context, id int64) (models.Activity, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Activity, error)
	UpdateContent(ctx context.Context, id int64, title, body string) error
	Delete(ctx context.Context, id int64) error
}

// TagResolver resolves taxonomy entries by name for activity tagging.
type TagResolver interface {
	GetByName(ctx context.Context, name models.TagName) (models.Tag, error)
}

type ActivityService struct {
	activities ActivityStore
	tags       TagResolver
	log        zerolog.Logger
}

func NewActivityService(activities ActivityStore, tags TagResolver, log zerolog.Logger) *ActivityService {
	return &ActivityService{activities: activities, tags: tags, log: log}
}

type CreateActivityInput struct {
	Title     string
	Body      string
	Tags      []string
	Latitude  *float64
	Longitude *float64
	CreatedAt *time.Time
	EventAt   *time.Time
}

// Create validates the post and resolves every requested tag before
// anything is written; one unknown tag name fails the whole creation.
func (s *ActivityService) Create(ctx context.Context, owner models.User, input CreateActivityInput) (models.Activity, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Body) == "" {
		return models.Activity{}, ErrBlankField
	}

	var tags []models.Tag
	for _, raw := range input.Tags {
		name, err := models.ParseTagName(raw)
		if err != nil {
			return models.Activity{}, &UnknownTagError{Name: raw}
		}
		tag, err := s.tags.GetByName(ctx, name)
		if err != nil {
			return models.Activity{}, &UnknownTagError{Name: raw}
		}
		tags = append(tags, tag)
	}

	createdAt := time.Now().UTC()
	if input.CreatedAt != nil {
		createdAt = *input.CreatedAt
	}

	activity := models.Activity{
		Index:     uuid.NewString(),
		UserID:    owner.ID,
		Title:     input.Title,
		Body:      input.Body,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		CreatedAt: createdAt,
		EventAt:   input.EventAt,
		Tags:      tags,
	}

	id, err := s.activities.Create(ctx, activity)
	if err != nil {
		return models.Activity{}, err
	}
	activity.ID = id
	return activity, nil
}

// List returns the acting user's own activities. Scoping is always to the
// owner, regardless of roles.
func (s *ActivityService) List(ctx context.Context, owner models.User) ([]models.Activity, error) {
	return s.activities.ListByUser(ctx, owner.ID)
}

func (s *ActivityService) Get(ctx context.Context, id int64) (models.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

// Update rewrites title and body if the acting user owns the activity or
// clears the elevated role count. Blank content is rejected the same way
// Create rejects it.
func (s *ActivityService) Update(ctx context.Context, acting models.User, id int64, title, body string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(body) == "" {
		return ErrBlankField
	}
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !security.CanMutate(acting, activity.UserID) {
		return ErrForbidden
	}
	return s.activities.UpdateContent(ctx, id, title, body)
}

func (s *ActivityService) Delete(ctx context.Context, acting models.User, id int64) error {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !security.CanMutate(acting, activity.UserID) {
		return ErrForbidden
	}
	return s.activities.Delete(ctx, id)
}
