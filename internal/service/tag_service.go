package service

import (
	"context"

	"github.com/rs/zerolog"

	"fitlink/api/internal/models"
)

type TagStore interface {
	TagResolver
	SetLevel(ctx context.Context, tagID int32, levelID int32) error
	SetLevelByName(ctx context.Context, tagID int32, level models.LevelName) error
	AddUserTag(ctx context.Context, userID int64, tagID int32) error
	RemoveUserTag(ctx context.Context, userID int64, tagID int32) error
	ListByUser(ctx context.Context, userID int64) ([]models.Tag, error)
}

type TagService struct {
	tags TagStore
	log  zerolog.Logger
}

func NewTagService(tags TagStore, log zerolog.Logger) *TagService {
	return &TagService{tags: tags, log: log}
}

// Assign attaches the named tags to the user. Self-service assignment
// always pins the tag's level to FIRST_LEVEL; all names are resolved before
// any link is written.
func (s *TagService) Assign(ctx context.Context, user models.User, names []string) error {
	tags, err := s.resolve(ctx, names)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		if err := s.tags.SetLevelByName(ctx, tag.ID, models.LevelFirst); err != nil {
			return err
		}
		if err := s.tags.AddUserTag(ctx, user.ID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

// ChangeLevel pins the named tag to an arbitrary level by numeric id. The
// route restricts this to elevated roles.
func (s *TagService) ChangeLevel(ctx context.Context, name string, levelID int32) error {
	tags, err := s.resolve(ctx, []string{name})
	if err != nil {
		return err
	}
	return s.tags.SetLevel(ctx, tags[0].ID, levelID)
}

// Remove detaches the named tags from the user's set. The taxonomy rows and
// their levels persist for everyone else.
func (s *TagService) Remove(ctx context.Context, user models.User, names []string) error {
	tags, err := s.resolve(ctx, names)
	if err != nil {
		return err
	}
	for _, tag := range tags {
		if err := s.tags.RemoveUserTag(ctx, user.ID, tag.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TagService) ListForUser(ctx context.Context, userID int64) ([]models.Tag, error) {
	return s.tags.ListByUser(ctx, userID)
}

func (s *TagService) resolve(ctx context.Context, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, raw := range names {
		name, err := models.ParseTagName(raw)
		if err != nil {
			return nil, &UnknownTagError{Name: raw}
		}
		tag, err := s.tags.GetByName(ctx, name)
		if err != nil {
			return nil, &UnknownTagError{Name: raw}
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
