package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"fitlink/api/internal/models"
	"fitlink/api/internal/security"
)

type AvatarStore interface {
	SetAvatar(ctx context.Context, id int64, fileName string) error
}

type ActivityImageStore interface {
	GetByID(ctx context.Context, id int64) (models.Activity, error)
	SetImage(ctx context.Context, id int64, fileName string) error
}

// ObjectStore is the slice of the blob store the media flow needs.
type ObjectStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Remove(ctx context.Context, name string) error
}

// MediaService writes avatar and activity images to the object store and
// records the generated file name on the owning row. Replacing an image
// removes the superseded object so the bucket does not accumulate orphans.
type MediaService struct {
	users      AvatarStore
	activities ActivityImageStore
	store      ObjectStore
	log        zerolog.Logger
}

func NewMediaService(users AvatarStore, activities ActivityImageStore, store ObjectStore, log zerolog.Logger) *MediaService {
	return &MediaService{users: users, activities: activities, store: store, log: log}
}

func (s *MediaService) upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if file == nil || header == nil || header.Filename == "" {
		return "", errors.New("invalid file payload")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	name := uuid.NewString() + "." + strings.TrimPrefix(filepath.Base(header.Filename), ".")
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.store.Put(ctx, name, data, contentType); err != nil {
		return "", err
	}
	return name, nil
}

func (s *MediaService) SetAvatar(ctx context.Context, user models.User, file multipart.File, header *multipart.FileHeader) (string, error) {
	name, err := s.upload(ctx, file, header)
	if err != nil {
		return "", err
	}
	if err := s.users.SetAvatar(ctx, user.ID, name); err != nil {
		return "", err
	}
	s.removeSuperseded(ctx, user.AvatarFile, name)
	return name, nil
}

// removeSuperseded drops the previous object once the row points at the new
// one. A failed removal only leaks the old object, so it is logged, not fatal.
func (s *MediaService) removeSuperseded(ctx context.Context, previous *string, current string) {
	if previous == nil || *previous == "" || *previous == current {
		return
	}
	if err := s.store.Remove(ctx, *previous); err != nil {
		s.log.Warn().Err(err).Str("object", *previous).Msg("remove superseded object failed")
	}
}

// SetActivityImage stores an image for the activity; only the owner or an
// elevated user may attach one.
func (s *MediaService) SetActivityImage(ctx context.Context, acting models.User, activityID int64, file multipart.File, header *multipart.FileHeader) (string, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return "", err
	}
	if !security.CanMutate(acting, activity.UserID) {
		return "", ErrForbidden
	}

	name, err := s.upload(ctx, file, header)
	if err != nil {
		return "", err
	}
	if err := s.activities.SetImage(ctx, activityID, name); err != nil {
		return "", err
	}
	s.removeSuperseded(ctx, activity.ImageFile, name)
	return name, nil
}
