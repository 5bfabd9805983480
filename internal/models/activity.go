package models

import "time"

// Activity is a user-authored post, optionally geo-tagged and scheduled.
// Index is a UUID assigned at creation. CreatedAt is immutable once set.
type Activity struct {
	ID        int64
	Index     string
	UserID    int64
	Title     string
	Body      string
	Latitude  *float64
	Longitude *float64
	ImageFile *string
	CreatedAt time.Time
	EventAt   *time.Time
	Tags      []Tag
}
