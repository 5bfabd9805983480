package handlers

import (
	"time"

	"fitlink/api/internal/models"
)

// Client-facing messages. The web frontend matches on these strings,
// so they must stay stable across releases.
const (
	msgUserRegistered  = "User registered successfully!"
	msgUsernameTaken   = "Error: Username is already taken!"
	msgEmailInUse      = "Error: Email is already in use!"
	msgBadCredentials  = "Bad credentials"
	msgLogout          = "You are logout."
	msgUserNotFound    = "Error: can not find user data."
	msgUserUpdated     = "User data was update successfully!"
	msgUserDeleted     = "User was deleted successfully!"
	msgUserNotDeleted  = "Error: User was not deleted!"
	msgEditOnlySelf    = "You can edit only yourself data."
	msgEditOnlyOwn     = "You can edit only yourself data!"
	msgDeleteOnlyOwn   = "You can delete only yourself data!"
	msgActivityCreated = "Activity create successfully!"
	msgActivityUpdated = "Activity was update successfully!"
	msgActivityDeleted = "Activity was deleted successfully!"
	msgTagsAdded       = "Tags was added successfully!"
	msgTagsDeleted     = "Tags was deleted successfully!"
	msgTagLevelChanged = "Tag level was changed successfully!"
	msgTagNotExist     = "Tags is not exist! "
	msgLevelNotFound   = "Error: can not find level data."
	msgTokensAllValid  = "All tokens have valid expiry date!"
	msgTokensSwept     = "Tokens with expiry date was deleted successfully!"
)

type messageResponse struct {
	Message string `json:"message"`
}

func message(text string) messageResponse {
	return messageResponse{Message: text}
}

type jwtResponse struct {
	Token    string   `json:"token"`
	Type     string   `json:"type"`
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

type statusResponse struct {
	Name        string     `json:"name"`
	ActivatedAt time.Time  `json:"activationDate"`
	EndsAt      *time.Time `json:"endDate,omitempty"`
}

type levelResponse struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

type tagResponse struct {
	ID    int32          `json:"id"`
	Name  string         `json:"name"`
	Level *levelResponse `json:"level,omitempty"`
}

type userResponse struct {
	ID            int64            `json:"id"`
	Username      string           `json:"userName"`
	Email         string           `json:"userEmail"`
	Locale        string           `json:"locale,omitempty"`
	CreatedAt     time.Time        `json:"creationDate"`
	LastVisitedAt *time.Time       `json:"lastVisitedDate,omitempty"`
	Avatar        *string          `json:"avatarFileName,omitempty"`
	MainRoles     []string         `json:"mainRoles"`
	SubRoles      []string         `json:"subRoles"`
	Statuses      []statusResponse `json:"statuses"`
	Tags          []tagResponse    `json:"tags"`
}

type userShortResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"userName"`
	Email     string    `json:"userEmail"`
	CreatedAt time.Time `json:"creationDate"`
	Roles     []string  `json:"roles,omitempty"`
}

type activityResponse struct {
	ID        int64         `json:"id"`
	Index     string        `json:"index"`
	Title     string        `json:"title"`
	Body      string        `json:"body"`
	Latitude  *float64      `json:"latitude,omitempty"`
	Longitude *float64      `json:"longitude,omitempty"`
	Image     *string       `json:"imageFileName,omitempty"`
	CreatedAt time.Time     `json:"creationDate"`
	EventAt   *time.Time    `json:"eventDate,omitempty"`
	Tags      []tagResponse `json:"tags"`
}

type profileResponse struct {
	User          userResponse        `json:"user"`
	Subscriptions []userShortResponse `json:"subscriptions"`
	Subscribers   []userShortResponse `json:"subscribers"`
}

func toTagResponse(t models.Tag) tagResponse {
	out := tagResponse{ID: t.ID, Name: string(t.Name)}
	if t.Level != nil {
		out.Level = &levelResponse{ID: t.Level.ID, Name: string(t.Level.Name)}
	}
	return out
}

func toTagResponses(tags []models.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	return out
}

func toUserResponse(u models.User) userResponse {
	roles := make([]string, 0, len(u.MainRoles))
	for _, r := range u.MainRoles {
		roles = append(roles, string(r))
	}
	subRoles := make([]string, 0, len(u.SubRoles))
	for _, r := range u.SubRoles {
		subRoles = append(subRoles, string(r))
	}
	statuses := make([]statusResponse, 0, len(u.Statuses))
	for _, s := range u.Statuses {
		statuses = append(statuses, statusResponse{
			Name:        string(s.Name),
			ActivatedAt: s.ActivatedAt,
			EndsAt:      s.EndsAt,
		})
	}
	return userResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		Locale:        u.Locale,
		CreatedAt:     u.CreatedAt,
		LastVisitedAt: u.LastVisitedAt,
		Avatar:        u.AvatarFile,
		MainRoles:     roles,
		SubRoles:      subRoles,
		Statuses:      statuses,
		Tags:          toTagResponses(u.Tags),
	}
}

func toUserShortResponses(users []models.User) []userShortResponse {
	out := make([]userShortResponse, 0, len(users))
	for _, u := range users {
		roles := make([]string, 0, len(u.MainRoles))
		for _, r := range u.MainRoles {
			roles = append(roles, string(r))
		}
		out = append(out, userShortResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			Roles:     roles,
		})
	}
	return out
}

func toActivityResponse(a models.Activity) activityResponse {
	return activityResponse{
		ID:        a.ID,
		Index:     a.Index,
		Title:     a.Title,
		Body:      a.Body,
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Image:     a.ImageFile,
		CreatedAt: a.CreatedAt,
		EventAt:   a.EventAt,
		Tags:      toTagResponses(a.Tags),
	}
}
