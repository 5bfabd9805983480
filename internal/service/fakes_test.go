package service

import (
	"context"
	"time"

	"fitlink/api/internal/models"
	"fitlink/api/internal/repository"
)

// In-memory stands-ins for the repositories. They only model what the
// services observe; no SQL semantics beyond the not-found sentinels.

type fakeUserStore struct {
	nextID  int64
	users   map[int64]models.User
	touched map[int64]int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]models.User{}, touched: map[int64]int{}}
}

func (f *fakeUserStore) add(u models.User) models.User {
	if u.ID == 0 {
		f.nextID++
		u.ID = f.nextID
	} else if u.ID > f.nextID {
		f.nextID = u.ID
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, user models.User, status models.Status) (int64, error) {
	user.Statuses = []models.Status{status}
	return f.add(user).ID, nil
}

func (f *fakeUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) TouchLastVisited(_ context.Context, id int64) error {
	f.touched[id]++
	return nil
}

func (f *fakeUserStore) ListShort(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, id int64, username, email string, passwordHash []byte) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Username = username
	u.Email = email
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) SetAvatar(_ context.Context, id int64, fileName string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.AvatarFile = &fileName
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) DeleteCascade(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeTokenStore struct {
	rows map[string]models.Token
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{rows: map[string]models.Token{}}
}

func (f *fakeTokenStore) Create(_ context.Context, token models.Token) error {
	f.rows[token.Token] = token
	return nil
}

func (f *fakeTokenStore) GetByToken(_ context.Context, raw string) (models.Token, error) {
	t, ok := f.rows[raw]
	if !ok {
		return models.Token{}, repository.ErrTokenNotFound
	}
	return t, nil
}

func (f *fakeTokenStore) SetActive(_ context.Context, raw string, active bool) error {
	t, ok := f.rows[raw]
	if !ok {
		return repository.ErrTokenNotFound
	}
	t.Active = active
	f.rows[raw] = t
	return nil
}

func (f *fakeTokenStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var deleted int64
	for raw, t := range f.rows {
		if t.Expired(now) {
			delete(f.rows, raw)
			deleted++
		}
	}
	return deleted, nil
}

type fakeDenylist struct {
	revoked map[string]time.Duration
}

func newFakeDenylist() *fakeDenylist {
	return &fakeDenylist{revoked: map[string]time.Duration{}}
}

func (f *fakeDenylist) Revoke(_ context.Context, token string, ttl time.Duration) error {
	f.revoked[token] = ttl
	return nil
}

type fakeActivityStore struct {
	nextID int64
	rows   map[int64]models.Activity
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{rows: map[int64]models.Activity{}}
}

func (f *fakeActivityStore) Create(_ context.Context, activity models.Activity) (int64, error) {
	f.nextID++
	activity.ID = f.nextID
	f.rows[activity.ID] = activity
	return activity.ID, nil
}

func (f *fakeActivityStore) GetByID(_ context.Context, id int64) (models.Activity, error) {
	a, ok := f.rows[id]
	if !ok {
		return models.Activity{}, repository.ErrActivityNotFound
	}
	return a, nil
}

func (f *fakeActivityStore) ListByUser(_ context.Context, userID int64) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range f.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeActivityStore) UpdateContent(_ context.Context, id int64, title, body string) error {
	a, ok := f.rows[id]
	if !ok {
		return repository.ErrActivityNotFound
	}
	a.Title = title
	a.Body = body
	f.rows[id] = a
	return nil
}

func (f *fakeActivityStore) SetImage(_ context.Context, id int64, fileName string) error {
	a, ok := f.rows[id]
	if !ok {
		return repository.ErrActivityNotFound
	}
	a.ImageFile = &fileName
	f.rows[id] = a
	return nil
}

func (f *fakeActivityStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return repository.ErrActivityNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeTagStore struct {
	tags     map[models.TagName]models.Tag
	levels   map[int32]models.Level
	userTags map[int64]map[int32]bool
}

func newFakeTagStore() *fakeTagStore {
	f := &fakeTagStore{
		tags:     map[models.TagName]models.Tag{},
		levels:   map[int32]models.Level{},
		userTags: map[int64]map[int32]bool{},
	}
	f.tags[models.TagJogging] = models.Tag{ID: 1, Name: models.TagJogging}
	f.tags[models.TagFitness] = models.Tag{ID: 2, Name: models.TagFitness}
	f.tags[models.TagCrossfit] = models.Tag{ID: 3, Name: models.TagCrossfit}
	names := []models.LevelName{
		models.LevelFirst, models.LevelSecond, models.LevelThird, models.LevelFourth,
		models.LevelFifth, models.LevelSixth, models.LevelSeventh, models.LevelEighth,
		models.LevelNinth, models.LevelTenth,
	}
	for i, n := range names {
		f.levels[int32(i+1)] = models.Level{ID: int32(i + 1), Name: n}
	}
	return f
}

func (f *fakeTagStore) GetByName(_ context.Context, name models.TagName) (models.Tag, error) {
	t, ok := f.tags[name]
	if !ok {
		return models.Tag{}, repository.ErrTagNotFound
	}
	return t, nil
}

func (f *fakeTagStore) SetLevel(_ context.Context, tagID int32, levelID int32) error {
	level, ok := f.levels[levelID]
	if !ok {
		return repository.ErrLevelNotFound
	}
	for name, t := range f.tags {
		if t.ID == tagID {
			t.Level = &level
			f.tags[name] = t
			return nil
		}
	}
	return repository.ErrTagNotFound
}

func (f *fakeTagStore) SetLevelByName(_ context.Context, tagID int32, level models.LevelName) error {
	for id, l := range f.levels {
		if l.Name == level {
			return f.SetLevel(context.Background(), tagID, id)
		}
	}
	return repository.ErrLevelNotFound
}

func (f *fakeTagStore) AddUserTag(_ context.Context, userID int64, tagID int32) error {
	if f.userTags[userID] == nil {
		f.userTags[userID] = map[int32]bool{}
	}
	f.userTags[userID][tagID] = true
	return nil
}

func (f *fakeTagStore) RemoveUserTag(_ context.Context, userID int64, tagID int32) error {
	delete(f.userTags[userID], tagID)
	return nil
}

func (f *fakeTagStore) ListByUser(_ context.Context, userID int64) ([]models.Tag, error) {
	var out []models.Tag
	for _, t := range f.tags {
		if f.userTags[userID][t.ID] {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	removed []string
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{objects: map[string][]byte{}}
}

func (f *fakeObjectStore) Put(_ context.Context, name string, data []byte, _ string) error {
	f.objects[name] = data
	return nil
}

func (f *fakeObjectStore) Remove(_ context.Context, name string) error {
	delete(f.objects, name)
	f.removed = append(f.removed, name)
	return nil
}

type edge struct {
	subscriber int64
	channel    int64
}

type fakeSubscriptionStore struct {
	edges map[edge]bool
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{edges: map[edge]bool{}}
}

func (f *fakeSubscriptionStore) Toggle(_ context.Context, subscriberID, channelID int64) (bool, error) {
	e := edge{subscriber: subscriberID, channel: channelID}
	if f.edges[e] {
		delete(f.edges, e)
		return false, nil
	}
	f.edges[e] = true
	return true, nil
}

func (f *fakeSubscriptionStore) ListSubscriptions(_ context.Context, userID int64) ([]models.User, error) {
	var out []models.User
	for e := range f.edges {
		if e.subscriber == userID {
			out = append(out, models.User{ID: e.channel})
		}
	}
	return out, nil
}

func (f *fakeSubscriptionStore) ListSubscribers(_ context.Context, userID int64) ([]models.User, error) {
	var out []models.User
	for e := range f.edges {
		if e.channel == userID {
			out = append(out, models.User{ID: e.subscriber})
		}
	}
	return out, nil
}
