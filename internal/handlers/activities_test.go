package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitlink/api/internal/models"
	"fitlink/api/internal/repository"
	"fitlink/api/internal/service"
)

type memActivityStore struct {
	nextID int64
	rows   map[int64]models.Activity
}

func newMemActivityStore() *memActivityStore {
	return &memActivityStore{rows: map[int64]models.Activity{}}
}

func (m *memActivityStore) Create(_ context.Context, activity models.Activity) (int64, error) {
	m.nextID++
	activity.ID = m.nextID
	m.rows[activity.ID] = activity
	return activity.ID, nil
}

func (m *memActivityStore) GetByID(_ context.Context, id int64) (models.Activity, error) {
	a, ok := m.rows[id]
	if !ok {
		return models.Activity{}, repository.ErrActivityNotFound
	}
	return a, nil
}

func (m *memActivityStore) ListByUser(_ context.Context, userID int64) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range m.rows {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memActivityStore) UpdateContent(_ context.Context, id int64, title, body string) error {
	a, ok := m.rows[id]
	if !ok {
		return repository.ErrActivityNotFound
	}
	a.Title = title
	a.Body = body
	m.rows[id] = a
	return nil
}

func (m *memActivityStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return repository.ErrActivityNotFound
	}
	delete(m.rows, id)
	return nil
}

type memTagResolver struct{}

func (memTagResolver) GetByName(_ context.Context, name models.TagName) (models.Tag, error) {
	switch name {
	case models.TagJogging:
		return models.Tag{ID: 1, Name: name}, nil
	case models.TagFitness:
		return models.Tag{ID: 2, Name: name}, nil
	case models.TagCrossfit:
		return models.Tag{ID: 3, Name: name}, nil
	}
	return models.Tag{}, repository.ErrTagNotFound
}

type activityFixture struct {
	store  *memActivityStore
	router *gin.Engine
	user   models.User
}

func newActivityFixture(t *testing.T) *activityFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemActivityStore()
	h := HandlerSet{
		log:        zerolog.Nop(),
		activities: service.NewActivityService(store, memTagResolver{}, zerolog.Nop()),
	}

	f := &activityFixture{
		store: store,
		user:  models.User{ID: 1, Username: "alice"},
	}

	router := gin.New()
	authed := router.Group("/api/auth/users/activities")
	authed.Use(func(c *gin.Context) {
		c.Set("current_user", f.user)
	})
	authed.GET("", h.ListActivities)
	authed.GET("/:id", h.GetActivity)
	authed.POST("/newActivity", h.CreateActivity)
	authed.PUT("/:id", h.UpdateActivity)
	authed.DELETE("/:id", h.DeleteActivity)
	f.router = router
	return f
}

func (f *activityFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateActivityEndpoint(t *testing.T) {
	f := newActivityFixture(t)

	rec := f.do(t, http.MethodPost, "/api/auth/users/activities/newActivity", gin.H{
		"title": "Morning run",
		"body":  "5k around the park",
		"tags":  []string{"JOGGING"},
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Activity create successfully!", decodeMessage(t, rec))

	rec = f.do(t, http.MethodPost, "/api/auth/users/activities/newActivity", gin.H{
		"title": "Swim",
		"body":  "laps",
		"tags":  []string{"SWIMMING"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Tags is not exist! SWIMMING", decodeMessage(t, rec))
}

func TestUpdateActivityEndpointMessages(t *testing.T) {
	f := newActivityFixture(t)

	id, err := f.store.Create(context.Background(), models.Activity{UserID: 1, Title: "a", Body: "b"})
	require.NoError(t, err)
	otherID, err := f.store.Create(context.Background(), models.Activity{UserID: 2, Title: "c", Body: "d"})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPut, "/api/auth/users/activities/"+strconv.FormatInt(id, 10), gin.H{
		"title": "new", "body": "body",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Activity was update successfully!", decodeMessage(t, rec))

	rec = f.do(t, http.MethodPut, "/api/auth/users/activities/"+strconv.FormatInt(otherID, 10), gin.H{
		"title": "new", "body": "body",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You can edit only yourself data!", decodeMessage(t, rec))
}

func TestDeleteActivityEndpointMessages(t *testing.T) {
	f := newActivityFixture(t)

	id, err := f.store.Create(context.Background(), models.Activity{UserID: 1, Title: "a", Body: "b"})
	require.NoError(t, err)
	otherID, err := f.store.Create(context.Background(), models.Activity{UserID: 2, Title: "c", Body: "d"})
	require.NoError(t, err)

	rec := f.do(t, http.MethodDelete, "/api/auth/users/activities/"+strconv.FormatInt(otherID, 10), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You can delete only yourself data!", decodeMessage(t, rec))

	rec = f.do(t, http.MethodDelete, "/api/auth/users/activities/"+strconv.FormatInt(id, 10), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Activity was deleted successfully!", decodeMessage(t, rec))
}

func TestListActivitiesIsSelfScoped(t *testing.T) {
	f := newActivityFixture(t)

	_, err := f.store.Create(context.Background(), models.Activity{UserID: 1, Title: "mine", Body: "b"})
	require.NoError(t, err)
	_, err = f.store.Create(context.Background(), models.Activity{UserID: 2, Title: "theirs", Body: "b"})
	require.NoError(t, err)

	rec := f.do(t, http.MethodGet, "/api/auth/users/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []activityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].Title)
}
