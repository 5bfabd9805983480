package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fitlink/api/internal/middleware"
	"fitlink/api/internal/repository"
	"fitlink/api/internal/service"
)

func (h HandlerSet) ListActivities(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	activities, err := h.activities.List(c.Request.Context(), current)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", current.ID).Msg("list activities failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]activityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, toActivityResponse(a))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetActivity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	activity, err := h.activities.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrActivityNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
			return
		}
		h.log.Error().Err(err).Int64("activity_id", id).Msg("load activity failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toActivityResponse(activity))
}

type createActivityRequest struct {
	Title     string     `json:"title" binding:"required"`
	Body      string     `json:"body" binding:"required"`
	Tags      []string   `json:"tags"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	CreatedAt *time.Time `json:"creationDate"`
	EventAt   *time.Time `json:"eventDate"`
}

func (h HandlerSet) CreateActivity(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.activities.Create(c.Request.Context(), current, service.CreateActivityInput{
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: req.CreatedAt,
		EventAt:   req.EventAt,
	})
	if err != nil {
		var unknownTag *service.UnknownTagError
		switch {
		case errors.As(err, &unknownTag):
			c.JSON(http.StatusBadRequest, message(msgTagNotExist+unknownTag.Name))
		case errors.Is(err, service.ErrBlankField):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Int64("user_id", current.ID).Msg("create activity failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, message(msgActivityCreated))
}

type updateActivityRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (h HandlerSet) UpdateActivity(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.activities.Update(c.Request.Context(), current, id, req.Title, req.Body)
	switch {
	case errors.Is(err, service.ErrBlankField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusBadRequest, message(msgEditOnlyOwn))
	case err != nil:
		h.log.Error().Err(err).Int64("activity_id", id).Msg("update activity failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, message(msgActivityUpdated))
	}
}

func (h HandlerSet) DeleteActivity(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activity id"})
		return
	}

	err = h.activities.Delete(c.Request.Context(), current, id)
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "activity not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusBadRequest, message(msgDeleteOnlyOwn))
	case err != nil:
		h.log.Error().Err(err).Int64("activity_id", id).Msg("delete activity failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, message(msgActivityDeleted))
	}
}
