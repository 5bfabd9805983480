package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitlink/api/internal/middleware"
	"fitlink/api/internal/repository"
	"fitlink/api/internal/service"
)

type tagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

func (h HandlerSet) AddTags(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tagService.Assign(c.Request.Context(), current, req.Tags); err != nil {
		var unknownTag *service.UnknownTagError
		if errors.As(err, &unknownTag) {
			c.JSON(http.StatusBadRequest, message(msgTagNotExist+unknownTag.Name))
			return
		}
		h.log.Error().Err(err).Int64("user_id", current.ID).Msg("add tags failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, message(msgTagsAdded))
}

type changeTagLevelRequest struct {
	Tag     string `json:"tag" binding:"required"`
	LevelID int32  `json:"levelId" binding:"required"`
}

func (h HandlerSet) ChangeTagLevel(c *gin.Context) {
	var req changeTagLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.tagService.ChangeLevel(c.Request.Context(), req.Tag, req.LevelID)
	var unknownTag *service.UnknownTagError
	switch {
	case errors.As(err, &unknownTag):
		c.JSON(http.StatusBadRequest, message(msgTagNotExist+unknownTag.Name))
	case errors.Is(err, repository.ErrLevelNotFound):
		c.JSON(http.StatusNotFound, message(msgLevelNotFound))
	case err != nil:
		h.log.Error().Err(err).Str("tag", req.Tag).Msg("change tag level failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, message(msgTagLevelChanged))
	}
}

func (h HandlerSet) DeleteTags(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.tagService.Remove(c.Request.Context(), current, req.Tags); err != nil {
		var unknownTag *service.UnknownTagError
		if errors.As(err, &unknownTag) {
			c.JSON(http.StatusBadRequest, message(msgTagNotExist+unknownTag.Name))
			return
		}
		h.log.Error().Err(err).Int64("user_id", current.ID).Msg("delete tags failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, message(msgTagsDeleted))
}
