package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitlink/api/internal/middleware"
	"fitlink/api/internal/repository"
	"fitlink/api/internal/service"
)

func toProfileResponse(p service.Profile) profileResponse {
	return profileResponse{
		User:          toUserResponse(p.User),
		Subscriptions: toUserShortResponses(p.Subscriptions),
		Subscribers:   toUserShortResponses(p.Subscribers),
	}
}

func (h HandlerSet) GetSubscriptionProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	profile, err := h.subscriptions.Profile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, message(msgUserNotFound))
			return
		}
		h.log.Error().Err(err).Int64("user_id", id).Msg("load profile failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}

func (h HandlerSet) ChangeSubscription(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	channelID, err := strconv.ParseInt(c.Param("channelId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid channel id"})
		return
	}

	profile, err := h.subscriptions.ToggleSubscription(c.Request.Context(), current, channelID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, message(msgUserNotFound))
			return
		}
		h.log.Error().Err(err).Int64("channel_id", channelID).Msg("change subscription failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toProfileResponse(profile))
}
