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

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toUserShortResponses(users))
}

func (h HandlerSet) GetUserInfo(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Reload so the profile reflects writes from this session.
	user, err := h.userService.GetByID(c.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, message(msgUserNotFound))
			return
		}
		h.log.Error().Err(err).Int64("user_id", current.ID).Msg("load user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = h.userService.Update(c.Request.Context(), current, targetID, service.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		c.JSON(http.StatusNotFound, message(msgUserNotFound))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusBadRequest, message(msgEditOnlySelf))
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, message(msgUsernameTaken))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, message(msgEmailInUse))
	case errors.Is(err, service.ErrBlankField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.log.Error().Err(err).Int64("user_id", targetID).Msg("update user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, message(msgUserUpdated))
	}
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.userService.Delete(c.Request.Context(), targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, message(msgUserNotFound))
			return
		}
		h.log.Error().Err(err).Int64("user_id", targetID).Msg("delete user failed")
		c.JSON(http.StatusBadRequest, message(msgUserNotDeleted))
		return
	}
	c.JSON(http.StatusOK, message(msgUserDeleted))
}

func (h HandlerSet) SweepTokens(c *gin.Context) {
	deleted, err := h.authService.SweepExpired(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("token sweep failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusBadRequest, message(msgTokensAllValid))
		return
	}
	c.JSON(http.StatusOK, message(msgTokensSwept))
}
