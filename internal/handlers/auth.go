package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitlink/api/internal/service"
)

type registerRequest struct {
	Username string   `json:"username" binding:"required"`
	Email    string   `json:"email" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Role     []string `json:"role"`
	Locale   string   `json:"locale"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Roles:    req.Role,
		Locale:   req.Locale,
	})
	switch {
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusBadRequest, message(msgUsernameTaken))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, message(msgEmailInUse))
	case errors.Is(err, service.ErrBlankField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.log.Error().Err(err).Str("username", req.Username).Msg("register failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	default:
		c.JSON(http.StatusOK, message(msgUserRegistered))
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, message(msgBadCredentials))
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	roles := make([]string, 0, len(result.User.MainRoles))
	for _, r := range result.User.MainRoles {
		roles = append(roles, string(r))
	}
	c.JSON(http.StatusOK, jwtResponse{
		Token:    result.Token.Token,
		Type:     "Bearer",
		ID:       result.User.ID,
		Username: result.User.Username,
		Email:    result.User.Email,
		Roles:    roles,
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	raw := c.GetString("access_token")
	if err := h.authService.Logout(c.Request.Context(), raw); err != nil {
		h.log.Warn().Err(err).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, message(msgLogout))
}
