package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"fitlink/api/internal/models"
)

func rolesRouter(user *models.User, required ...models.MainRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if user != nil {
				c.Set("current_user", *user)
			}
		},
		RequireRoles(required...),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
	return r
}

func TestRequireRolesAllowsMatch(t *testing.T) {
	user := models.User{ID: 1, MainRoles: []models.MainRole{models.MainRoleModerator}}
	r := rolesRouter(&user, models.MainRoleModerator, models.MainRoleAdministrator)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesRejectsMissingRole(t *testing.T) {
	user := models.User{ID: 1, MainRoles: []models.MainRole{models.MainRoleUser}}
	r := rolesRouter(&user, models.MainRoleAdministrator)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesRejectsAnonymous(t *testing.T) {
	r := rolesRouter(nil, models.MainRoleUser)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
