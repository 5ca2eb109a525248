package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fixmycity-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleGuardRequest(t *testing.T, callerRole interface{}, permitted ...models.Role) int {
	t.Helper()

	r := gin.New()
	r.GET("/guarded",
		func(c *gin.Context) {
			if callerRole != nil {
				c.Set(ContextRole, callerRole)
			}
		},
		RequireRoles(permitted...),
		func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireRolesAllowsPermittedRole(t *testing.T) {
	code := roleGuardRequest(t, models.RoleAdmin, models.RoleAdmin)
	assert.Equal(t, http.StatusOK, code)

	code = roleGuardRequest(t, models.RoleCrew, models.RoleCitizen, models.RoleCrew)
	assert.Equal(t, http.StatusOK, code)
}

func TestRequireRolesRejectsOtherRoles(t *testing.T) {
	code := roleGuardRequest(t, models.RoleCitizen, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, code)

	code = roleGuardRequest(t, models.RoleCrew, models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, code)

	code = roleGuardRequest(t, models.RoleAdmin, models.RoleCitizen, models.RoleCrew)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRequireRolesWithoutIdentity(t *testing.T) {
	code := roleGuardRequest(t, nil, models.RoleAdmin)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRequireRolesRejectsNonRoleValue(t *testing.T) {
	code := roleGuardRequest(t, "admin", models.RoleAdmin)
	assert.Equal(t, http.StatusForbidden, code)
}
