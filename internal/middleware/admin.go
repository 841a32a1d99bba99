package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
	"github.com/noah-isme/automated-attendance/pkg/response"
)

// Admin credential headers sent by the client on every admin call.
const (
	AdminIDHeader       = "admin-id"
	AdminPasswordHeader = "admin-password"
)

// AdminAuthenticator validates both admin credential forms.
type AdminAuthenticator interface {
	TokenValidator
	CheckAdminCredentials(id, password string) bool
}

// AdminAuth admits a Bearer token carrying the admin role or, when
// allowHeaders is set, the admin-id/admin-password header pair.
func AdminAuth(auth AdminAuthenticator, allowHeaders bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if claims.Role != models.RoleAdmin {
				response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "admin access required"))
				c.Abort()
				return
			}
			c.Set(ContextClaimsKey, claims)
			c.Next()
			return
		}

		id := c.GetHeader(AdminIDHeader)
		if allowHeaders && id != "" {
			if !auth.CheckAdminCredentials(id, c.GetHeader(AdminPasswordHeader)) {
				response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "Invalid admin credentials"))
				c.Abort()
				return
			}
			c.Set(ContextClaimsKey, &models.Claims{Role: models.RoleAdmin, IDNumber: id})
			c.Next()
			return
		}

		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "admin credentials required"))
		c.Abort()
	}
}
