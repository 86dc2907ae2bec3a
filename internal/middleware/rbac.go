package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

// RequireRoles lets through callers whose token carries one of roles. It must
// run after JWT.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := CurrentClaims(c)
		if claims == nil {
			abortWith(c, appErrors.ErrUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			abortWith(c, appErrors.Clone(appErrors.ErrForbidden, "role "+string(claims.Role)+" may not perform this action"))
			return
		}
		c.Next()
	}
}

// CurrentClaims returns the claims JWT stored on the context, or nil.
func CurrentClaims(c *gin.Context) *models.JWTClaims {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	claims, _ := value.(*models.JWTClaims)
	return claims
}
