package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/response"
)

// ContextUserKey is the gin context key storing the caller's claims.
const ContextUserKey = "currentUser"

type tokenValidator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
}

// JWT requires an access token issued by the administration backend.
func JWT(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, present, wellFormed := bearerToken(c)
		switch {
		case !present:
			abortWith(c, appErrors.ErrUnauthorized)
			return
		case !wellFormed:
			abortWith(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			return
		}

		claims, err := tokens.ValidateToken(raw)
		if err != nil {
			abortWith(c, err)
			return
		}
		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// OptionalJWT attaches claims from a valid token and lets every request
// through. Used on operator routes when auth is off so audit lines still
// name the caller.
func OptionalJWT(tokens tokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, _, ok := bearerToken(c); ok && tokens != nil {
			if claims, err := tokens.ValidateToken(raw); err == nil {
				c.Set(ContextUserKey, claims)
			}
		}
		c.Next()
	}
}

// bearerToken reports the token of an "Authorization: Bearer" header, whether
// the header was sent at all and whether it had the bearer form.
func bearerToken(c *gin.Context) (string, bool, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false, false
	}
	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", true, false
	}
	return token, true, true
}

func abortWith(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
