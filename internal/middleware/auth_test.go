package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-schedule-api/internal/models"
	"github.com/noah-isme/uni-schedule-api/internal/service"
)

func signedToken(t *testing.T, tokens *service.TokenService, role models.UserRole, expiresIn time.Duration) string {
	t.Helper()
	token, err := tokens.Sign(&models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	})
	require.NoError(t, err)
	return token
}

func newAuthRouter(tokens *service.TokenService, roles ...models.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/refresh", JWT(tokens), RequireRoles(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentClaims(c).UserID)
	})
	r.GET("/optional", OptionalJWT(tokens), func(c *gin.Context) {
		_, exists := c.Get(ContextUserKey)
		c.JSON(http.StatusOK, gin.H{"authenticated": exists})
	})
	return r
}

func serve(r http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWTRejectsMissingAndMalformedHeaders(t *testing.T) {
	tokens := service.NewTokenService("secret")
	r := newAuthRouter(tokens, models.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/refresh", "").Code)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid authorization header")
}

func TestJWTRejectsForeignAndExpiredTokens(t *testing.T) {
	tokens := service.NewTokenService("secret")
	r := newAuthRouter(tokens, models.RoleAdmin)

	foreign := signedToken(t, service.NewTokenService("other"), models.RoleAdmin, time.Hour)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/refresh", foreign).Code)

	expired := signedToken(t, tokens, models.RoleAdmin, -time.Hour)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/refresh", expired).Code)
}

func TestJWTAndRBAC(t *testing.T) {
	tokens := service.NewTokenService("secret")
	r := newAuthRouter(tokens, models.RoleAdmin, models.RoleCoordinator)

	rec := serve(r, http.MethodPost, "/refresh", signedToken(t, tokens, models.RoleCoordinator, time.Hour))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())

	rec = serve(r, http.MethodPost, "/refresh", signedToken(t, tokens, models.RoleUser, time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "role user may not perform this action")
}

func TestOptionalJWT(t *testing.T) {
	tokens := service.NewTokenService("secret")
	r := newAuthRouter(tokens)

	assert.JSONEq(t, `{"authenticated":false}`, serve(r, http.MethodGet, "/optional", "").Body.String())
	assert.JSONEq(t, `{"authenticated":false}`, serve(r, http.MethodGet, "/optional", "garbage").Body.String())
	assert.JSONEq(t, `{"authenticated":true}`, serve(r, http.MethodGet, "/optional", signedToken(t, tokens, models.RoleUser, time.Hour)).Body.String())
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", RequireRoles(models.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/x", "").Code)
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		header     string
		token      string
		present    bool
		wellFormed bool
	}{
		{"", "", false, false},
		{"Bearer abc", "abc", true, true},
		{"bearer  abc ", "abc", true, true},
		{"Bearer", "", true, false},
		{"Bearer   ", "", true, false},
		{"Basic abc", "", true, false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}
		token, present, wellFormed := bearerToken(c)
		assert.Equal(t, tc.token, token, tc.header)
		assert.Equal(t, tc.present, present, tc.header)
		assert.Equal(t, tc.wellFormed, wellFormed, tc.header)
	}
}
