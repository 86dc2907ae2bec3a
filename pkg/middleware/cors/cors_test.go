package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/lesson/groups", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func request(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/lesson/groups", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAllowedOrigin(t *testing.T) {
	r := newRouter("https://schedule.example.edu/")

	rec := request(r, http.MethodGet, "https://schedule.example.edu")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://schedule.example.edu", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Cutover-Stage")

	rec = request(r, http.MethodGet, "https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestAllowAllAndPreflight(t *testing.T) {
	r := newRouter()

	assert.Equal(t, "*", request(r, http.MethodGet, "").Header().Get("Access-Control-Allow-Origin"))

	rec := request(r, http.MethodOptions, "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "If-None-Match")
}
