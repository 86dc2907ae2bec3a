package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
)

func newContext(header string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		c.Request.Header.Set("If-None-Match", header)
	}
	return c, w
}

func TestPayloadWritesUnwrappedBodyWithETag(t *testing.T) {
	c, w := newContext("")
	Payload(c, http.StatusOK, gin.H{"total_conflicts": 0}, "abc")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"abc"`, w.Header().Get("ETag"))
	assert.JSONEq(t, `{"total_conflicts":0}`, w.Body.String())
}

func TestETagMatches(t *testing.T) {
	c, _ := newContext(`"zzz", W/"abc"`)
	assert.True(t, ETagMatches(c, "abc"))
	assert.False(t, ETagMatches(c, "def"))

	c, _ = newContext("")
	assert.False(t, ETagMatches(c, "abc"))
}

func TestErrorUsesStatusFromAppError(t *testing.T) {
	c, w := newContext("")
	Error(c, appErrors.Clone(appErrors.ErrUnknownSchedule, "schedule 9 not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "UNKNOWN_SCHEDULE")

	c, w = newContext("")
	Error(c, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Len(t, c.Errors, 1)
}

func TestNotModifiedWritesStatus(t *testing.T) {
	c, w := newContext(`"abc"`)
	NotModified(c, "abc")

	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Equal(t, `"abc"`, w.Header().Get("ETag"))
	assert.Empty(t, w.Body.Bytes())
}

func TestJSONEnvelope(t *testing.T) {
	c, w := newContext("")
	JSON(c, http.StatusOK, []int{1, 2}, map[string]interface{}{"count": 2})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"data":[1,2],"meta":{"count":2}}`, w.Body.String())

	c, w = newContext("")
	Accepted(c, gin.H{"queued": true})
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"data":{"queued":true}}`, w.Body.String())
}
