package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/uni-schedule-api/internal/models"
)

type stubCutoverService struct {
	result models.CutoverPingResult
	err    error
}

func (s stubCutoverService) PingLegacy(context.Context) (models.CutoverPingResult, error) {
	return s.result, s.err
}

func TestCutoverHandlerSuccess(t *testing.T) {
	handler := NewCutoverHandler(stubCutoverService{result: models.CutoverPingResult{
		Target:    "legacy",
		Reachable: true,
		Stage:     models.CutoverStageShadow,
		Duration:  time.Millisecond,
	}})

	c, rec := newTestContext(http.MethodGet, "/internal/cutover/legacy")
	handler.PingLegacy(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"stage":"shadow"`)
}

func TestCutoverHandlerFailure(t *testing.T) {
	handler := NewCutoverHandler(stubCutoverService{
		result: models.CutoverPingResult{Target: "legacy"},
		err:    errors.New("unreachable"),
	})

	c, rec := newTestContext(http.MethodGet, "/internal/cutover/legacy")
	handler.PingLegacy(c)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unreachable", rec.Header().Get("X-Cutover-Error"))
}

func TestCutoverHandlerUnavailable(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/internal/cutover/legacy")
	NewCutoverHandler(nil).PingLegacy(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
