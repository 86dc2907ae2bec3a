package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/uni-schedule-api/internal/middleware"
	"github.com/noah-isme/uni-schedule-api/internal/service"
	appErrors "github.com/noah-isme/uni-schedule-api/pkg/errors"
	"github.com/noah-isme/uni-schedule-api/pkg/response"
)

// idParam reads a positive integer path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// bindQuery binds query parameters into dest and validates its tags.
func bindQuery(c *gin.Context, validate *validator.Validate, dest interface{}) error {
	if err := c.ShouldBindQuery(dest); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid query parameters")
	}
	if err := validate.Struct(dest); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return nil
}

func writeQueryResult[T any](c *gin.Context, result *service.QueryResult[T]) {
	if result.NotModified {
		response.NotModified(c, result.ETag)
		return
	}
	middleware.SetCacheHit(c, result.CacheHit)
	middleware.SetDataVersion(c, result.ETag)
	if result.CacheHit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	response.Payload(c, http.StatusOK, result.Payload, result.ETag)
}

func etagMatcher(c *gin.Context) func(string) bool {
	return func(etag string) bool {
		return response.ETagMatches(c, etag)
	}
}

func sendDocument(c *gin.Context, doc *service.ExportDocument) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", doc.Filename))
	c.Header("X-Export-ID", doc.ID)
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
