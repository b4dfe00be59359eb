package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/gymrat/internal/domain/result"
	"github.com/polkiloo/gymrat/internal/server/http/dto"
)

// bindJSON decodes and validates the body, replying on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			abortDetail(c, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		abortDetail(c, http.StatusBadRequest, dto.Describe(err))
		return false
	}
	return true
}

func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Detail: detail})
}

// writeOutcome replies 200 with the outcome or 400 with its detail.
func writeOutcome[T any](c *gin.Context, out result.Outcome[T]) {
	if !out.OK() {
		abortDetail(c, http.StatusBadRequest, out.Detail())
		return
	}
	c.JSON(http.StatusOK, out)
}
