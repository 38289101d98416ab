// Package controller holds the shared HTTP plumbing for the handler
// subpackages: the mapping from the service error taxonomy to status codes.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dkhromov/stafftests/internal/apperr"
	"github.com/dkhromov/stafftests/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RespondError writes the HTTP response matching the error's place in the
// taxonomy. Anything unrecognised is a 500.
func RespondError(c *gin.Context, err error) {
	if fe, ok := apperr.AsFieldErrors(err); ok {
		c.JSON(http.StatusUnprocessableEntity, dto.ValidationErrorResponse{Errors: fe})
		return
	}
	var nf *apperr.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: nf.Error()})
		return
	}
	if apperr.IsConflict(err) {
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if errors.Is(err, apperr.ErrForbidden) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "forbidden"})
		return
	}
	if errors.Is(err, apperr.ErrUnauthenticated) {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}
	log.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
}

// UintParam parses a path parameter as an id. ok=false means the 400 has
// already been written.
func UintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// PageParams reads page/page_size query parameters with their defaults.
func PageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	return page, pageSize
}
