package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/storefront/internal/core/logger"
	"github.com/rafaelleal24/storefront/internal/core/serviceerrors"
)

const internalErrorMessage = "internal server error"

// ErrorKindKey is the gin context key under which HandleError records the
// kind of the error it answered with.
const ErrorKindKey = "error.kind"

type ErrorResponse struct {
	Error string `json:"error" example:"unauthorized"`
}

// HandleError writes the response for err. Service errors carry a message
// that is safe to return; anything else is logged and reported as a 500.
func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		c.Set(ErrorKindKey, svcErr.Kind.String())
		c.JSON(mapKindToHTTP(svcErr.Kind), ErrorResponse{Error: svcErr.Message})
		return
	}

	logger.Error(c.Request.Context(), "http: unhandled error", err, map[string]any{
		"http.method": c.Request.Method,
		"http.route":  c.FullPath(),
	})
	c.Set(ErrorKindKey, "internal")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalErrorMessage})
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	case serviceerrors.KindUnauthorized:
		return http.StatusUnauthorized
	case serviceerrors.KindUpstreamPayment:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
