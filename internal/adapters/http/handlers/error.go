package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
	"github.com/rafaelleal24/smartpantry/internal/core/serviceerrors"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		code := mapKindToHTTP(svcErr.Kind)
		if code >= http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "request failed", err, map[string]any{
				"http.route": c.FullPath(),
			})
		}
		c.JSON(code, ErrorResponse{Error: publicMessage(svcErr)})
		return
	}

	logger.Error(c.Request.Context(), "request failed", err, map[string]any{
		"http.route": c.FullPath(),
	})
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func publicMessage(err *serviceerrors.ServiceError) string {
	if err.Kind == serviceerrors.KindStoreFailure {
		return "service temporarily unavailable"
	}
	return err.Message
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
		return http.StatusForbidden
	case serviceerrors.KindStoreFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
