package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/foodlog/internal/attach"
	"github.com/dmitrijs2005/foodlog/internal/common"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to an HTTP status and the message shown to
// the user. Record-level causes are checked before the orchestrator wrappers,
// so an update racing a delete still reads as not found. Upload and persist
// failures keep their cause in the message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, attach.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge, attach.ErrPayloadTooLarge.Error()
	case errors.Is(err, attach.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, attach.ErrUnsupportedMediaType.Error()
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, common.ErrTokenExpired.Error()
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, common.ErrRefreshTokenExpired.Error()
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, common.ErrorUnauthorized.Error()
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, common.ErrorNotFound.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "an account with this email already exists"
	case errors.Is(err, attach.ErrUploadFailed):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, attach.ErrRecordPersistFailed):
		return http.StatusInternalServerError, err.Error()
	default:
		return http.StatusInternalServerError, common.ErrorInternal.Error()
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "status", code, "error", err)
	}
	c.AbortWithStatusJSON(code, errorResponse{Error: msg})
}

func warningText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error() + ", saved without the new image"
}
