package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/dmitrijs2005/taskhub/internal/logging"
	"github.com/gin-gonic/gin"
)

// statusFor maps a service error to an HTTP status and message key. The
// order matters: specific sentinels wrap the generic ones.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrIDMismatch):
		return http.StatusBadRequest, apierrors.MsgIDMismatch
	case errors.Is(err, common.ErrParse):
		return http.StatusBadRequest, apierrors.MsgInvalidDueDate
	case errors.Is(err, common.ErrEmailTaken):
		return http.StatusBadRequest, apierrors.MsgEmailTaken
	case errors.Is(err, common.ErrInvalidTaskOrLabel):
		return http.StatusBadRequest, apierrors.MsgInvalidTaskOrLabel
	case errors.Is(err, common.ErrLabelAlreadyAttached):
		return http.StatusBadRequest, apierrors.MsgLabelAlreadyAttached
	case errors.Is(err, common.ErrLabelNotAttached):
		return http.StatusBadRequest, apierrors.MsgLabelNotAttached
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, apierrors.MsgInvalidPayload

	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusUnauthorized, apierrors.MsgInvalidCredentials
	case errors.Is(err, common.ErrTaskNotFound):
		return http.StatusNotFound, apierrors.MsgTaskNotFound
	case errors.Is(err, common.ErrSubtaskNotFound):
		return http.StatusNotFound, apierrors.MsgSubtaskNotFound
	case errors.Is(err, common.ErrLabelNotFound):
		return http.StatusNotFound, apierrors.MsgLabelNotFound
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, apierrors.MsgNotFound

	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, apierrors.MsgTokenExpired
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, apierrors.MsgRefreshTokenExpired
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, apierrors.MsgUnauthorized
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, apierrors.MsgNotOwner
	}
	return http.StatusInternalServerError, apierrors.MsgInternal
}

// responder writes translated error bodies. Server errors are logged with
// the request-scoped logger and answered with a generic message.
type responder struct {
	tr  *apierrors.Translator
	log logging.Logger
}

func (r responder) fail(c *gin.Context, err error) {
	status, key := statusFor(err)
	r.abort(c, status, key, err)
}

func (r responder) abort(c *gin.Context, status int, key string, err error) {
	if status >= http.StatusInternalServerError {
		ctx := c.Request.Context()
		logging.FromContext(ctx, r.log).Error(ctx, "request failed", "error", err)
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, r.tr.CreateError(status, key, GetLang(c)))
}
