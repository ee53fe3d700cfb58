package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/snowRepo/LMS-sub006/library/shared/core"
	"github.com/snowRepo/LMS-sub006/library/shared/shell"
)

const (
	msgNotFound     = "The requested record was not found."
	msgForbidden    = "You are not allowed to do this."
	msgDuplicate    = "You already have a pending reservation for this book."
	msgUnavailable  = "No copies of this book are available right now."
	msgInvalidState = "This action is not possible in the current state."
	msgTryLater     = "Something went wrong, please try again later."
	msgTimeout      = "The request took too long, please try again later."
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusOf maps an error returned by a handler onto the HTTP status and the message shown to the user.
func statusOf(err error) (int, string) {
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		if msg, ok := httpErr.Message.(string); ok {
			return httpErr.Code, msg
		}
		return httpErr.Code, http.StatusText(httpErr.Code)
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, core.ErrAlreadyExists):
		return http.StatusConflict, msgDuplicate
	case errors.Is(err, core.ErrUnavailable):
		return http.StatusConflict, msgUnavailable
	case errors.Is(err, core.ErrInvalidState):
		return http.StatusUnprocessableEntity, msgInvalidState
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, msgTimeout
	default:
		return http.StatusInternalServerError, msgTryLater
	}
}

// errorHandler answers every error returned by a route. Business rule violations are logged at info,
// everything else at error together with the cause.
func errorHandler(logger shell.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := statusOf(err)
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)

		if logger != nil {
			args := []any{
				logAttrRequestID, requestID,
				logAttrMethod, c.Request().Method,
				logAttrPath, c.Path(),
				logAttrStatus, status,
				logAttrError, err.Error(),
			}

			if status >= http.StatusInternalServerError {
				logger.Error(logMsgRequestFailed, args...)
			} else {
				logger.Info(logMsgRequestRefused, args...)
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, errorResponse{Message: msg, RequestID: requestID})
		}

		if writeErr != nil && logger != nil {
			logger.Error(logMsgResponseFailed, logAttrRequestID, requestID, logAttrError, writeErr.Error())
		}
	}
}
