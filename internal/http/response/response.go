package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/transparency-backend/internal/platform/apierr"
	"github.com/yungbote/transparency-backend/internal/platform/logger"
)

const genericInternalMessage = "internal server error"

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps err onto the envelope. Client errors and upstream
// failures carry their own message; anything else is logged and answered
// with a generic body.
func RespondAPIError(c *gin.Context, log *logger.Logger, err error) {
	if ae, ok := apierr.As(err); ok {
		status := ae.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		if status < http.StatusInternalServerError || status == http.StatusBadGateway {
			RespondError(c, status, ae.Code, ae)
			return
		}
		logInternal(c, log, err)
		RespondError(c, status, ae.Code, errors.New(genericInternalMessage))
		return
	}
	logInternal(c, log, err)
	RespondInternal(c)
}

func RespondInternal(c *gin.Context) {
	RespondError(c, http.StatusInternalServerError, "internal_error", errors.New(genericInternalMessage))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func logInternal(c *gin.Context, log *logger.Logger, err error) {
	if log == nil || err == nil {
		return
	}
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	log.WithContext(c.Request.Context()).Error("Request failed", "method", c.Request.Method, "path", path, "error", err)
}
