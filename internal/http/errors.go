package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farmatrack/internal/logger"
	"farmatrack/internal/service"
)

// apiError тело любого ответа с ошибкой
type apiError struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// validationError ошибка разбора или валидации тела запроса
type validationError struct{ msg string }

func (e *validationError) Error() string { return e.msg }

// fail передаёт ошибку в errorResponder и прерывает цепочку
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// errorResponder единая трансляция ошибок в apiError
func errorResponder(strictNotFound bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status, msg := classify(err, strictNotFound)
		if status >= http.StatusInternalServerError {
			logger.Error("request.unhandled",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", c.GetString(requestIDKey),
				"err", err)
		}
		writeError(c, status, msg)
	}
}

func classify(err error, strictNotFound bool) (int, string) {
	var verr *validationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.msg
	}
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		return http.StatusInternalServerError, "Internal server error"
	}
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, svcErr.Msg
	case errors.Is(err, service.ErrNotFound) && strictNotFound:
		return http.StatusNotFound, svcErr.Msg
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, svcErr.Msg
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, apiError{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   msg,
		Path:      c.Request.URL.Path,
	})
}

func recoverPanic(c *gin.Context, recovered any) {
	logger.Error("request.panic",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetString(requestIDKey),
		"panic", recovered)
	writeError(c, http.StatusInternalServerError, "Internal server error")
}
