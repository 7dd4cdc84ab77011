package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/gin-gonic/gin"
)

const msgInternal = "Internal Server Error"

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorNotFound):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotSupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// errorName labels an error for the error log.
func errorName(err error) string {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return "ValidationError"
	case errors.Is(err, common.ErrorNotFound):
		return "NotFoundError"
	case errors.Is(err, common.ErrorAlreadyExists):
		return "ConflictError"
	case errors.Is(err, common.ErrorUnauthorized):
		return "UnauthorizedError"
	case errors.Is(err, common.ErrorNotSupported):
		return "NotSupportedError"
	default:
		return "Error"
	}
}

// respondError answers errors that carry a public message directly and
// hands everything else to the error handler with fallback as the message.
func respondError(c *gin.Context, err error, fallback string) {
	if msg, ok := common.PublicMessage(err); ok {
		c.JSON(statusFor(err), gin.H{"message": msg})
		return
	}
	_ = c.Error(err).SetMeta(fallback)
}

// errorHandler is the catch point for errors attached with c.Error.
func (s *HTTPServer) errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}

		msg := msgInternal
		if m, ok := last.Meta.(string); ok && m != "" {
			msg = m
		}
		s.handleError(c, errorName(last.Err), last.Err, msg)
	}
}

// recoverPanic is the gin.CustomRecovery callback.
func (s *HTTPServer) recoverPanic(c *gin.Context, recovered any) {
	err, ok := recovered.(error)
	if !ok {
		err = fmt.Errorf("%v", recovered)
	}
	s.handleError(c, "PanicError", err, msgInternal)
}

// handleError logs err to errLog.log and answers with the status already on
// the response when it is an error status, else 500.
func (s *HTTPServer) handleError(c *gin.Context, name string, err error, msg string) {
	req := c.Request
	line := fmt.Sprintf("%s: %s\t%s\t%s\t%s", name, err.Error(), req.Method, req.URL.RequestURI(), req.Header.Get("Origin"))

	if logErr := s.events.Log(line, logging.ErrorLogFile); logErr != nil {
		s.logger.Warn(req.Context(), "error log write failed", "error", logErr)
	}
	s.logger.Error(req.Context(), "request failed", "name", name, "error", err, "method", req.Method, "path", req.URL.Path)
	s.metrics.errors.WithLabelValues(name).Inc()

	if c.Writer.Written() {
		c.Abort()
		return
	}

	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
