package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// requestLogger records every request in reqLog.log before passing it on.
func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := c.Request
		line := fmt.Sprintf("%s\t%s\t%s", req.Method, req.URL.RequestURI(), req.Header.Get("Origin"))

		if err := s.events.Log(line, logging.RequestLogFile); err != nil {
			s.logger.Warn(req.Context(), "request log write failed", "error", err)
		}
		s.logger.Info(req.Context(), req.Method+" "+req.URL.Path)

		c.Next()
	}
}

func (s *HTTPServer) rateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.limiter != nil && !s.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}
		c.Next()
	}
}

// requireAuth admits requests carrying a valid bearer token. Without an
// AuthService it admits everything.
func (s *HTTPServer) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.auth == nil {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(c.GetHeader(common.AuthorizationHeaderName), common.BearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": auth.MsgUnauthorized})
			return
		}

		claims, err := s.auth.Verify(token)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": auth.MsgUnauthorized})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}
