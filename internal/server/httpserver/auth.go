package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/technotes/internal/server/auth"
	"github.com/dmitrijs2005/technotes/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) login(c *gin.Context) {
	var in auth.LoginInput
	if !bindJSON(c, &in, services.MsgAllFieldsRequired) {
		return
	}

	token, err := s.auth.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Unable to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": token})
}
