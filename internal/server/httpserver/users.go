package httpserver

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/technotes/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Unable to fetch users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *HTTPServer) createUser(c *gin.Context) {
	var in services.CreateUserInput
	if !bindJSON(c, &in, services.MsgAllFieldsRequired) {
		return
	}

	user, err := s.users.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Unable to create user")
		return
	}

	s.logger.Info(c.Request.Context(), "User created", "username", user.Username)
	c.JSON(http.StatusCreated, gin.H{"message": fmt.Sprintf("New user %s created", user.Username)})
}

func (s *HTTPServer) updateUser(c *gin.Context) {
	var in services.UpdateUserInput
	if !bindJSON(c, &in, services.MsgAllButPasswordRequired) {
		return
	}

	user, err := s.users.Update(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "Unable to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s updated", user.Username)})
}

// deleteUser is routed but unsupported; the body is not read.
func (s *HTTPServer) deleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), ""); err != nil {
		respondError(c, err, "Unable to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
