package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const msgInvalidBody = "Invalid request body"

// bindJSON decodes the request body into dst. An empty body leaves dst
// zeroed for validation to reject. A field of the wrong JSON type counts as
// missing and is answered with requiredMsg.
func bindJSON(c *gin.Context, dst any, requiredMsg string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		c.JSON(http.StatusBadRequest, gin.H{"message": requiredMsg})
		return false
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
	return false
}
