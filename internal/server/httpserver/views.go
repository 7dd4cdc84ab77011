package httpserver

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed views/*.html
var views embed.FS

const (
	msgNotFound = "404 Not Found"
	htmlType    = "text/html; charset=utf-8"
)

func mustView(name string) []byte {
	b, err := views.ReadFile("views/" + name)
	if err != nil {
		panic(err)
	}
	return b
}

var (
	indexPage    = mustView("index.html")
	notFoundPage = mustView("404.html")
)

func (s *HTTPServer) index(c *gin.Context) {
	c.Data(http.StatusOK, htmlType, indexPage)
}

// notFound answers unknown routes in the format the client prefers: HTML
// first, then JSON, else plain text.
func (s *HTTPServer) notFound(c *gin.Context) {
	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEHTML:
		c.Data(http.StatusNotFound, htmlType, notFoundPage)
	case gin.MIMEJSON:
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	default:
		c.String(http.StatusNotFound, msgNotFound)
	}
}
