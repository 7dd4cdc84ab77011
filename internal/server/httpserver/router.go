package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *HTTPServer) newRouter() *gin.Engine {
	r := gin.New()

	// metrics sits outermost so it records the status the error handler settles on.
	r.Use(
		s.metrics.middleware(),
		gin.CustomRecovery(s.recoverPanic),
		s.errorHandler(),
		s.requestLogger(),
		cors.New(s.corsConfig()),
		s.rateLimiter(),
	)

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	for _, p := range []string{"/", "/index", "/index.html"} {
		r.GET(p, s.index)
	}

	if s.auth != nil {
		r.POST("/auth", s.login)
	}

	r.POST("/users", s.createUser)

	protected := r.Group("/", s.requireAuth())
	{
		protected.GET("/users", s.listUsers)
		protected.PATCH("/users", s.updateUser)
		protected.DELETE("/users", s.deleteUser)

		protected.GET("/notes", s.listNotes)
		protected.POST("/notes", s.createNote)
		protected.PATCH("/notes", s.updateNote)
		protected.DELETE("/notes", s.deleteNote)
	}

	r.NoRoute(s.notFound)

	return r
}

func (s *HTTPServer) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(s.opts.AllowedOrigins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	} else {
		cfg.AllowOrigins = s.opts.AllowedOrigins
	}
	return cfg
}
