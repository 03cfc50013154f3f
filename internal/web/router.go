// Package web exposes the clinic handlers over HTTP with gin.
package web

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinic-api/internal/handler"
	"clinic-api/internal/middleware"
)

// Checker reports whether the service can reach its store.
type Checker interface {
	Serving() bool
}

type Options struct {
	// Origins allowed by CORS. "*" (or an empty list) reflects any origin.
	Origins []string
	// Limiter, when set, throttles /signup and /login per client IP.
	Limiter *middleware.RateLimiter
	// Health backs GET /healthz. Nil means always healthy.
	Health Checker
	Log    *slog.Logger
}

// NewRouter builds the HTTP route table around h.
func NewRouter(h *handler.Handler, opts Options) *gin.Engine {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.Recovery(opts.Log), middleware.RequestLog(opts.Log), cors.New(corsConfig(opts.Origins)))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
	})

	s := &server{h: h, health: opts.Health}

	creds := r.Group("")
	if opts.Limiter != nil {
		creds.Use(middleware.RateLimit(opts.Limiter))
	}
	creds.POST("/signup", s.signup)
	creds.POST("/login", s.login)

	r.POST("/appointments", s.book)
	r.GET("/appointments", s.listByQuery)
	r.GET("/appointments/user/:email", s.listByPath)

	r.POST("/contact", s.contact)

	r.GET("/healthz", s.healthz)
	return r
}

func corsConfig(origins []string) cors.Config {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")
	return cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowAll || slices.Contains(origins, origin)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
