package web

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nguyentantai21042004/cutsheet/internal/logger"
)

const requestIDHeader = "X-Request-ID"

func (s *Server) setupRouter() {
	r := s.engine
	r.MaxMultipartMemory = s.cfg.Limits.MaxFileSize

	r.Use(
		gin.CustomRecovery(func(c *gin.Context, err any) {
			s.logger.Error(c.Request.Context(), "panic: %v\n%s", err, debug.Stack())
			c.AbortWithStatus(http.StatusInternalServerError)
		}),
		s.requestID(),
		s.accessLog(),
		gzip.Gzip(gzip.DefaultCompression),
		cors.New(cors.Config{
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Accept", "Content-Length", "Content-Type", "Origin", requestIDHeader},
			ExposeHeaders:    []string{requestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
			AllowOriginFunc: func(_ string) bool {
				return true
			},
		}),
	)

	r.GET("/health", s.getHealth)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
	})

	v1 := r.Group("/v1")
	v1.GET("/templates", s.listTemplates)
	v1.GET("/templates/:name", s.getTemplate)
	v1.POST("/templates/reload", s.reloadTemplates)
	v1.GET("/history", s.listHistory)

	limited := v1.Group("", s.rateLimit())
	limited.POST("/edit-lists", s.createEditList)
	limited.POST("/stats", s.inspect)
}

// requestID reuses the caller's X-Request-ID or generates one.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorOutput{
				Kind:    "rate_limited",
				Message: "Too many requests, please slow down.",
			})
			return
		}
		c.Next()
	}
}
