package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kiliankoe/paraphrase-relay/internal/ai/openai"
	"github.com/kiliankoe/paraphrase-relay/internal/config"
	"github.com/kiliankoe/paraphrase-relay/internal/paraphrase"
	staticserver "github.com/kiliankoe/paraphrase-relay/static"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// New wires the relay routes and middleware for cfg.
func New(cfg config.Config) *gin.Engine {
	client := openai.New(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.UpstreamTimeout)
	return NewWithHandler(paraphrase.NewHandler(client, cfg.Model, cfg.HasOpenAIKey()))
}

func NewWithHandler(h *paraphrase.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(accessLog())
	r.Use(cors.New(corsConfig()))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "time": time.Now().UTC()})
	})
	h.Register(r)

	// Editor page for everything else
	r.NoRoute(func(c *gin.Context) {
		staticserver.Handler().ServeHTTP(c.Writer, c.Request)
	})
	return r
}

func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		MaxAge:          12 * time.Hour,
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Str("request_id", c.GetString("request_id")).
			Msg("http")
	}
}
