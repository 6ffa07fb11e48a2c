package http

import (
	"context"
	"net/http"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"feud-board-service/internal/app"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// RouterOptions tunes the HTTP surface.
type RouterOptions struct {
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter wires the board API, the websocket feed and the health check.
func NewRouter(service *app.HostService, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())

	api := NewAPIHandler(service)
	ws := NewWSHandler(service)
	limiter := newClientLimiter(opts.RateLimitRPS, opts.RateLimitBurst)

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/ws", gin.WrapF(ws.ServeWS))

	group := router.Group("/api")
	group.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	group.Use(cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	}))
	group.GET("/board", api.Board)
	// consuming the signal is a state change, so it is never a GET
	group.POST("/popup", api.Popup)

	actions := group.Group("", limiter.middleware())
	actions.POST("/guess", api.Guess)
	actions.POST("/answers/:rank/reveal", api.Reveal)
	actions.POST("/next", api.Next)
	actions.POST("/prev", api.Prev)

	return router
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.Request.Header.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), requestIDKey, reqID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-Id", reqID)
		c.Next()
	}
}
