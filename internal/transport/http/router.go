package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/transport/http/middleware"
	"github.com/iamasit07/connect-four/internal/transport/websocket"
)

// NewRouter wires the health check and the websocket endpoint.
func NewRouter(ws *websocket.Handler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// origin checks for the upgrade happen in the websocket handler
	router.GET("/ws", gin.WrapF(ws.HandleWebSocket))

	return router
}
