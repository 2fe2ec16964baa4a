package http

import (
	stdhttp "net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/peerlink/signaling-server/internal/config"
	"github.com/peerlink/signaling-server/internal/core"
)

// NewServer builds the HTTP server: signaling WebSocket at /ws, the room
// introspection API, and optional static hosting for the browser client.
func NewServer(relay *core.Relay, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	router.GET("/health", healthHandler)
	router.GET("/api/rooms", roomsHandler(relay))
	router.GET("/ws", gin.WrapH(NewWSHandler(relay, logger)))

	if cfg.StaticDir != "" {
		router.NoRoute(staticHandler(cfg.StaticDir))
	} else {
		router.NoRoute(bannerHandler)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}

func bannerHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "WebRTC signaling server is running\n")
}

// staticHandler serves the browser client files. "/" serves webrtc.html
// when present, the banner otherwise.
func staticHandler(dir string) gin.HandlerFunc {
	fileServer := stdhttp.FileServer(stdhttp.Dir(dir))
	return func(c *gin.Context) {
		if c.Request.Method != stdhttp.MethodGet {
			c.Status(stdhttp.StatusMethodNotAllowed)
			return
		}
		if c.Request.URL.Path == "/" {
			index := filepath.Join(dir, "webrtc.html")
			if _, err := os.Stat(index); err == nil {
				c.File(index)
				return
			}
			bannerHandler(c)
			return
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	}
}
