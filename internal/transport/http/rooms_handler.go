package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/peerlink/signaling-server/internal/core"
)

// roomsHandler exposes the relay's live room membership, including each
// peer's display name and remote address.
func roomsHandler(relay *core.Relay) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(stdhttp.StatusOK, relay.Snapshot())
	}
}
