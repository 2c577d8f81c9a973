package api

import (
	"io"

	"github.com/gin-gonic/gin"
)

// stream pushes freshly raised notifications to the client over SSE. The
// subscription is detached when the client disconnects or the broadcaster
// closes.
func (h *Handler) stream(c *gin.Context) {
	sub := h.broadcaster.Subscribe()
	defer sub.Unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case n, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		}
	})
}
