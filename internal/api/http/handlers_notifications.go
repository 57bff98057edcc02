package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/belmobile/belmobile-backend/internal/notify"
)

// NotificationHandler exposes the notification center to the dashboard: the
// active stack, manual dismissal, and a live SSE feed.
type NotificationHandler struct {
	center *notify.Center
}

func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

func (h *NotificationHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.center.Active())
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	h.center.Dismiss(id)
	c.Status(http.StatusNoContent)
}

// Stream pushes notifications as server-sent events until the client goes
// away.
func (h *NotificationHandler) Stream(c *gin.Context) {
	ch, cancel := h.center.Subscribe()
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("notification", n)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *NotificationHandler) Register(r gin.IRouter) {
	r.GET("/notifications", h.List)
	r.DELETE("/notifications/:id", h.Dismiss)
	r.GET("/notifications/stream", h.Stream)
}
