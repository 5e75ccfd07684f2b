package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fuadmd/WHH-SBG/internal/application/notification"
	"github.com/fuadmd/WHH-SBG/internal/infrastructure/realtime"
)

// NotificationHandler handles inbox requests and the live event stream
type NotificationHandler struct {
	BaseHandler
	inbox     *notification.InboxService
	hub       *realtime.Hub
	heartbeat time.Duration
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(inbox *notification.InboxService, hub *realtime.Hub, heartbeat time.Duration) *NotificationHandler {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &NotificationHandler{inbox: inbox, hub: hub, heartbeat: heartbeat}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	protected.GET("/notifications", h.List)
	protected.GET("/notifications/unread", h.ListUnread)
	protected.GET("/notifications/unread/count", h.UnreadCount)
	protected.GET("/notifications/stream", h.Stream)
	protected.PUT("/notifications/:id/read", h.MarkRead)
	protected.PUT("/notifications/read", h.MarkAllRead)
	protected.DELETE("/notifications/:id", h.Remove)
}

// List returns the caller's most recent notifications
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	resp, err := h.inbox.List(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListUnread returns the caller's unread notifications
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	resp, err := h.inbox.ListUnread(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// UnreadCount returns how many unread notifications the caller has
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.inbox.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"count": count})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.inbox.MarkRead(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// MarkAllRead marks every unread notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.inbox.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Remove deletes a notification from the caller's inbox
func (h *NotificationHandler) Remove(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.inbox.Remove(c.Request.Context(), id, currentUserID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Stream delivers notifications over Server-Sent Events until the client
// disconnects. Heartbeat comments keep intermediaries from timing out the
// connection.
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID := currentUserID(c)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.Error(c, http.StatusInternalServerError, "STREAMING_UNSUPPORTED", "Streaming is not supported")
		return
	}

	sub := h.hub.Subscribe(userID)
	defer sub.Close()

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)

	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, open := <-sub.C:
			if !open {
				return
			}
			if msg.ID != "" {
				fmt.Fprintf(c.Writer, "id: %s\n", msg.ID)
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
