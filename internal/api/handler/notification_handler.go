package handler

import (
	"log/slog"
	"net/http"

	"github.com/anyhire/anyhire-be/internal/api/dto"
	"github.com/anyhire/anyhire-be/internal/api/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles notification HTTP requests, always
// scoped to the authenticated principal.
type NotificationHandler struct {
	logger        *slog.Logger
	notifications NotificationStore
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(deps *Dependencies) *NotificationHandler {
	return &NotificationHandler{
		logger:        deps.Logger,
		notifications: deps.Notifications,
	}
}

// List handles GET /api/v1/notifications?page=&limit=
func (h *NotificationHandler) List(c *gin.Context) {
	principal, _ := PrincipalFrom(c)

	var req dto.ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid query parameters"})
		return
	}
	req.Normalize()

	ctx := c.Request.Context()

	total, err := h.notifications.CountNotifications(ctx, principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	unread, err := h.notifications.CountUnread(ctx, principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	offset := (req.Page - 1) * req.Limit
	notifications := []model.Notification{}
	if offset < total {
		notifications, err = h.notifications.ListNotifications(ctx, principal.ID, req.Limit, offset)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	totalPages := (total + req.Limit - 1) / req.Limit

	c.JSON(http.StatusOK, dto.ListNotificationsResponse{
		Notifications: notifications,
		Total:         total,
		Page:          req.Page,
		Limit:         req.Limit,
		TotalPages:    totalPages,
		UnreadCount:   unread,
	})
}

// MarkRead handles PATCH /api/v1/notifications/:notificationId/read
// Another user's notification is indistinguishable from a missing one.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	principal, _ := PrincipalFrom(c)

	notificationID := c.Param("notificationId")
	if _, err := uuid.Parse(notificationID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "notificationId must be a valid UUID"})
		return
	}

	notification, err := h.notifications.MarkNotificationRead(c.Request.Context(), notificationID, principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

// MarkAllRead handles PATCH /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	principal, _ := PrincipalFrom(c)

	affected, err := h.notifications.MarkAllNotificationsRead(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "all notifications marked as read",
		"updated": affected,
	})
}

// UnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	principal, _ := PrincipalFrom(c)

	count, err := h.notifications.CountUnread(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ClearAll handles DELETE /api/v1/notifications/clear-all
func (h *NotificationHandler) ClearAll(c *gin.Context) {
	principal, _ := PrincipalFrom(c)

	deleted, err := h.notifications.ClearNotifications(c.Request.Context(), principal.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "notifications cleared",
		"deleted": deleted,
	})
}
