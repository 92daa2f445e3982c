package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/anyhire/anyhire-be/internal/api/model"
	"github.com/anyhire/anyhire-be/internal/api/storage"
	"github.com/anyhire/anyhire-be/internal/report"
	"github.com/gin-gonic/gin"
)

// JobStatusStore is the persistence surface the job-status handlers
// depend on.
type JobStatusStore interface {
	CreateJobStatus(ctx context.Context, record *model.JobStatus) error
	ListJobStatuses(ctx context.Context) ([]model.JobStatus, error)
	GetJobStatusByID(ctx context.Context, statusID string) (*model.JobStatus, error)
	GetJobStatusByCategory(ctx context.Context, category string) (*model.JobStatus, error)
	UpdateJobStatus(ctx context.Context, statusID string, update storage.JobStatusUpdate) (*model.JobStatus, error)
	DeleteJobStatusesByOwner(ctx context.Context, userID string) (int64, error)
}

// NotificationStore is the persistence surface the notification
// handlers depend on.
type NotificationStore interface {
	ListNotifications(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error)
	CountNotifications(ctx context.Context, userID string) (int, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) (*model.Notification, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error)
	ClearNotifications(ctx context.Context, userID string) (int64, error)
}

// ReportGenerator composes activity reports.
type ReportGenerator interface {
	Generate(ctx context.Context, reportType, timeRange, userID string) (*report.Report, error)
}

// EventPublisher emits notification events. May be nil when messaging
// is disabled; publishing is best effort either way.
type EventPublisher interface {
	Publish(ctx context.Context, body []byte, contentType string) error
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger        *slog.Logger
	Statuses      JobStatusStore
	Notifications NotificationStore
	Reports       ReportGenerator
	Events        EventPublisher
}

const principalKey = "principal"

// SetPrincipal attaches the authenticated caller to the request
// context. Called by the router's auth middleware.
func SetPrincipal(c *gin.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the authenticated caller established by the
// auth middleware.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// respondError maps domain errors to the HTTP contract: 400 for
// validation, 403 forbidden, 404 not found, 500 otherwise. The body is
// always a {message} object.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		// A normal outcome, never logged as a failure.
		c.JSON(http.StatusNotFound, gin.H{"message": "resource not found"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	default:
		logger.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}
