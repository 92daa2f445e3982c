package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/anyhire/anyhire-be/internal/api/dto"
	"github.com/anyhire/anyhire-be/internal/api/model"
	"github.com/anyhire/anyhire-be/internal/api/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// JobStatusHandler handles job-status HTTP requests
type JobStatusHandler struct {
	logger   *slog.Logger
	statuses JobStatusStore
	events   EventPublisher
}

// NewJobStatusHandler creates a new JobStatusHandler instance
func NewJobStatusHandler(deps *Dependencies) *JobStatusHandler {
	return &JobStatusHandler{
		logger:   deps.Logger,
		statuses: deps.Statuses,
		events:   deps.Events,
	}
}

// Create handles POST /api/v1/jobstatus
func (h *JobStatusHandler) Create(c *gin.Context) {
	var req dto.CreateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	deadline, err := req.Validate()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := req.Status
	if status == "" {
		status = domain.JobStatusPending
	}

	now := time.Now()
	record := model.JobStatus{
		StatusID:  uuid.New().String(),
		UserID:    req.UserID,
		Category:  req.Category,
		Title:     req.Title,
		JobType:   req.JobType,
		Payment:   req.Payment,
		Deadline:  deadline,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.statuses.CreateJobStatus(c.Request.Context(), &record); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job status created",
		slog.String("status_id", record.StatusID),
		slog.String("user_id", record.UserID),
		slog.String("status", record.Status),
	)

	c.JSON(http.StatusCreated, record)
}

// List handles GET /api/v1/jobstatus
func (h *JobStatusHandler) List(c *gin.Context) {
	records, err := h.statuses.ListJobStatuses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_statuses": records,
		"count":        len(records),
	})
}

// GetByID handles GET /api/v1/jobstatus/:id
func (h *JobStatusHandler) GetByID(c *gin.Context) {
	statusID := c.Param("id")
	if _, err := uuid.Parse(statusID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be a valid UUID"})
		return
	}

	record, err := h.statuses.GetJobStatusByID(c.Request.Context(), statusID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetByCategory handles GET /api/v1/jobstatus/category/:category
func (h *JobStatusHandler) GetByCategory(c *gin.Context) {
	category := c.Param("category")

	record, err := h.statuses.GetJobStatusByCategory(c.Request.Context(), category)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// Update handles PUT /api/v1/jobstatus/:id
func (h *JobStatusHandler) Update(c *gin.Context) {
	statusID := c.Param("id")
	if _, err := uuid.Parse(statusID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be a valid UUID"})
		return
	}

	var req dto.UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	if req.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "no fields to update"})
		return
	}

	deadline, err := req.Validate()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	update := storage.JobStatusUpdate{
		Category: req.Category,
		Title:    req.Title,
		JobType:  req.JobType,
		Payment:  req.Payment,
		Deadline: deadline,
		Status:   req.Status,
	}

	record, err := h.statuses.UpdateJobStatus(c.Request.Context(), statusID, update)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Job status updated",
		slog.String("status_id", record.StatusID),
		slog.String("status", record.Status),
	)

	if req.Status != nil {
		h.publishStatusEvent(c.Request.Context(), record)
	}

	c.JSON(http.StatusOK, record)
}

// DeleteByOwner handles DELETE /api/v1/jobstatus/owner/:userId
// Removes every job status owned by the user. Zero matches is still a
// success.
func (h *JobStatusHandler) DeleteByOwner(c *gin.Context) {
	userID := c.Param("userId")

	deleted, err := h.statuses.DeleteJobStatusesByOwner(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "job statuses deleted",
		"deleted": deleted,
	})
}

// publishStatusEvent emits a notification event for a status
// transition. Best effort: a broker failure must not fail the update
// that already committed.
func (h *JobStatusHandler) publishStatusEvent(ctx context.Context, record *model.JobStatus) {
	if h.events == nil {
		return
	}

	event := struct {
		EventID    string    `json:"event_id"`
		UserID     string    `json:"user_id"`
		Message    string    `json:"message"`
		OccurredAt time.Time `json:"occurred_at"`
	}{
		EventID:    uuid.New().String(),
		UserID:     record.UserID,
		Message:    fmt.Sprintf("Your application %q is now %s", record.Title, record.Status),
		OccurredAt: time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("Failed to marshal notification event",
			slog.String("status_id", record.StatusID),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := h.events.Publish(ctx, body, "application/json"); err != nil {
		h.logger.Warn("Failed to publish notification event",
			slog.String("status_id", record.StatusID),
			slog.String("error", err.Error()),
		)
	}
}
