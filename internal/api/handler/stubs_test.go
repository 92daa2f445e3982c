package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"time"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/anyhire/anyhire-be/internal/api/model"
	"github.com/anyhire/anyhire-be/internal/api/storage"
	"github.com/anyhire/anyhire-be/internal/report"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memStatusStore is an in-memory JobStatusStore for handler tests.
type memStatusStore struct {
	records map[string]model.JobStatus
	failing bool
}

func newMemStatusStore() *memStatusStore {
	return &memStatusStore{records: make(map[string]model.JobStatus)}
}

func (m *memStatusStore) CreateJobStatus(_ context.Context, record *model.JobStatus) error {
	if m.failing {
		return context.DeadlineExceeded
	}
	m.records[record.StatusID] = *record
	return nil
}

func (m *memStatusStore) ListJobStatuses(_ context.Context) ([]model.JobStatus, error) {
	if m.failing {
		return nil, context.DeadlineExceeded
	}
	out := make([]model.JobStatus, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StatusID < out[j].StatusID })
	return out, nil
}

func (m *memStatusStore) GetJobStatusByID(_ context.Context, statusID string) (*model.JobStatus, error) {
	r, ok := m.records[statusID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &r, nil
}

func (m *memStatusStore) GetJobStatusByCategory(_ context.Context, category string) (*model.JobStatus, error) {
	var found *model.JobStatus
	for id := range m.records {
		r := m.records[id]
		if r.Category == category && (found == nil || r.CreatedAt.Before(found.CreatedAt)) {
			found = &r
		}
	}
	if found == nil {
		return nil, domain.ErrNotFound
	}
	return found, nil
}

func (m *memStatusStore) UpdateJobStatus(_ context.Context, statusID string, update storage.JobStatusUpdate) (*model.JobStatus, error) {
	r, ok := m.records[statusID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	if update.Category != nil {
		r.Category = *update.Category
	}
	if update.Title != nil {
		r.Title = *update.Title
	}
	if update.JobType != nil {
		r.JobType = *update.JobType
	}
	if update.Payment != nil {
		r.Payment = *update.Payment
	}
	if update.Deadline != nil {
		r.Deadline = *update.Deadline
	}
	if update.Status != nil {
		r.Status = *update.Status
	}
	r.UpdatedAt = time.Now()

	m.records[statusID] = r
	return &r, nil
}

func (m *memStatusStore) DeleteJobStatusesByOwner(_ context.Context, userID string) (int64, error) {
	var deleted int64
	for id, r := range m.records {
		if r.UserID == userID {
			delete(m.records, id)
			deleted++
		}
	}
	return deleted, nil
}

// memNotificationStore is an in-memory NotificationStore.
type memNotificationStore struct {
	notifications []model.Notification
}

func (m *memNotificationStore) forUser(userID string) []model.Notification {
	out := []model.Notification{}
	for _, n := range m.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memNotificationStore) ListNotifications(_ context.Context, userID string, limit, offset int) ([]model.Notification, error) {
	all := m.forUser(userID)
	if offset >= len(all) {
		return []model.Notification{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (m *memNotificationStore) CountNotifications(_ context.Context, userID string) (int, error) {
	return len(m.forUser(userID)), nil
}

func (m *memNotificationStore) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range m.forUser(userID) {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationStore) MarkNotificationRead(_ context.Context, notificationID, userID string) (*model.Notification, error) {
	for i := range m.notifications {
		n := &m.notifications[i]
		if n.NotificationID == notificationID && n.UserID == userID {
			n.Read = true
			out := *n
			return &out, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memNotificationStore) MarkAllNotificationsRead(_ context.Context, userID string) (int64, error) {
	var affected int64
	for i := range m.notifications {
		n := &m.notifications[i]
		if n.UserID == userID && !n.Read {
			n.Read = true
			affected++
		}
	}
	return affected, nil
}

func (m *memNotificationStore) ClearNotifications(_ context.Context, userID string) (int64, error) {
	kept := m.notifications[:0]
	var deleted int64
	for _, n := range m.notifications {
		if n.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	m.notifications = kept
	return deleted, nil
}

// stubGenerator returns a fixed report and records its inputs.
type stubGenerator struct {
	lastType   string
	lastRange  string
	lastUserID string
	err        error
}

func (s *stubGenerator) Generate(_ context.Context, reportType, timeRange, userID string) (*report.Report, error) {
	s.lastType = reportType
	s.lastRange = timeRange
	s.lastUserID = userID

	if s.err != nil {
		return nil, s.err
	}

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	rt := reportType
	if rt == "" {
		rt = "combined"
	}
	return &report.Report{
		ReportType:  rt,
		GeneratedAt: now,
		Window:      report.Window{Token: "7d", Start: now.AddDate(0, 0, -7), End: now},
		UserID:      userID,
		Jobs:        &report.JobsSummary{Total: 1},
	}, nil
}

// capturingPublisher records published event bodies.
type capturingPublisher struct {
	bodies [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, body []byte, _ string) error {
	p.bodies = append(p.bodies, body)
	return nil
}

// newTestRouter wires handlers onto a bare gin engine with a fixed
// principal, mirroring the production route table.
func newTestRouter(deps *Dependencies, principal domain.Principal) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		SetPrincipal(c, principal)
		c.Next()
	})

	statusHandler := NewJobStatusHandler(deps)
	notificationHandler := NewNotificationHandler(deps)
	reportHandler := NewReportHandler(deps)

	r.POST("/api/v1/jobstatus", statusHandler.Create)
	r.GET("/api/v1/jobstatus", statusHandler.List)
	r.GET("/api/v1/jobstatus/:id", statusHandler.GetByID)
	r.GET("/api/v1/jobstatus/category/:category", statusHandler.GetByCategory)
	r.PUT("/api/v1/jobstatus/:id", statusHandler.Update)
	r.DELETE("/api/v1/jobstatus/owner/:userId", statusHandler.DeleteByOwner)

	r.GET("/api/v1/notifications", notificationHandler.List)
	r.GET("/api/v1/notifications/unread-count", notificationHandler.UnreadCount)
	r.PATCH("/api/v1/notifications/read-all", notificationHandler.MarkAllRead)
	r.PATCH("/api/v1/notifications/:notificationId/read", notificationHandler.MarkRead)
	r.DELETE("/api/v1/notifications/clear-all", notificationHandler.ClearAll)

	r.GET("/api/v1/reports/generate", reportHandler.Generate)
	r.GET("/api/v1/reports/user/:userId", reportHandler.GenerateForUser)

	return r
}

func testDeps(statuses JobStatusStore, notifications NotificationStore, reports ReportGenerator, events EventPublisher) *Dependencies {
	return &Dependencies{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		Statuses:      statuses,
		Notifications: notifications,
		Reports:       reports,
		Events:        events,
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
