package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/anyhire/anyhire-be/internal/api/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobStatusRouter(store *memStatusStore, publisher *capturingPublisher) *gin.Engine {
	deps := testDeps(store, &memNotificationStore{}, &stubGenerator{}, publisher)
	return newTestRouter(deps, domain.Principal{ID: "u1", Role: domain.RoleUser})
}

func seedJobStatus(store *memStatusStore, userID, category, status string) model.JobStatus {
	record := model.JobStatus{
		StatusID:  uuid.New().String(),
		UserID:    userID,
		Category:  category,
		Title:     "Deep clean apartment",
		JobType:   "one-off",
		Payment:   120,
		Deadline:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Status:    status,
		CreatedAt: time.Now().Add(-time.Hour),
		UpdatedAt: time.Now().Add(-time.Hour),
	}
	store.records[record.StatusID] = record
	return record
}

func TestJobStatusHandler_Create(t *testing.T) {
	store := newMemStatusStore()
	r := newJobStatusRouter(store, &capturingPublisher{})

	body := `{
		"user_id": "u1",
		"category": "cleaning",
		"title": "Deep clean apartment",
		"job_type": "one-off",
		"payment": 120,
		"deadline": "2025-04-01"
	}`

	w := doRequest(r, http.MethodPost, "/api/v1/jobstatus", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var created model.JobStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	assert.NotEmpty(t, created.StatusID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, domain.JobStatusPending, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	_, ok := store.records[created.StatusID]
	assert.True(t, ok)
}

func TestJobStatusHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing required fields",
			body: `{"user_id": "u1"}`,
		},
		{
			name: "negative payment",
			body: `{"user_id":"u1","category":"cleaning","title":"t","job_type":"one-off","payment":-5,"deadline":"2025-04-01"}`,
		},
		{
			name: "unknown status",
			body: `{"user_id":"u1","category":"cleaning","title":"t","job_type":"one-off","payment":5,"deadline":"2025-04-01","status":"archived"}`,
		},
		{
			name: "bad deadline",
			body: `{"user_id":"u1","category":"cleaning","title":"t","job_type":"one-off","payment":5,"deadline":"next tuesday"}`,
		},
		{
			name: "malformed json",
			body: `{"user_id":`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStatusStore()
			r := newJobStatusRouter(store, &capturingPublisher{})

			w := doRequest(r, http.MethodPost, "/api/v1/jobstatus", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, store.records)
		})
	}
}

func TestJobStatusHandler_List(t *testing.T) {
	store := newMemStatusStore()
	seedJobStatus(store, "u1", "cleaning", domain.JobStatusPending)
	seedJobStatus(store, "u2", "plumbing", domain.JobStatusAccepted)
	r := newJobStatusRouter(store, &capturingPublisher{})

	w := doRequest(r, http.MethodGet, "/api/v1/jobstatus", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		JobStatuses []model.JobStatus `json:"job_statuses"`
		Count       int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.JobStatuses, 2)
}

func TestJobStatusHandler_GetByID(t *testing.T) {
	store := newMemStatusStore()
	record := seedJobStatus(store, "u1", "cleaning", domain.JobStatusPending)
	r := newJobStatusRouter(store, &capturingPublisher{})

	t.Run("found", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/jobstatus/"+record.StatusID, "")
		require.Equal(t, http.StatusOK, w.Code)

		var got model.JobStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, record.StatusID, got.StatusID)
	})

	t.Run("missing", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/jobstatus/"+uuid.New().String(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("not a uuid", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/jobstatus/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestJobStatusHandler_GetByCategory(t *testing.T) {
	store := newMemStatusStore()
	record := seedJobStatus(store, "u1", "cleaning", domain.JobStatusPending)
	r := newJobStatusRouter(store, &capturingPublisher{})

	w := doRequest(r, http.MethodGet, "/api/v1/jobstatus/category/cleaning", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got model.JobStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, record.StatusID, got.StatusID)

	w = doRequest(r, http.MethodGet, "/api/v1/jobstatus/category/gardening", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJobStatusHandler_Update(t *testing.T) {
	store := newMemStatusStore()
	record := seedJobStatus(store, "u1", "cleaning", domain.JobStatusPending)
	publisher := &capturingPublisher{}
	r := newJobStatusRouter(store, publisher)

	w := doRequest(r, http.MethodPut, "/api/v1/jobstatus/"+record.StatusID, `{"status":"accepted"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var got model.JobStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.JobStatusAccepted, got.Status)

	// Untouched fields survive a partial update
	assert.Equal(t, record.Title, got.Title)
	assert.Equal(t, record.Payment, got.Payment)

	// A status transition publishes one notification event
	require.Len(t, publisher.bodies, 1)
	var event struct {
		EventID string `json:"event_id"`
		UserID  string `json:"user_id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(publisher.bodies[0], &event))
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "u1", event.UserID)
	assert.Contains(t, event.Message, "accepted")
}

func TestJobStatusHandler_UpdateWithoutStatusChangeDoesNotPublish(t *testing.T) {
	store := newMemStatusStore()
	record := seedJobStatus(store, "u1", "cleaning", domain.JobStatusPending)
	publisher := &capturingPublisher{}
	r := newJobStatusRouter(store, publisher)

	w := doRequest(r, http.MethodPut, "/api/v1/jobstatus/"+record.StatusID, `{"payment": 200}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, publisher.bodies)
}

func TestJobStatusHandler_UpdateErrors(t *testing.T) {
	store := newMemStatusStore()
	record := seedJobStatus(store, "u1", "cleaning", domain.JobStatusPending)
	r := newJobStatusRouter(store, &capturingPublisher{})

	tests := []struct {
		name     string
		path     string
		body     string
		wantCode int
	}{
		{
			name:     "empty update",
			path:     "/api/v1/jobstatus/" + record.StatusID,
			body:     `{}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "invalid status value",
			path:     "/api/v1/jobstatus/" + record.StatusID,
			body:     `{"status":"archived"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "missing record",
			path:     "/api/v1/jobstatus/" + uuid.New().String(),
			body:     `{"status":"accepted"}`,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestJobStatusHandler_DeleteByOwner(t *testing.T) {
	store := newMemStatusStore()
	seedJobStatus(store, "u1", "cleaning", domain.JobStatusPending)
	seedJobStatus(store, "u1", "plumbing", domain.JobStatusSaved)
	kept := seedJobStatus(store, "u2", "gardening", domain.JobStatusPending)
	r := newJobStatusRouter(store, &capturingPublisher{})

	w := doRequest(r, http.MethodDelete, "/api/v1/jobstatus/owner/u1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Deleted)

	require.Len(t, store.records, 1)
	_, ok := store.records[kept.StatusID]
	assert.True(t, ok)

	// Deleting again is still a success with a zero count
	w = doRequest(r, http.MethodDelete, "/api/v1/jobstatus/owner/u1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(0), resp.Deleted)
}

func TestJobStatusHandler_StoreFailure(t *testing.T) {
	store := newMemStatusStore()
	store.failing = true
	r := newJobStatusRouter(store, &capturingPublisher{})

	w := doRequest(r, http.MethodGet, "/api/v1/jobstatus", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
