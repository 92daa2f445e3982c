package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/anyhire/anyhire-be/internal/api/domain"
	"github.com/anyhire/anyhire-be/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportRouter(gen *stubGenerator, principal domain.Principal) *gin.Engine {
	deps := testDeps(newMemStatusStore(), &memNotificationStore{}, gen, nil)
	return newTestRouter(deps, principal)
}

func TestReportHandler_GenerateAdminOnly(t *testing.T) {
	gen := &stubGenerator{}

	t.Run("admin", func(t *testing.T) {
		r := newReportRouter(gen, domain.Principal{ID: "a1", Role: domain.RoleAdmin})
		w := doRequest(r, http.MethodGet, "/api/v1/reports/generate?reportType=jobs&timeRange=7d", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jobs", gen.lastType)
		assert.Equal(t, "7d", gen.lastRange)
		assert.Equal(t, "", gen.lastUserID)
	})

	t.Run("regular user", func(t *testing.T) {
		r := newReportRouter(&stubGenerator{}, domain.Principal{ID: "u1", Role: domain.RoleUser})
		w := doRequest(r, http.MethodGet, "/api/v1/reports/generate", "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestReportHandler_GenerateForUserScoping(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
		target    string
		wantCode  int
	}{
		{
			name:      "user reports on self",
			principal: domain.Principal{ID: "u1", Role: domain.RoleUser},
			target:    "u1",
			wantCode:  http.StatusOK,
		},
		{
			name:      "user reports on someone else",
			principal: domain.Principal{ID: "u1", Role: domain.RoleUser},
			target:    "u2",
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "admin reports on anyone",
			principal: domain.Principal{ID: "a1", Role: domain.RoleAdmin},
			target:    "u2",
			wantCode:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{}
			r := newReportRouter(gen, tt.principal)

			w := doRequest(r, http.MethodGet, "/api/v1/reports/user/"+tt.target, "")
			require.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.target, gen.lastUserID)
			}
		})
	}
}

func TestReportHandler_Formats(t *testing.T) {
	r := newReportRouter(&stubGenerator{}, domain.Principal{ID: "a1", Role: domain.RoleAdmin})

	t.Run("json default", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/reports/generate?reportType=jobs", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var got report.Report
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "jobs", got.ReportType)
		require.NotNil(t, got.Jobs)
	})

	t.Run("csv attachment", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/reports/generate?reportType=jobs&format=csv", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Equal(t, `attachment; filename="anyhire_jobs_7d.csv"`, w.Header().Get("Content-Disposition"))
		assert.Contains(t, w.Body.String(), "report_type")
	})

	t.Run("pdf attachment", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/reports/generate?format=pdf", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "application/pdf")
		assert.Equal(t, `attachment; filename="anyhire_combined_7d.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "%PDF", w.Body.String()[:4])
	})

	t.Run("unknown format", func(t *testing.T) {
		w := doRequest(r, http.MethodGet, "/api/v1/reports/generate?format=xlsx", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReportHandler_GeneratorValidationError(t *testing.T) {
	gen := &stubGenerator{err: domain.NewValidationError("timeRange", "must be one of 24h, 7d, 30d, 90d")}
	r := newReportRouter(gen, domain.Principal{ID: "a1", Role: domain.RoleAdmin})

	w := doRequest(r, http.MethodGet, "/api/v1/reports/generate?timeRange=1y", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "timeRange")
}
