package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anyhire/anyhire-be/internal/report"
	"github.com/gin-gonic/gin"
)

// ReportHandler handles report HTTP requests
type ReportHandler struct {
	logger  *slog.Logger
	reports ReportGenerator
}

// NewReportHandler creates a new ReportHandler instance
func NewReportHandler(deps *Dependencies) *ReportHandler {
	return &ReportHandler{
		logger:  deps.Logger,
		reports: deps.Reports,
	}
}

// Generate handles GET /api/v1/reports/generate?reportType=&timeRange=&format=
// Platform-wide reports are admin only.
func (h *ReportHandler) Generate(c *gin.Context) {
	principal, _ := PrincipalFrom(c)
	if !principal.IsAdmin() {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
		return
	}

	h.generate(c, c.Query("reportType"), "")
}

// GenerateForUser handles GET /api/v1/reports/user/:userId?timeRange=&format=
// Callers may only report on themselves unless they are an admin.
func (h *ReportHandler) GenerateForUser(c *gin.Context) {
	principal, _ := PrincipalFrom(c)

	userID := c.Param("userId")
	if !principal.CanAccessUser(userID) {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
		return
	}

	h.generate(c, c.Query("reportType"), userID)
}

func (h *ReportHandler) generate(c *gin.Context, reportType, userID string) {
	format, err := report.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	r, err := h.reports.Generate(c.Request.Context(), reportType, c.Query("timeRange"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	switch format {
	case report.FormatCSV:
		data, err := report.ToCSV(r)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.Header("Content-Disposition", attachment(r, "csv"))
		c.Data(http.StatusOK, "text/csv", data)

	case report.FormatPDF:
		// Rendered fully in memory first; the response is written only
		// once the document is complete.
		data, err := report.ToPDF(r)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.Header("Content-Disposition", attachment(r, "pdf"))
		c.Data(http.StatusOK, "application/pdf", data)

	default:
		c.JSON(http.StatusOK, r)
	}
}

func attachment(r *report.Report, ext string) string {
	return fmt.Sprintf(`attachment; filename="anyhire_%s_%s.%s"`, r.ReportType, r.Window.Token, ext)
}
