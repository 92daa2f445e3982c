// Package report produces time-windowed activity snapshots across the
// platform's collections and renders them as JSON, CSV or PDF.
package report

import (
	"time"

	"github.com/anyhire/anyhire-be/internal/api/domain"
)

// Report types, one per source collection. An empty type selects the
// combined report.
const (
	TypeJobs     = "jobs"
	TypeBookings = "bookings"
	TypePayments = "payments"
	TypeRatings  = "ratings"
	TypeSupport  = "support"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

const defaultTimeRange = "30d"

var lookbacks = map[string]time.Duration{
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

// Window is the concrete time interval a report covers.
type Window struct {
	Token string    `json:"time_range"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveWindow maps a lookback token to a [now-d, now] interval. An
// empty token selects the default range.
func ResolveWindow(token string, now time.Time) (Window, error) {
	if token == "" {
		token = defaultTimeRange
	}

	lookback, ok := lookbacks[token]
	if !ok {
		return Window{}, domain.NewValidationError("timeRange", "must be one of 24h, 7d, 30d, 90d")
	}

	return Window{
		Token: token,
		Start: now.Add(-lookback),
		End:   now,
	}, nil
}

// ParseFormat validates the requested output format. Empty defaults to
// JSON.
func ParseFormat(format string) (string, error) {
	switch format {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV, FormatPDF:
		return format, nil
	}
	return "", domain.NewValidationError("format", "must be one of json, csv, pdf")
}

// ValidType reports whether reportType names a sub-report. Empty means
// combined and is valid.
func ValidType(reportType string) bool {
	switch reportType {
	case "", TypeJobs, TypeBookings, TypePayments, TypeRatings, TypeSupport:
		return true
	}
	return false
}

// Report is the composed snapshot returned to the caller. It exists
// only for the duration of one response and is never persisted.
type Report struct {
	ReportType  string    `json:"report_type"`
	GeneratedAt time.Time `json:"generated_at"`
	Window      Window    `json:"window"`
	UserID      string    `json:"user_id,omitempty"`

	Jobs     *JobsSummary     `json:"jobs,omitempty"`
	Bookings *BookingsSummary `json:"bookings,omitempty"`
	Payments *PaymentsSummary `json:"payments,omitempty"`
	Ratings  *RatingsSummary  `json:"ratings,omitempty"`
	Support  *SupportSummary  `json:"support,omitempty"`
}

// JobsSummary aggregates job postings inside the window.
type JobsSummary struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ByCategory     map[string]int `json:"by_category"`
	TotalPayment   float64        `json:"total_payment"`
	AveragePayment float64        `json:"average_payment"`
}

// BookingsSummary aggregates bookings inside the window.
type BookingsSummary struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	TotalAmount   float64        `json:"total_amount"`
	AverageAmount float64        `json:"average_amount"`
}

// PaymentsSummary aggregates payments inside the window.
type PaymentsSummary struct {
	Total         int            `json:"total"`
	ByStatus      map[string]int `json:"by_status"`
	ByMethod      map[string]int `json:"by_method"`
	TotalAmount   float64        `json:"total_amount"`
	AverageAmount float64        `json:"average_amount"`
}

// RatingsSummary aggregates ratings inside the window.
type RatingsSummary struct {
	Total        int            `json:"total"`
	AverageScore float64        `json:"average_score"`
	ByScore      map[string]int `json:"by_score"`
}

// SupportSummary aggregates support tickets inside the window.
type SupportSummary struct {
	Total    int            `json:"total"`
	Open     int            `json:"open"`
	Resolved int            `json:"resolved"`
	ByStatus map[string]int `json:"by_status"`
}
