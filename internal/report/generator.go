package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anyhire/anyhire-be/internal/api/domain"
)

// Store supplies the per-collection aggregates a report is composed
// from. An empty userID means platform-wide.
type Store interface {
	JobsSummary(ctx context.Context, w Window, userID string) (*JobsSummary, error)
	BookingsSummary(ctx context.Context, w Window, userID string) (*BookingsSummary, error)
	PaymentsSummary(ctx context.Context, w Window, userID string) (*PaymentsSummary, error)
	RatingsSummary(ctx context.Context, w Window, userID string) (*RatingsSummary, error)
	SupportSummary(ctx context.Context, w Window, userID string) (*SupportSummary, error)
}

// Generator composes reports from Store aggregates.
type Generator struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewGenerator(store Store, logger *slog.Logger) *Generator {
	return &Generator{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Generate builds one report. reportType selects a single sub-report,
// or the combined report when empty. userID scopes every query to one
// owner when non-empty. Store failures abort the whole report; there
// is no partial result.
func (g *Generator) Generate(ctx context.Context, reportType, timeRange, userID string) (*Report, error) {
	if !ValidType(reportType) {
		return nil, domain.NewValidationError("reportType", "must be one of jobs, bookings, payments, ratings, support")
	}

	now := g.now()
	window, err := ResolveWindow(timeRange, now)
	if err != nil {
		return nil, err
	}

	r := &Report{
		ReportType:  reportType,
		GeneratedAt: now,
		Window:      window,
		UserID:      userID,
	}
	if r.ReportType == "" {
		r.ReportType = "combined"
	}

	include := func(t string) bool {
		return reportType == "" || reportType == t
	}

	if include(TypeJobs) {
		if r.Jobs, err = g.store.JobsSummary(ctx, window, userID); err != nil {
			return nil, fmt.Errorf("jobs summary: %w", err)
		}
	}

	if include(TypeBookings) {
		if r.Bookings, err = g.store.BookingsSummary(ctx, window, userID); err != nil {
			return nil, fmt.Errorf("bookings summary: %w", err)
		}
	}

	if include(TypePayments) {
		if r.Payments, err = g.store.PaymentsSummary(ctx, window, userID); err != nil {
			return nil, fmt.Errorf("payments summary: %w", err)
		}
	}

	if include(TypeRatings) {
		if r.Ratings, err = g.store.RatingsSummary(ctx, window, userID); err != nil {
			return nil, fmt.Errorf("ratings summary: %w", err)
		}
	}

	if include(TypeSupport) {
		if r.Support, err = g.store.SupportSummary(ctx, window, userID); err != nil {
			return nil, fmt.Errorf("support summary: %w", err)
		}
	}

	g.logger.Info("Report generated",
		slog.String("report_type", r.ReportType),
		slog.String("time_range", window.Token),
		slog.String("user_id", userID),
	)

	return r, nil
}
