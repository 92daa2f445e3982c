package storage

import (
	"context"
	"fmt"

	"github.com/anyhire/anyhire-be/internal/report"
)

// The report queries share one shape: a count/total/average row plus
// grouped breakdowns, all bounded by the resolved window and an
// optional owner filter.

type totalsRow struct {
	Total   int     `db:"total"`
	Sum     float64 `db:"sum"`
	Average float64 `db:"average"`
}

type groupRow struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

// windowFilter renders the WHERE clause for a windowed, optionally
// user-scoped query and the matching args.
func windowFilter(w report.Window, userID string) (string, []interface{}) {
	clause := " WHERE created_at >= $1 AND created_at < $2"
	args := []interface{}{w.Start, w.End}

	if userID != "" {
		clause += " AND user_id = $3"
		args = append(args, userID)
	}

	return clause, args
}

func (s *Storage) totals(ctx context.Context, table, amountColumn string, w report.Window, userID string) (*totalsRow, error) {
	clause, args := windowFilter(w, userID)
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(%s), 0) AS sum,
			COALESCE(AVG(%s), 0) AS average
		FROM %s`, amountColumn, amountColumn, table) + clause

	var row totalsRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s: %w", table, err)
	}

	return &row, nil
}

func (s *Storage) groupCounts(ctx context.Context, table, groupColumn string, w report.Window, userID string) (map[string]int, error) {
	clause, args := windowFilter(w, userID)
	query := fmt.Sprintf(`SELECT %s::text AS key, COUNT(*) AS count FROM %s`, groupColumn, table) +
		clause + fmt.Sprintf(" GROUP BY %s", groupColumn)

	var rows []groupRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to group %s by %s: %w", table, groupColumn, err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Count
	}

	return counts, nil
}

func (s *Storage) JobsSummary(ctx context.Context, w report.Window, userID string) (*report.JobsSummary, error) {
	totals, err := s.totals(ctx, "jobs", "payment", w, userID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.groupCounts(ctx, "jobs", "status", w, userID)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.groupCounts(ctx, "jobs", "category", w, userID)
	if err != nil {
		return nil, err
	}

	return &report.JobsSummary{
		Total:          totals.Total,
		ByStatus:       byStatus,
		ByCategory:     byCategory,
		TotalPayment:   totals.Sum,
		AveragePayment: totals.Average,
	}, nil
}

func (s *Storage) BookingsSummary(ctx context.Context, w report.Window, userID string) (*report.BookingsSummary, error) {
	totals, err := s.totals(ctx, "bookings", "amount", w, userID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.groupCounts(ctx, "bookings", "status", w, userID)
	if err != nil {
		return nil, err
	}

	return &report.BookingsSummary{
		Total:         totals.Total,
		ByStatus:      byStatus,
		TotalAmount:   totals.Sum,
		AverageAmount: totals.Average,
	}, nil
}

func (s *Storage) PaymentsSummary(ctx context.Context, w report.Window, userID string) (*report.PaymentsSummary, error) {
	totals, err := s.totals(ctx, "payments", "amount", w, userID)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.groupCounts(ctx, "payments", "status", w, userID)
	if err != nil {
		return nil, err
	}

	byMethod, err := s.groupCounts(ctx, "payments", "method", w, userID)
	if err != nil {
		return nil, err
	}

	return &report.PaymentsSummary{
		Total:         totals.Total,
		ByStatus:      byStatus,
		ByMethod:      byMethod,
		TotalAmount:   totals.Sum,
		AverageAmount: totals.Average,
	}, nil
}

func (s *Storage) RatingsSummary(ctx context.Context, w report.Window, userID string) (*report.RatingsSummary, error) {
	totals, err := s.totals(ctx, "ratings", "score", w, userID)
	if err != nil {
		return nil, err
	}

	byScore, err := s.groupCounts(ctx, "ratings", "score", w, userID)
	if err != nil {
		return nil, err
	}

	return &report.RatingsSummary{
		Total:        totals.Total,
		AverageScore: totals.Average,
		ByScore:      byScore,
	}, nil
}

func (s *Storage) SupportSummary(ctx context.Context, w report.Window, userID string) (*report.SupportSummary, error) {
	clause, args := windowFilter(w, userID)

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM support_tickets`+clause, args...); err != nil {
		return nil, fmt.Errorf("failed to count support tickets: %w", err)
	}

	byStatus, err := s.groupCounts(ctx, "support_tickets", "status", w, userID)
	if err != nil {
		return nil, err
	}

	return &report.SupportSummary{
		Total:    total,
		Open:     byStatus["open"],
		Resolved: byStatus["resolved"],
		ByStatus: byStatus,
	}, nil
}
