package reconcile

import (
	"math"
	"strconv"
	"strings"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// Merge reconciles every report row against the aggregate of all log rows.
// The result has one row per report row, in the same order. When either
// input is empty there is nothing to reconcile and the result is empty.
//
// A row's confirm dates and actual count cover every date the reviewer has
// in the log, not only the dates named by the row's own date expression.
func Merge(logRows []model.LogRow, reportRows []model.ReportRow) []model.SummaryRow {
	if len(logRows) == 0 || len(reportRows) == 0 {
		return []model.SummaryRow{}
	}

	counts := Aggregate(logRows)

	summary := make([]model.SummaryRow, 0, len(reportRows))
	for _, row := range reportRows {
		summary = append(summary, summarize(counts, row))
	}
	return summary
}

func summarize(counts ActualCounts, row model.ReportRow) model.SummaryRow {
	reviewer := row.Reviewer
	if reviewer == "" {
		reviewer = model.UnknownReviewer
	}

	confirmDates := counts.Dates(reviewer)
	actual := counts.Total(reviewer, confirmDates)
	reported := ParseReportedCount(row.ReportedCount)

	status := model.StatusMismatch
	if actual == reported {
		status = model.StatusOK
	}

	return model.SummaryRow{
		Reviewer:     reviewer,
		Date:         row.Date,
		ReportDates:  ExpandReportDates(row.Date),
		ConfirmDates: confirmDates,
		Actual:       actual,
		Reported:     reported,
		Diff:         actual - reported,
		Status:       status,
	}
}

// ParseReportedCount reads a reported count. Surrounding whitespace is
// ignored and fractional values are truncated toward zero. Empty,
// non-numeric, infinite or out-of-range text counts as 0.
func ParseReportedCount(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}
