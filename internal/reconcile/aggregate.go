package reconcile

import (
	"sort"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// ActualCounts maps reviewer → canonical date → number of log events.
type ActualCounts map[string]map[string]int

// Aggregate folds log rows into per-reviewer, per-day event counts. Rows
// without a reviewer or timestamp, or whose timestamp does not normalize,
// are skipped. The result does not depend on row order.
func Aggregate(rows []model.LogRow) ActualCounts {
	counts := make(ActualCounts)
	for _, row := range rows {
		if row.ConfirmedBy == "" || row.ConfirmedAtTimestamp == "" {
			continue
		}
		date := NormalizeConfirmedDate(row.ConfirmedAtTimestamp)
		if date == "" {
			continue
		}
		byDate, ok := counts[row.ConfirmedBy]
		if !ok {
			byDate = make(map[string]int)
			counts[row.ConfirmedBy] = byDate
		}
		byDate[date]++
	}
	return counts
}

// Dates returns the reviewer's dates in ascending order. The slice is
// freshly allocated and never nil.
func (c ActualCounts) Dates(reviewer string) []string {
	byDate := c[reviewer]
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Total sums the reviewer's counts over the given dates.
func (c ActualCounts) Total(reviewer string, dates []string) int {
	byDate := c[reviewer]
	total := 0
	for _, d := range dates {
		total += byDate[d]
	}
	return total
}
