package reconcile

import (
	"slices"
	"sort"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// Filter selects summary rows for display. A zero Filter matches every row.
type Filter struct {
	// ReportDates keeps rows whose report date equals one of these strings.
	ReportDates []string `json:"report_dates,omitempty" yaml:"report_dates,omitempty"`
	// ConfirmDates keeps rows whose confirm dates contain all of these.
	ConfirmDates []string `json:"confirm_dates,omitempty" yaml:"confirm_dates,omitempty"`
	// MismatchOnly drops rows with status OK.
	MismatchOnly bool `json:"mismatch_only,omitempty" yaml:"mismatch_only,omitempty"`
}

// IsZero reports whether the filter selects nothing out.
func (f Filter) IsZero() bool {
	return len(f.ReportDates) == 0 && len(f.ConfirmDates) == 0 && !f.MismatchOnly
}

// Match reports whether row passes the filter.
func (f Filter) Match(row model.SummaryRow) bool {
	if len(f.ReportDates) > 0 && !slices.Contains(f.ReportDates, row.Date) {
		return false
	}
	for _, d := range f.ConfirmDates {
		if !slices.Contains(row.ConfirmDates, d) {
			return false
		}
	}
	if f.MismatchOnly && row.Status == model.StatusOK {
		return false
	}
	return true
}

// Apply returns the matching rows in their original order.
func (f Filter) Apply(rows []model.SummaryRow) []model.SummaryRow {
	out := make([]model.SummaryRow, 0, len(rows))
	for _, row := range rows {
		if f.Match(row) {
			out = append(out, row)
		}
	}
	return out
}

// ConfirmDateOptions lists every distinct confirm date across rows, sorted.
func ConfirmDateOptions(rows []model.SummaryRow) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, d := range row.ConfirmDates {
			seen[d] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// ReportDateOptions lists every distinct non-empty report date across rows
// in first-seen order.
func ReportDateOptions(rows []model.SummaryRow) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, row := range rows {
		if row.Date == "" {
			continue
		}
		if _, ok := seen[row.Date]; ok {
			continue
		}
		seen[row.Date] = struct{}{}
		out = append(out, row.Date)
	}
	return out
}
