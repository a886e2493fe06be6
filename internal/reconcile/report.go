package reconcile

import (
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/reconcile-cli/internal/model"
)

// Totals counts the inputs and outcomes of one reconciliation.
type Totals struct {
	LogRows     int `json:"log_rows" yaml:"log_rows"`
	ReportRows  int `json:"report_rows" yaml:"report_rows"`
	SummaryRows int `json:"summary_rows" yaml:"summary_rows"`
	OK          int `json:"ok" yaml:"ok"`
	Mismatch    int `json:"mismatch" yaml:"mismatch"`
}

// Report is a reconciliation result as handed to callers.
type Report struct {
	ID          string             `json:"id" yaml:"id"`
	GeneratedAt time.Time          `json:"generated_at" yaml:"generated_at"`
	Totals      Totals             `json:"totals" yaml:"totals"`
	Filter      *Filter            `json:"filter,omitempty" yaml:"filter,omitempty"`
	Options     DateOptions        `json:"options" yaml:"options"`
	Rows        []model.SummaryRow `json:"rows" yaml:"rows"`
}

// DateOptions are the values a viewer can filter the rows by.
type DateOptions struct {
	ReportDates  []string `json:"report_dates" yaml:"report_dates"`
	ConfirmDates []string `json:"confirm_dates" yaml:"confirm_dates"`
}

// Build merges the two datasets and wraps the rows with counts and filter
// options. Options are computed from the unfiltered rows.
func Build(logRows []model.LogRow, reportRows []model.ReportRow, f Filter) *Report {
	rows := Merge(logRows, reportRows)

	r := &Report{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Totals: Totals{
			LogRows:    len(logRows),
			ReportRows: len(reportRows),
		},
		Options: DateOptions{
			ReportDates:  ReportDateOptions(rows),
			ConfirmDates: ConfirmDateOptions(rows),
		},
	}

	if !f.IsZero() {
		r.Filter = &f
		rows = f.Apply(rows)
	}
	r.Rows = rows
	r.Totals.SummaryRows = len(rows)
	for _, row := range rows {
		if row.Status == model.StatusOK {
			r.Totals.OK++
		} else {
			r.Totals.Mismatch++
		}
	}
	return r
}
