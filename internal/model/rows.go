package model

// UnknownReviewer names the reviewer of a report row that has none.
const UnknownReviewer = "UNKNOWN"

// Status is the reconciliation outcome of a summary row.
type Status string

const (
	StatusOK       Status = "OK"
	StatusMismatch Status = "MISMATCH"
)

// LogRow is one raw activity event from the log dataset.
type LogRow struct {
	ConfirmedBy          string `json:"confirmed_by" yaml:"confirmed_by"`
	ConfirmedAtTimestamp string `json:"confirmed_at_timestamp" yaml:"confirmed_at_timestamp"`
}

// ReportRow is one human-submitted line of the report dataset.
type ReportRow struct {
	Reviewer      string `json:"reviewer" yaml:"reviewer"`
	Date          string `json:"date" yaml:"date"`                     // e.g. "15+16/1/2026" or "15/1 + 16/1"
	ReportedCount string `json:"reported_count" yaml:"reported_count"` // numeric text
}

// SummaryRow is the reconciliation of one ReportRow against the log
// aggregate.
type SummaryRow struct {
	Reviewer     string   `json:"reviewer" yaml:"reviewer"`
	Date         string   `json:"date" yaml:"date"`                 // report date as entered
	ReportDates  []string `json:"report_dates" yaml:"report_dates"` // expansion of Date, display only
	ConfirmDates []string `json:"confirm_dates" yaml:"confirm_dates"`
	Actual       int      `json:"actual" yaml:"actual"`
	Reported     int      `json:"reported" yaml:"reported"`
	Diff         int      `json:"diff" yaml:"diff"`
	Status       Status   `json:"status" yaml:"status"`
}

// LogRowFromRecord maps a spreadsheet record onto a LogRow.
func LogRowFromRecord(r Record) LogRow {
	return LogRow{
		ConfirmedBy:          r.Get(ConfirmedByKeys...),
		ConfirmedAtTimestamp: r.Get(ConfirmedAtKeys...),
	}
}

// ReportRowFromRecord maps a spreadsheet record onto a ReportRow.
func ReportRowFromRecord(r Record) ReportRow {
	return ReportRow{
		Reviewer:      r.Get(ReviewerKeys...),
		Date:          r.Get(ReportDateKeys...),
		ReportedCount: r.Get(ReportedCountKeys...),
	}
}

// LogRowsFromRecords maps every record, keeping order.
func LogRowsFromRecords(records []Record) []LogRow {
	rows := make([]LogRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, LogRowFromRecord(r))
	}
	return rows
}

// ReportRowsFromRecords maps every record, keeping order.
func ReportRowsFromRecords(records []Record) []ReportRow {
	rows := make([]ReportRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, ReportRowFromRecord(r))
	}
	return rows
}
