package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/reconcile-cli/internal/model"
)

func sampleSummary() []model.SummaryRow {
	return []model.SummaryRow{
		{Reviewer: "alice", Date: "15+16/1/2026", ConfirmDates: []string{"2026-01-15", "2026-01-16"}, Status: model.StatusOK},
		{Reviewer: "bob", Date: "16/1/2026", ConfirmDates: []string{"2026-01-16"}, Status: model.StatusMismatch},
		{Reviewer: "carol", Date: "", ConfirmDates: []string{}, Status: model.StatusMismatch},
		{Reviewer: "alice", Date: "16/1/2026", ConfirmDates: []string{"2026-01-15", "2026-01-16"}, Status: model.StatusMismatch},
	}
}

func reviewers(rows []model.SummaryRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Reviewer+"|"+r.Date)
	}
	return out
}

func TestFilter_ZeroMatchesAll(t *testing.T) {
	rows := sampleSummary()
	assert.True(t, Filter{}.IsZero())
	assert.Equal(t, rows, Filter{}.Apply(rows))
}

func TestFilter_ReportDates(t *testing.T) {
	f := Filter{ReportDates: []string{"16/1/2026"}}
	assert.Equal(t, []string{"bob|16/1/2026", "alice|16/1/2026"}, reviewers(f.Apply(sampleSummary())))
}

func TestFilter_ConfirmDatesMustContainAll(t *testing.T) {
	f := Filter{ConfirmDates: []string{"2026-01-15", "2026-01-16"}}
	assert.Equal(t, []string{"alice|15+16/1/2026", "alice|16/1/2026"}, reviewers(f.Apply(sampleSummary())))

	f = Filter{ConfirmDates: []string{"2026-01-16"}}
	assert.Len(t, f.Apply(sampleSummary()), 3)
}

func TestFilter_Combined(t *testing.T) {
	f := Filter{
		ReportDates:  []string{"16/1/2026"},
		ConfirmDates: []string{"2026-01-15"},
		MismatchOnly: true,
	}
	assert.False(t, f.IsZero())
	assert.Equal(t, []string{"alice|16/1/2026"}, reviewers(f.Apply(sampleSummary())))
}

func TestFilter_MismatchOnly(t *testing.T) {
	got := Filter{MismatchOnly: true}.Apply(sampleSummary())
	for _, r := range got {
		assert.Equal(t, model.StatusMismatch, r.Status)
	}
	assert.Len(t, got, 3)
}

func TestDateOptions(t *testing.T) {
	rows := sampleSummary()
	assert.Equal(t, []string{"2026-01-15", "2026-01-16"}, ConfirmDateOptions(rows))
	assert.Equal(t, []string{"15+16/1/2026", "16/1/2026"}, ReportDateOptions(rows))

	assert.Equal(t, []string{}, ConfirmDateOptions(nil))
	assert.Equal(t, []string{}, ReportDateOptions(nil))
}

func TestBuild_Totals(t *testing.T) {
	reports := []model.ReportRow{
		{Reviewer: "alice", Date: "16/1/2026", ReportedCount: "2"},
		{Reviewer: "bob", Date: "16/1/2026", ReportedCount: "1"},
	}

	r := Build(aliceLogs(), reports, Filter{})
	require.NotNil(t, r)
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Nil(t, r.Filter)
	assert.Equal(t, Totals{LogRows: 2, ReportRows: 2, SummaryRows: 2, OK: 1, Mismatch: 1}, r.Totals)
	assert.Equal(t, []string{"2026-01-16"}, r.Options.ConfirmDates)
	assert.Equal(t, []string{"16/1/2026"}, r.Options.ReportDates)
}

func TestBuild_FilterKeepsUnfilteredOptions(t *testing.T) {
	reports := []model.ReportRow{
		{Reviewer: "alice", Date: "16/1/2026", ReportedCount: "2"},
		{Reviewer: "bob", Date: "17/1/2026", ReportedCount: "1"},
	}

	r := Build(aliceLogs(), reports, Filter{MismatchOnly: true})
	require.NotNil(t, r.Filter)
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "bob", r.Rows[0].Reviewer)
	assert.Equal(t, Totals{LogRows: 2, ReportRows: 2, SummaryRows: 1, OK: 0, Mismatch: 1}, r.Totals)
	assert.Equal(t, []string{"16/1/2026", "17/1/2026"}, r.Options.ReportDates)
}

func TestBuild_EmptyInputs(t *testing.T) {
	r := Build(nil, nil, Filter{})
	assert.NotNil(t, r.Rows)
	assert.Empty(t, r.Rows)
	assert.Equal(t, Totals{}, r.Totals)
}

func TestBuild_UniqueIDs(t *testing.T) {
	a := Build(nil, nil, Filter{})
	b := Build(nil, nil, Filter{})
	assert.NotEqual(t, a.ID, b.ID)
}
